package share

import (
	"errors"
	"net/url"
	"testing"
)

func TestBuild(t *testing.T) {
	links, err := Build("https://example.com/generator?lang=ar", "")
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	tw, err := url.Parse(links.Twitter)
	if err != nil {
		t.Fatalf("twitter link does not parse: %v", err)
	}
	if got := tw.Query().Get("url"); got != "https://example.com/generator?lang=ar" {
		t.Errorf("twitter url param = %q", got)
	}
	if got := tw.Query().Get("text"); got != DefaultText {
		t.Errorf("twitter text param = %q", got)
	}

	fb, err := url.Parse(links.Facebook)
	if err != nil {
		t.Fatalf("facebook link does not parse: %v", err)
	}
	if got := fb.Query().Get("u"); got != links.Page {
		t.Errorf("facebook u param = %q, want %q", got, links.Page)
	}
}

func TestBuildInvalidURL(t *testing.T) {
	for _, in := range []string{"", "not a url", "ftp://example.com", "/relative"} {
		if _, err := Build(in, "hi"); !errors.Is(err, ErrInvalidURL) {
			t.Errorf("Build(%q) error = %v, want %v", in, err, ErrInvalidURL)
		}
	}
}
