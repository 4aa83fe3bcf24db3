// Package share builds social share links for the generator page.
package share

import (
	"errors"
	"net/url"
)

const (
	twitterIntent  = "https://twitter.com/intent/tweet"
	facebookSharer = "https://www.facebook.com/sharer/sharer.php"

	// DefaultText accompanies shared links when no text is given.
	DefaultText = "I tried this strong password generator, a great tool for creating secure passwords!"
)

var ErrInvalidURL = errors.New("share url must be an absolute http(s) url")

// Links holds ready-to-open share URLs.
type Links struct {
	Page     string `json:"page"`
	Twitter  string `json:"twitter"`
	Facebook string `json:"facebook"`
}

// Build returns share links for pageURL.
func Build(pageURL, text string) (Links, error) {
	u, err := url.Parse(pageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Links{}, ErrInvalidURL
	}
	if text == "" {
		text = DefaultText
	}

	page := u.String()

	tw := url.Values{}
	tw.Set("text", text)
	tw.Set("url", page)

	fb := url.Values{}
	fb.Set("u", page)

	return Links{
		Page:     page,
		Twitter:  twitterIntent + "?" + tw.Encode(),
		Facebook: facebookSharer + "?" + fb.Encode(),
	}, nil
}
