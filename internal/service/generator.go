package service

import (
	"github.com/vaultpass/passgen/internal/charset"
	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/model"
	"github.com/vaultpass/passgen/internal/strength"
)

// GeneratorService handles stateless password generation and assessment.
type GeneratorService struct {
	source crypto.Source
}

// NewGeneratorService creates a new GeneratorService. A nil source uses
// crypto/rand.
func NewGeneratorService(src crypto.Source) *GeneratorService {
	if src == nil {
		src = crypto.CryptoSource()
	}
	return &GeneratorService{source: src}
}

// Generate produces a password based on the given request.
func (s *GeneratorService) Generate(req model.GenerateRequest) (model.GenerateResponse, error) {
	opts := optionsFromRequest(req)
	if err := opts.Validate(); err != nil {
		return model.GenerateResponse{}, err
	}

	password, err := crypto.Generate(opts, s.source)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	assessment := strength.Assess(password)
	return model.GenerateResponse{
		Password: password,
		Length:   assessment.Length,
		Strength: assessment,
	}, nil
}

// Assess scores an arbitrary password.
func (s *GeneratorService) Assess(req model.AssessRequest) model.AssessResponse {
	return model.AssessResponse{
		Strength:     strength.Assess(req.Password),
		Guessability: strength.Estimate(req.Password),
	}
}

func optionsFromRequest(req model.GenerateRequest) crypto.Options {
	opts := crypto.Options{Length: req.Length}
	if opts.Length == 0 {
		opts.Length = crypto.DefaultLength
	}

	flags := []struct {
		p     *bool
		class charset.Class
	}{
		{req.Uppercase, charset.Uppercase},
		{req.Lowercase, charset.Lowercase},
		{req.Numbers, charset.Digits},
		{req.Symbols, charset.Symbols},
	}
	for _, f := range flags {
		if boolOrDefault(f.p, true) {
			opts.Classes = opts.Classes.With(f.class)
		}
	}
	return opts
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
