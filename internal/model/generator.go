package model

import "github.com/vaultpass/passgen/internal/strength"

// GenerateRequest represents a password generation request.
// Pointer bools allow distinguishing between missing (nil -> default true) and explicit false.
type GenerateRequest struct {
	Length    int   `json:"length"`
	Uppercase *bool `json:"uppercase"`
	Lowercase *bool `json:"lowercase"`
	Numbers   *bool `json:"numbers"`
	Symbols   *bool `json:"symbols"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Password string              `json:"password"`
	Length   int                 `json:"length"`
	Strength strength.Assessment `json:"strength"`
}

// AssessRequest asks for the strength of an arbitrary password.
type AssessRequest struct {
	Password string `json:"password"`
}

// AssessResponse carries both the tiered assessment and zxcvbn's estimate.
type AssessResponse struct {
	Strength     strength.Assessment   `json:"strength"`
	Guessability strength.Guessability `json:"guessability"`
}
