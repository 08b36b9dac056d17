package config

import "errors"

// Sentinel errors, matchable with errors.Is.
var (
	ErrInvalidClient   = errors.New("invalid client data")
	ErrInvalidLegal    = errors.New("invalid legal tables")
	ErrInvalidSettings = errors.New("invalid settings")
	ErrNoLegalYear     = errors.New("no legal tables for year")
)
