package config

import "errors"

var (
	ErrConfigNotFound  = errors.New("config file does not exist")
	ErrMalformedConfig = errors.New("config file is not valid JSON")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrNoInput         = errors.New("no input available")
)
