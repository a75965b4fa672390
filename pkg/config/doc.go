// Package config loads typed configuration structs from environment variables.
//
// Structs describe their variables with caarlos0/env tags. Load parses a struct type once
// and caches it for the life of the process; Parse always reads the environment afresh.
// A .env file in the working directory is loaded automatically on first use, and
// LoadEnvFiles reads additional files explicitly.
//
// # Usage
//
//	var cfg imageconv.Config
//	config.MustLoad(&cfg)
//
// # Error Handling
//
// Parsing failures wrap ErrParsingConfig together with the underlying env error, so both
// errors.Is(err, config.ErrParsingConfig) and the env error types keep working.
package config
