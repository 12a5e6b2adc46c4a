// Package config loads environment-based configuration structs.
//
// It combines godotenv (for local .env files) with caarlos0/env struct-tag
// parsing. Each collaborator package in this module declares its own Config
// struct with `env` tags; the host application loads them at startup:
//
//	var cfg receipt.Config
//	config.MustLoad(&cfg)
//
// The .env file is read at most once per process and only supplements
// variables that are not already set in the real environment.
package config
