// Package config loads and validates application settings from environment
// variables and an optional config file, exposing them as typed structs so
// the rest of the application never touches raw environment lookups.
package config
