package main

// Default limits for CLI commands.
const (
	DefaultListLimit    = 50
	DefaultHistoryLimit = 50
	DefaultSearchLimit  = 10
)
