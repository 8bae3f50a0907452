package main

// Exit codes
const (
	ExitSuccess     = 0 // Success, including not-found lookups
	ExitError       = 1 // Database or I/O failure
	ExitUsage       = 2 // Unknown command, wrong arguments, bad flags
	ExitConfigError = 3 // Unreadable config file, invalid log level, unwritable log file
)
