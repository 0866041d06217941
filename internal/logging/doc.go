// Package logging provides structured JSON logging with size-based file
// rotation for sentindex. Every invocation logs to ~/.sentindex/logs/ at the
// configured level; --debug raises the level and mirrors records to stderr.
package logging
