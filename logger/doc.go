// Package logger provides structured logging for the capability framework,
// built on zerolog. Wiring-phase events (table assembly, declaration
// registration) and resolution events route through it.
package logger
