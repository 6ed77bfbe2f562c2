// Package cli constructs the gitacp command-line interface, wiring the Cobra
// root command, configuration loader, and structured logging primitives.
package cli
