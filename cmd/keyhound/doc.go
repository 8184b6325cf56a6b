// Package keyhound provides the command-line interface for the keyhound tool.
// It configures subcommands (scan, validate, history, etc.), parses flags, and
// executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/keyhound/keyhound/cmd/keyhound"
//	func main() { keyhound.Execute() }
package keyhound
