// Package config reads the optional run configuration file.
//
// The file is HCL with a single `run` block whose attributes mirror the
// command-line flags. Every attribute is optional; values that are present
// override the built-in defaults and are themselves overridden by flags set
// explicitly on the command line. Expressions may reference the process
// environment through the `env` object, e.g. "${env.HOME}/input.txt".
package config
