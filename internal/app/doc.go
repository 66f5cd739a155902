// Package app contains the application lifecycle. It turns a validated
// Config into a run: read the wiring, build the network, answer the selected
// question and write the answer, decoupled from any specific entrypoint.
package app
