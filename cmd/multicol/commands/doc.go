// Package commands wires the multicol CLI: the interactive board and the
// commands that manage saved boards and configuration.
package commands
