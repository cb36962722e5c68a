// Package orchestrator wires profile defaulting, palette selection, rendering,
// sanitising and plain-text derivation into a single entry point so previews
// and exports always go through the same path.
package orchestrator
