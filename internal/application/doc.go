// Package application provides application initialization and dependency wiring.
// It builds the discovery, loader, lint, report and output components from a
// resolved configuration, keeping the main package focused on CLI parsing.
package application
