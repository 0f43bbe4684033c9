// Package app assembles the dashboard preview server: configuration,
// logging, the chi router with its JSON API, static serving of the
// generated web tree, and signal-driven graceful shutdown.
package app
