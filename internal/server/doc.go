// Package server runs the local HTTP API together with the background
// workers, and handles signals and graceful shutdown of both.
package server
