// Package server runs the HTTP servers of both runtimes.
//
// The catalog server process runs one [Server] that blocks until SIGTERM,
// SIGINT or SIGQUIT and then shuts down gracefully. The client reuses
// [HTTPServer] for its loopback API, driven by its own context.
package server
