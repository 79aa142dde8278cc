// Package cache implements the client asset cache that sits at the
// transport boundary between the local shell proxy and the origin.
//
// The [Worker] walks through four lifecycle phases:
//
//   - install: fetch the shell assets into a region named by the cache
//     version; any failure discards the new region and keeps the old one;
//   - activate: drop every region that is not the current version;
//   - fetch: go to the network first and fall back to cached content;
//   - sync: run pending-record reconciliation for the "sync-products" tag.
//
// Handlers for each phase are registered with [Worker.Register]. A phase is
// complete when every handler registered for it has returned.
//
// Regions are stored in their own SQLite database (see [SQLiteStorage]).
package cache
