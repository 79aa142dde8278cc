// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used by the
// client runtime.
//
// All Msg* constants are human-readable notices pushed through the client
// notifier and served by the local API. Keeping them in one place keeps
// the wording consistent.
package app

// Registration outcomes.
const (
	// MsgRegisteredSynced is shown when a new record reached the server.
	MsgRegisteredSynced = "Product registered and synced with the server"

	// MsgRegisteredLocal is shown when a new record was queued locally.
	MsgRegisteredLocal = "Product saved locally (offline mode)"
)

// Catalog load outcomes at startup.
const (
	// MsgLoadedRemote is shown when the catalog came from the server.
	MsgLoadedRemote = "Catalog loaded from the server"

	// MsgLoadedLocal is shown when the server was reachable in principle
	// but the fetch failed, so the local copy was used.
	MsgLoadedLocal = "Catalog loaded locally"

	// MsgLoadedOffline is shown when the client started offline.
	MsgLoadedOffline = "Offline mode: catalog loaded locally"
)

// Connectivity and reconciliation.
const (
	MsgOffline        = "Working offline. Changes will sync when the connection returns"
	MsgOnline         = "Connection restored"
	MsgSynced         = "Offline data synced successfully"
	MsgSyncIncomplete = "Some records could not be synced and will be retried"
)
