// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncState is the state of the sync coordinator. It is recomputed on
// every decision and never persisted.
type SyncState string

const (
	SyncStateIdle    SyncState = "idle"
	SyncStateSyncing SyncState = "syncing"
)

// ReconcileMode selects how queued pending records are handled.
type ReconcileMode string

const (
	// ReconcileResend re-sends every queued record and then removes the
	// delivered ones from the queue. Refused records stay queued in order.
	ReconcileResend ReconcileMode = "resend"

	// ReconcileReference treats draining as success and only merges the
	// drained records back into the catalog.
	ReconcileReference ReconcileMode = "reference"
)

// SyncStatus is a snapshot of the coordinator exposed to the local API.
type SyncStatus struct {
	Online       bool       `json:"online"`
	State        SyncState  `json:"state"`
	Catalog      int        `json:"catalog"`
	Pending      int        `json:"pending"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
}

// ReconcileResult summarises one reconciliation pass. Drained counts the
// records the pass took up and Requeued those still queued after it.
type ReconcileResult struct {
	Drained  int `json:"drained"`
	Synced   int `json:"synced"`
	Requeued int `json:"requeued"`
	Merged   int `json:"merged"`
}

// ConnectivityEvent is emitted by the connectivity monitor whenever the
// online flag flips.
type ConnectivityEvent struct {
	Online bool
	At     time.Time
}

// NotificationLevel mirrors the severity of a user-facing notice.
type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationWarning NotificationLevel = "warning"
	NotificationError   NotificationLevel = "error"
)

// Notification is a non-blocking, auto-dismissing message for the user.
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Message string            `json:"message"`
	At      time.Time         `json:"at"`
}
