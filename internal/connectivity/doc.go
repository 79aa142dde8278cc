// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package connectivity owns the client's online/offline flag.
//
// The flag is never trusted from the platform alone. A [Monitor] asks its
// [Prober] for an active reachability check (a HEAD request with
// Cache-Control: no-cache against a well-known URL) at startup and every
// time the platform signal fires. The platform signal is an
// [InterfaceWatcher] that reports link-layer changes of the host's network
// interfaces; it never probes anything itself.
//
// Subscribers registered with [Monitor.Subscribe] receive a
// [models.ConnectivityEvent] only when the flag actually flips.
package connectivity
