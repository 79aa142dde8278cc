// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the client process runtime.
//
// It wires the local store, the remote adapter, connectivity monitoring,
// the sync coordinator and the asset cache into a single process lifecycle,
// and serves the local API with the application shell proxied through the
// cache.
package client
