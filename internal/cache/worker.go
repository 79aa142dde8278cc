// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/MKhiriev/go-product-sync/internal/config"
	"github.com/MKhiriev/go-product-sync/internal/logger"
	"github.com/MKhiriev/go-product-sync/internal/metrics"
	"github.com/MKhiriev/go-product-sync/internal/utils"
	"github.com/MKhiriev/go-product-sync/models"
)

// OfflinePage is served for navigations when the origin is unreachable.
const OfflinePage = "/offline.html"

// ShellAssets is the fixed list fetched on install, besides [OfflinePage].
var ShellAssets = []string{
	"/",
	"/index.html",
	"/style.css",
	"/script.js",
	"/assets/icons/icon-192x192.png",
	"/assets/icons/icon-512x512.png",
	"/bonus-modal.html",
}

// Reconciler drains the pending queue. It is satisfied by the sync
// coordinator.
//
//go:generate mockgen -source=worker.go -destination=../mock/cache_mock.go -package=mock
type Reconciler interface {
	Reconcile(ctx context.Context) (models.ReconcileResult, error)
}

// Option customises a [Worker].
type Option func(*Worker)

// WithTransport replaces the network transport used for install and live
// fetches. Defaults to [http.DefaultTransport].
func WithTransport(rt http.RoundTripper) Option {
	return func(w *Worker) {
		w.live = rt
	}
}

// WithAssets overrides the shell asset list.
func WithAssets(assets ...string) Option {
	return func(w *Worker) {
		w.assets = assets
	}
}

// Worker is the asset cache. It implements [http.RoundTripper] so it can be
// plugged into a reverse proxy in front of the origin.
type Worker struct {
	version     string
	origin      string
	assets      []string
	offlinePage string

	live       http.RoundTripper
	storage    Storage
	reconciler Reconciler

	// lifecycle serialises install and activate.
	lifecycle sync.Mutex

	mu       sync.RWMutex
	handlers map[Phase][]Handler

	logger *logger.Logger
}

// NewWorker builds a Worker and registers the built-in handler of every
// phase.
func NewWorker(cfg config.ClientCache, storage Storage, reconciler Reconciler, log *logger.Logger, opts ...Option) *Worker {
	w := &Worker{
		version:     cfg.Version,
		origin:      strings.TrimRight(cfg.OriginURL, "/"),
		assets:      ShellAssets,
		offlinePage: OfflinePage,
		live:        http.DefaultTransport,
		storage:     storage,
		reconciler:  reconciler,
		handlers:    make(map[Phase][]Handler),
		logger:      log.WithComponent("cache"),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.handlers[PhaseInstall] = []Handler{w.install}
	w.handlers[PhaseActivate] = []Handler{w.activate}
	w.handlers[PhaseFetch] = []Handler{w.fetch}
	w.handlers[PhaseSync] = []Handler{w.sync}

	return w
}

// Register appends h to the handlers of phase.
func (w *Worker) Register(phase Phase, h Handler) error {
	if !phase.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownPhase, phase)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers[phase] = append(w.handlers[phase], h)
	return nil
}

// Version returns the current cache version tag.
func (w *Worker) Version() string {
	return w.version
}

// Start installs the current version and activates it. When install fails
// the previous region stays in service and the error is returned.
func (w *Worker) Start(ctx context.Context) error {
	if err := w.Install(ctx); err != nil {
		return err
	}
	return w.Activate(ctx)
}

// Install runs the install phase.
func (w *Worker) Install(ctx context.Context) error {
	w.lifecycle.Lock()
	defer w.lifecycle.Unlock()

	err := w.dispatch(ctx, &Event{Phase: PhaseInstall})
	if err != nil {
		metrics.CacheInstalls.WithLabelValues("failed").Inc()
		return err
	}
	metrics.CacheInstalls.WithLabelValues("ok").Inc()
	return nil
}

// Activate runs the activate phase.
func (w *Worker) Activate(ctx context.Context) error {
	w.lifecycle.Lock()
	defer w.lifecycle.Unlock()

	return w.dispatch(ctx, &Event{Phase: PhaseActivate})
}

// Sync runs the sync phase for tag.
func (w *Worker) Sync(ctx context.Context, tag string) error {
	return w.dispatch(ctx, &Event{Phase: PhaseSync, Tag: tag})
}

// RoundTrip runs the fetch phase for req.
func (w *Worker) RoundTrip(req *http.Request) (*http.Response, error) {
	ev := &Event{Phase: PhaseFetch, Request: req}
	if err := w.dispatch(req.Context(), ev); err != nil {
		return nil, err
	}
	if ev.Response == nil {
		return nil, ErrNoResponse
	}
	return ev.Response, nil
}

func (w *Worker) dispatch(ctx context.Context, ev *Event) error {
	w.mu.RLock()
	handlers := append([]Handler(nil), w.handlers[ev.Phase]...)
	w.mu.RUnlock()

	for _, h := range handlers {
		if err := h(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

func (w *Worker) install(ctx context.Context, _ *Event) error {
	client := utils.NewHTTPClient()
	client.SetTransport(w.live)
	client.SetBaseURL(w.origin)

	urls := append(append([]string(nil), w.assets...), w.offlinePage)
	entries := make([]Entry, 0, len(urls))

	for _, u := range urls {
		resp, err := client.R().SetContext(ctx).Get(u)
		if err != nil {
			w.logger.Error().Err(err).Str("version", w.version).Str("url", u).Msg("install fetch failed")
			return fmt.Errorf("%w: fetching %s: %v", ErrCacheInstallFailed, u, err)
		}
		if !resp.IsSuccess() {
			w.logger.Error().Int("status", resp.StatusCode()).Str("version", w.version).Str("url", u).Msg("install fetch rejected")
			return fmt.Errorf("%w: fetching %s: status %d", ErrCacheInstallFailed, u, resp.StatusCode())
		}

		entries = append(entries, Entry{
			URL:    u,
			Status: resp.StatusCode(),
			Header: resp.Header().Clone(),
			Body:   resp.Body(),
		})
	}

	if err := w.storage.PutRegion(ctx, w.version, entries); err != nil {
		w.logger.Error().Err(err).Str("version", w.version).Msg("install store failed")
		return fmt.Errorf("%w: %v", ErrCacheInstallFailed, err)
	}

	w.logger.Info().Str("version", w.version).Int("assets", len(entries)).Msg("cache installed")
	return nil
}

func (w *Worker) activate(ctx context.Context, _ *Event) error {
	regions, err := w.storage.Regions(ctx)
	if err != nil {
		return fmt.Errorf("error listing cache regions: %w", err)
	}

	for _, r := range regions {
		if r.Name == w.version {
			continue
		}
		if err = w.storage.DeleteRegion(ctx, r.Name); err != nil {
			return fmt.Errorf("error deleting cache region %q: %w", r.Name, err)
		}
		w.logger.Info().Str("region", r.Name).Msg("stale cache region deleted")
	}
	return nil
}

func (w *Worker) fetch(ctx context.Context, ev *Event) error {
	if ev.Response != nil {
		return nil
	}

	req := ev.Request
	resp, err := w.live.RoundTrip(req)
	if err == nil {
		ev.Response = resp
		return nil
	}

	// the Cache API only matches GET requests
	if req.Method != http.MethodGet {
		return err
	}

	key, kind := req.URL.RequestURI(), "cached_entry"
	if isNavigation(req) {
		key, kind = w.offlinePage, "offline_page"
	}

	entry, found, mErr := w.storage.Match(ctx, key)
	if mErr != nil {
		w.logger.Warn().Err(mErr).Str("url", key).Msg("cache lookup failed")
	}
	if !found {
		metrics.CacheFallbacks.WithLabelValues("miss").Inc()
		return err
	}

	w.logger.Debug().Err(err).Str("url", req.URL.RequestURI()).Str("served", key).Msg("network failed, serving from cache")
	metrics.CacheFallbacks.WithLabelValues(kind).Inc()
	ev.Response = entry.response(req)
	return nil
}

func (w *Worker) sync(ctx context.Context, ev *Event) error {
	if ev.Tag != SyncTag {
		w.logger.Debug().Str("tag", ev.Tag).Msg("ignoring unknown sync tag")
		return nil
	}
	if w.reconciler == nil {
		return errors.New("no reconciler configured")
	}

	result, err := w.reconciler.Reconcile(ctx)
	if err != nil {
		return fmt.Errorf("background sync: %w", err)
	}
	w.logger.Info().Int("drained", result.Drained).Int("synced", result.Synced).Int("requeued", result.Requeued).Msg("background sync done")
	return nil
}

// isNavigation reports whether req loads a document rather than a
// subresource.
func isNavigation(req *http.Request) bool {
	if mode := req.Header.Get("Sec-Fetch-Mode"); mode != "" {
		return mode == "navigate"
	}
	return req.Method == http.MethodGet && strings.Contains(req.Header.Get("Accept"), "text/html")
}

func (e Entry) response(req *http.Request) *http.Response {
	header := e.Header.Clone()
	if header == nil {
		header = make(http.Header)
	}
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", e.Status, http.StatusText(e.Status)),
		StatusCode:    e.Status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(e.Body)),
		ContentLength: int64(len(e.Body)),
		Request:       req,
	}
}
