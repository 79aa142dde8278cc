// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-product-sync/internal/adapter"
	"github.com/MKhiriev/go-product-sync/internal/app"
	"github.com/MKhiriev/go-product-sync/internal/logger"
	"github.com/MKhiriev/go-product-sync/internal/metrics"
	"github.com/MKhiriev/go-product-sync/internal/store"
	"github.com/MKhiriev/go-product-sync/internal/validators"
	"github.com/MKhiriev/go-product-sync/models"
)

type syncCoordinator struct {
	store        store.LocalStore
	remote       adapter.ServerAdapter
	connectivity ConnectivityState
	validator    validators.Validator
	notifier     *Notifier
	mode         models.ReconcileMode
	now          func() time.Time

	// flow serialises every coordinator flow.
	flow sync.Mutex

	// mu guards the fields below so that Catalog and Status do not wait
	// behind a running flow.
	mu         sync.RWMutex
	catalog    []models.ProductRecord
	loaded     bool
	state      models.SyncState
	lastSynced *time.Time

	logger *logger.Logger
}

func NewSyncCoordinator(
	localStore store.LocalStore,
	remote adapter.ServerAdapter,
	connectivity ConnectivityState,
	validator validators.Validator,
	notifier *Notifier,
	mode models.ReconcileMode,
	log *logger.Logger,
) SyncCoordinator {
	if mode == "" {
		mode = models.ReconcileResend
	}
	return &syncCoordinator{
		store:        localStore,
		remote:       remote,
		connectivity: connectivity,
		validator:    validator,
		notifier:     notifier,
		mode:         mode,
		now:          time.Now,
		state:        models.SyncStateIdle,
		logger:       log.WithComponent("sync"),
	}
}

func (c *syncCoordinator) Startup(ctx context.Context) error {
	c.flow.Lock()
	defer c.flow.Unlock()

	online := c.connectivity.Online()

	var (
		catalog []models.ProductRecord
		remote  bool
	)
	if online {
		fetched, err := c.remote.FetchAll(ctx)
		if err == nil {
			catalog, remote = fetched, true
		} else {
			c.logger.Warn().Err(err).Msg("remote catalog unavailable, falling back to local")
		}
	}

	if !remote {
		local, err := c.store.LoadCatalog(ctx)
		if err != nil {
			return fmt.Errorf("load local catalog: %w", err)
		}
		catalog = local
	}

	pending, err := c.store.PeekPending(ctx)
	if err != nil {
		return fmt.Errorf("peek pending queue: %w", err)
	}

	// a remote catalog does not contain unsynced records yet
	if remote {
		catalog = withMissing(catalog, pending)
	}

	if err = c.persist(ctx, catalog); err != nil {
		return err
	}

	switch {
	case remote:
		c.notifier.Notify(models.NotificationSuccess, app.MsgLoadedRemote)
	case online:
		c.notifier.Notify(models.NotificationWarning, app.MsgLoadedLocal)
	default:
		c.notifier.Notify(models.NotificationWarning, app.MsgLoadedOffline)
	}
	c.logger.Info().Bool("remote", remote).Int("catalog", len(catalog)).Int("pending", len(pending)).Msg("catalog loaded")

	metrics.PendingQueue.Set(float64(len(pending)))
	if len(pending) == 0 {
		return nil
	}

	_, err = c.reconcile(ctx)
	return err
}

func (c *syncCoordinator) Create(ctx context.Context, record models.ProductRecord) error {
	if c.validator != nil {
		if err := c.validator.Validate(ctx, record); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidProduct, err)
		}
	}

	c.flow.Lock()
	defer c.flow.Unlock()

	if err := c.ensureLoaded(ctx); err != nil {
		return err
	}

	synced := false
	if c.connectivity.Online() {
		if err := c.remote.Save(ctx, record); err != nil {
			c.logger.Warn().Err(err).Msg("remote save failed, queueing record")
		} else {
			synced = true
		}
	}

	if err := c.persist(ctx, prepend(c.Catalog(), record)); err != nil {
		return err
	}

	if synced {
		metrics.RecordsCreated.WithLabelValues("synced").Inc()
		c.notifier.Notify(models.NotificationSuccess, app.MsgRegisteredSynced)
		return nil
	}

	if err := c.store.EnqueuePending(ctx, record); err != nil {
		return fmt.Errorf("enqueue pending record: %w", err)
	}
	metrics.RecordsCreated.WithLabelValues("pending").Inc()
	metrics.PendingQueue.Inc()
	c.notifier.Notify(models.NotificationWarning, app.MsgRegisteredLocal)
	return nil
}

func (c *syncCoordinator) Delete(ctx context.Context, index int) error {
	c.flow.Lock()
	defer c.flow.Unlock()

	if err := c.ensureLoaded(ctx); err != nil {
		return err
	}

	catalog := c.Catalog()
	if index < 0 || index >= len(catalog) {
		return fmt.Errorf("%w: %d (catalog has %d)", ErrCatalogIndexOutOfRange, index, len(catalog))
	}
	record := catalog[index]

	// drop the queue entry first: a pending record must stay in the catalog
	removed, err := c.store.RemovePending(ctx, record)
	if err != nil {
		return fmt.Errorf("remove pending record: %w", err)
	}
	if removed {
		metrics.PendingQueue.Dec()
	}

	return c.persist(ctx, append(catalog[:index], catalog[index+1:]...))
}

func (c *syncCoordinator) Reconcile(ctx context.Context) (models.ReconcileResult, error) {
	c.flow.Lock()
	defer c.flow.Unlock()

	if err := c.ensureLoaded(ctx); err != nil {
		return models.ReconcileResult{}, err
	}
	return c.reconcile(ctx)
}

func (c *syncCoordinator) Heartbeat(ctx context.Context) error {
	c.flow.Lock()
	defer c.flow.Unlock()

	if !c.connectivity.Online() {
		return nil
	}

	if err := c.remote.Heartbeat(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("heartbeat failed")
		return err
	}
	c.logger.Debug().Msg("heartbeat ok")
	return nil
}

func (c *syncCoordinator) OnConnectivity(ctx context.Context, event models.ConnectivityEvent) {
	if !event.Online {
		c.notifier.Notify(models.NotificationWarning, app.MsgOffline)
		return
	}

	c.notifier.Notify(models.NotificationSuccess, app.MsgOnline)
	if _, err := c.Reconcile(ctx); err != nil {
		c.logger.Err(err).Msg("reconciliation after reconnect failed")
	}
}

func (c *syncCoordinator) Catalog() []models.ProductRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.ProductRecord{}, c.catalog...)
}

func (c *syncCoordinator) Status(ctx context.Context) (models.SyncStatus, error) {
	pending, err := c.store.PeekPending(ctx)
	if err != nil {
		return models.SyncStatus{}, fmt.Errorf("peek pending queue: %w", err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	status := models.SyncStatus{
		Online:  c.connectivity.Online(),
		State:   c.state,
		Catalog: len(c.catalog),
		Pending: len(pending),
	}
	if c.lastSynced != nil {
		at := *c.lastSynced
		status.LastSyncedAt = &at
	}
	return status, nil
}

// reconcile must be called with flow held.
func (c *syncCoordinator) reconcile(ctx context.Context) (models.ReconcileResult, error) {
	c.setState(models.SyncStateSyncing)
	defer c.setState(models.SyncStateIdle)

	var (
		result models.ReconcileResult
		err    error
	)
	switch c.mode {
	case models.ReconcileReference:
		result, err = c.reconcileReference(ctx)
	default:
		result, err = c.reconcileResend(ctx)
	}
	if err != nil {
		return result, err
	}
	if result.Drained == 0 {
		metrics.PendingQueue.Set(0)
		return result, nil
	}

	metrics.PendingQueue.Set(float64(result.Requeued))
	if result.Requeued == 0 {
		at := c.now().UTC()
		c.mu.Lock()
		c.lastSynced = &at
		c.mu.Unlock()
		c.notifier.Notify(models.NotificationSuccess, app.MsgSynced)
	} else {
		c.notifier.Notify(models.NotificationWarning, app.MsgSyncIncomplete)
	}

	c.logger.Info().
		Str("mode", string(c.mode)).
		Int("drained", result.Drained).
		Int("synced", result.Synced).
		Int("requeued", result.Requeued).
		Int("merged", result.Merged).
		Msg("reconciliation done")
	return result, nil
}

// reconcileReference drains the queue and trusts the drain as delivery.
func (c *syncCoordinator) reconcileReference(ctx context.Context) (models.ReconcileResult, error) {
	drained, err := c.store.DrainPending(ctx)
	if err != nil {
		return models.ReconcileResult{}, fmt.Errorf("drain pending queue: %w", err)
	}

	result := models.ReconcileResult{Drained: len(drained)}
	if len(drained) == 0 {
		return result, nil
	}

	catalog := c.Catalog()
	merged := withMissing(catalog, drained)
	result.Merged = len(merged) - len(catalog)
	if result.Merged > 0 {
		if err = c.persist(ctx, merged); err != nil {
			return result, err
		}
	}
	result.Synced = len(drained)
	metrics.Reconciled.WithLabelValues("merged").Add(float64(result.Merged))
	return result, nil
}

// reconcileResend saves the queued records in FIFO order and then removes
// the confirmed ones in one transaction. The queue is never emptied ahead
// of delivery: a crash mid-pass re-sends records on the next pass instead
// of losing them.
func (c *syncCoordinator) reconcileResend(ctx context.Context) (models.ReconcileResult, error) {
	queued, err := c.store.PeekPending(ctx)
	if err != nil {
		return models.ReconcileResult{}, fmt.Errorf("read pending queue: %w", err)
	}

	result := models.ReconcileResult{Drained: len(queued)}
	if len(queued) == 0 {
		return result, nil
	}

	synced := make([]models.ProductRecord, 0, len(queued))
	for i, record := range queued {
		if ctx.Err() != nil {
			break
		}
		if err = c.remote.Save(ctx, record); err != nil {
			c.logger.Debug().Err(err).Int("index", i).Msg("resend failed")
			continue
		}
		synced = append(synced, record)
	}

	// acknowledge even when ctx was cancelled mid-loop
	acked, err := c.store.AckPending(context.WithoutCancel(ctx), synced)
	if err != nil {
		c.logger.Err(err).Int("synced", len(synced)).Msg("failed to remove delivered records from the queue")
		return result, fmt.Errorf("acknowledge pending records: %w", err)
	}

	result.Synced = len(synced)
	result.Requeued = len(queued) - acked
	metrics.Reconciled.WithLabelValues("synced").Add(float64(result.Synced))
	metrics.Reconciled.WithLabelValues("requeued").Add(float64(result.Requeued))
	return result, nil
}

// ensureLoaded reads the local catalog when Startup has not run yet, so
// that a mutation never overwrites records it has not seen.
func (c *syncCoordinator) ensureLoaded(ctx context.Context) error {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if loaded {
		return nil
	}

	catalog, err := c.store.LoadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("load local catalog: %w", err)
	}

	c.mu.Lock()
	c.catalog, c.loaded = catalog, true
	c.mu.Unlock()
	return nil
}

// persist writes catalog and publishes it in memory once it is durable.
func (c *syncCoordinator) persist(ctx context.Context, catalog []models.ProductRecord) error {
	if catalog == nil {
		catalog = []models.ProductRecord{}
	}
	if err := c.store.SaveCatalog(ctx, catalog); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}

	c.mu.Lock()
	c.catalog, c.loaded = catalog, true
	c.mu.Unlock()
	return nil
}

func (c *syncCoordinator) setState(state models.SyncState) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
}

func prepend(catalog []models.ProductRecord, record models.ProductRecord) []models.ProductRecord {
	out := make([]models.ProductRecord, 0, len(catalog)+1)
	out = append(out, record)
	return append(out, catalog...)
}

// withMissing returns catalog with every record of extra that it lacks
// prepended, newest first.
func withMissing(catalog, extra []models.ProductRecord) []models.ProductRecord {
	var missing []models.ProductRecord
	for _, r := range extra {
		if !contains(catalog, r) && !contains(missing, r) {
			missing = append(missing, r)
		}
	}
	if len(missing) == 0 {
		return catalog
	}

	out := make([]models.ProductRecord, 0, len(catalog)+len(missing))
	for i := len(missing) - 1; i >= 0; i-- {
		out = append(out, missing[i])
	}
	return append(out, catalog...)
}

func contains(records []models.ProductRecord, record models.ProductRecord) bool {
	for _, r := range records {
		if r.Equal(record) {
			return true
		}
	}
	return false
}
