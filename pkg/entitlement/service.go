package entitlement

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/JayKim88/polylingo-entitlements/pkg/async"
	"github.com/JayKim88/polylingo-entitlements/pkg/purchase"
	"github.com/JayKim88/polylingo-entitlements/pkg/receipt"
	"github.com/JayKim88/polylingo-entitlements/pkg/remote"
	"github.com/JayKim88/polylingo-entitlements/pkg/snapshot"
	"github.com/JayKim88/polylingo-entitlements/pkg/usage"
)

const (
	// DefaultThrottleInterval is the minimum spacing between full
	// reconcile passes. Triggers arriving inside the window serve the
	// current snapshot instead of hitting the platform store again.
	DefaultThrottleInterval = 2 * time.Minute

	// DefaultRestoreTimeout bounds how long a restore waits on the
	// platform store.
	DefaultRestoreTimeout = 30 * time.Second

	defaultInitRetryDelay = 2 * time.Second
	usageSyncTimeout      = 5 * time.Second
)

// Service reconciles the app's entitlement state against the platform
// purchase store, the receipt validation backend, and the remote
// subscription database, and keeps the single authoritative local
// snapshot current.
//
// Every divergence resolves in the direction of less entitlement: an
// unverifiable or failed purchase never grants paid features, and a paid
// result that cannot be recorded server-side falls back to the free plan
// locally.
type Service struct {
	store     purchase.Store
	validator receipt.Validator
	sync      remote.SyncClient
	local     snapshot.Store
	catalog   *Catalog
	meter     *usage.Meter
	notifier  Notifier
	log       *slog.Logger
	now       func() time.Time

	throttleInterval time.Duration
	initRetryDelay   time.Duration
	restoreTimeout   time.Duration

	mu             sync.Mutex
	initFuture     *async.Future[bool]
	listenerCancel context.CancelFunc
	listenerDone   chan struct{}

	reconciling atomic.Bool
	restoring   atomic.Bool
	committing  atomic.Bool

	reconcileMu   sync.Mutex
	lastReconcile time.Time

	seenMu sync.Mutex
	seen   map[string]struct{}

	lastKnownMu sync.RWMutex
	lastKnown   *snapshot.Snapshot

	usageMu sync.Mutex
}

// NewService creates the entitlement reconciler. All non-option
// dependencies are required.
func NewService(
	store purchase.Store,
	validator receipt.Validator,
	syncClient remote.SyncClient,
	local snapshot.Store,
	catalog *Catalog,
	opts ...Option,
) *Service {
	if store == nil {
		panic("entitlement: purchase store is required")
	}
	if validator == nil {
		panic("entitlement: receipt validator is required")
	}
	if syncClient == nil {
		panic("entitlement: sync client is required")
	}
	if local == nil {
		panic("entitlement: snapshot store is required")
	}
	if catalog == nil {
		panic("entitlement: catalog is required")
	}

	s := &Service{
		store:            store,
		validator:        validator,
		sync:             syncClient,
		local:            local,
		catalog:          catalog,
		notifier:         NopNotifier{},
		log:              slog.Default(),
		now:              time.Now,
		throttleInterval: DefaultThrottleInterval,
		initRetryDelay:   defaultInitRetryDelay,
		restoreTimeout:   DefaultRestoreTimeout,
		seen:             make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize connects to the platform purchase store and starts the
// asynchronous purchase listener. Concurrent callers share one
// connection attempt: the first caller starts it, the rest await the
// same result.
//
// Returns (false, nil) when the process has no purchase capability
// (simulator, dev build) - the service then operates in local-only mode
// and purchase operations fail fast. A failed attempt is not cached:
// the next call retries.
func (s *Service) Initialize(ctx context.Context) (bool, error) {
	s.mu.Lock()
	fut := s.initFuture
	if fut == nil {
		fut = async.Run(context.WithoutCancel(ctx), s.connect)
		s.initFuture = fut
	}
	s.mu.Unlock()

	ok, err := fut.Await()
	if err != nil {
		s.mu.Lock()
		if s.initFuture == fut {
			s.initFuture = nil
		}
		s.mu.Unlock()
	}
	return ok, err
}

func (s *Service) connect(ctx context.Context) (bool, error) {
	err := s.store.Connect(ctx)
	if err != nil && !errors.Is(err, purchase.ErrUnavailable) {
		s.log.WarnContext(ctx, "billing connection failed, retrying once", "error", err)
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(s.initRetryDelay):
		}
		err = s.store.Connect(ctx)
	}
	if errors.Is(err, purchase.ErrUnavailable) {
		s.log.InfoContext(ctx, "billing unavailable, running in local-only mode")
		return false, nil
	}
	if err != nil {
		return false, err
	}

	s.startListener()
	return true, nil
}

func (s *Service) startListener() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	s.mu.Lock()
	s.listenerCancel = cancel
	s.listenerDone = done
	s.mu.Unlock()

	sub := s.store.Subscribe(ctx)
	go func() {
		defer close(done)
		for ev := range sub.Receive() {
			s.handleEvent(ctx, ev)
		}
	}()
}

// Reconcile runs one full reconciliation pass: list active purchases,
// validate the latest one, and commit the resulting entitlement locally
// and remotely.
//
// Passes inside the throttle window, and passes overlapping a running
// one, return the current snapshot without touching the platform store.
// The returned snapshot is never nil on a nil error.
func (s *Service) Reconcile(ctx context.Context) (*snapshot.Snapshot, error) {
	return s.reconcile(ctx, true)
}

// ReconcileNow runs a reconciliation pass regardless of the throttle
// window, for explicit user-driven refreshes. Overlapping passes still
// collapse to one: a pass already in flight is not queued behind.
func (s *Service) ReconcileNow(ctx context.Context) (*snapshot.Snapshot, error) {
	return s.reconcile(ctx, false)
}

func (s *Service) reconcile(ctx context.Context, throttle bool) (*snapshot.Snapshot, error) {
	if throttle {
		s.reconcileMu.Lock()
		throttled := !s.lastReconcile.IsZero() && s.now().Sub(s.lastReconcile) < s.throttleInterval
		s.reconcileMu.Unlock()
		if throttled {
			return s.CurrentSubscription(ctx)
		}
	}

	if !s.reconciling.CompareAndSwap(false, true) {
		// Another pass is in flight; its result will land in the snapshot.
		return s.CurrentSubscription(ctx)
	}
	defer s.reconciling.Store(false)

	ok, err := s.Initialize(ctx)
	if err != nil || !ok {
		if err != nil {
			s.log.WarnContext(ctx, "reconcile without billing connection", "error", err)
		}
		return s.commitFree(ctx, true), nil
	}

	records, err := s.store.ListActive(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "listing active purchases failed", "error", err)
		snap := s.commitFree(ctx, true)
		s.markReconciled()
		return snap, nil
	}
	if len(records) == 0 {
		snap := s.commitFree(ctx, true)
		s.markReconciled()
		return snap, nil
	}

	rec := latestRecord(records)
	resolved := s.resolveRecord(ctx, rec)
	existingPlanID, existing := s.existingPlan(ctx, rec.TransactionID)
	s.carryUsage(ctx, resolved, existing, resolved.PlanID == existingPlanID)

	if err := s.commit(ctx, resolved); err != nil {
		s.log.ErrorContext(ctx, "entitlement commit failed, falling back to free",
			"plan", resolved.PlanID, "error", err)
		snap := s.commitFree(ctx, true)
		s.markReconciled()
		return snap, nil
	}

	s.markReconciled()
	return resolved, nil
}

// Purchase runs the platform purchase flow for a product and commits the
// resulting entitlement with a fresh daily usage counter. User
// cancellation returns ErrPurchaseCancelled.
//
// The platform transaction is finished even when the commit fails, so it
// is not redelivered forever; the caller is notified through the
// Notifier that the entitlement was reverted.
func (s *Service) Purchase(ctx context.Context, productID string) (*snapshot.Snapshot, error) {
	ok, err := s.Initialize(ctx)
	if err != nil {
		return nil, errors.Join(ErrPurchaseFailed, err)
	}
	if !ok {
		return nil, errors.Join(ErrPurchaseFailed, purchase.ErrUnavailable)
	}
	if _, err := s.catalog.PlanForProduct(productID); err != nil {
		return nil, err
	}

	rec, err := s.store.Request(ctx, productID)
	if err != nil {
		if errors.Is(err, purchase.ErrCancelled) {
			return nil, ErrPurchaseCancelled
		}
		return nil, errors.Join(ErrPurchaseFailed, err)
	}

	// The listener will see this transaction too; claim it first.
	s.markSeen(rec.TransactionID)

	resolved := s.resolveRecord(ctx, *rec)
	// A completed purchase starts the plan's day fresh, even when the
	// plan did not change. Only the trial flag carries over.
	_, existing := s.existingPlan(ctx, rec.TransactionID)
	s.carryUsage(ctx, resolved, existing, false)

	commitErr := s.commit(ctx, resolved)
	if err := s.store.Finish(ctx, *rec); err != nil {
		s.log.WarnContext(ctx, "finishing transaction failed", "transaction_id", rec.TransactionID, "error", err)
	}
	if commitErr != nil {
		s.notifier.Notify(Notice{Kind: NoticeEntitlementReverted, Err: commitErr})
		return existing, errors.Join(ErrPurchaseFailed, commitErr)
	}
	return resolved, nil
}

// Restore re-derives the entitlement from the platform store's record of
// prior purchases. The store query is bounded by the restore timeout;
// hitting it returns ErrRestoreTimeout rather than hanging the caller.
// While a restore is running, the asynchronous listener skips events so
// the two paths do not double-apply the same transaction.
func (s *Service) Restore(ctx context.Context) (*snapshot.Snapshot, error) {
	ok, err := s.Initialize(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, purchase.ErrUnavailable
	}

	if !s.restoring.CompareAndSwap(false, true) {
		return nil, ErrRestoreInProgress
	}
	defer s.restoring.Store(false)

	fut := async.Run(ctx, s.store.ListActive)
	records, err := fut.AwaitWithTimeout(s.restoreTimeout)
	if errors.Is(err, async.ErrTimeout) {
		s.notifier.Notify(Notice{Kind: NoticeRestoreTimeout, Err: err})
		return nil, ErrRestoreTimeout
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNothingToRestore
	}

	rec := latestRecord(records)
	s.markSeen(rec.TransactionID)

	resolved := s.resolveRecord(ctx, rec)
	existingPlanID, existing := s.existingPlan(ctx, rec.TransactionID)
	s.carryUsage(ctx, resolved, existing, resolved.PlanID == existingPlanID)

	if err := s.commit(ctx, resolved); err != nil {
		s.unmarkSeen(rec.TransactionID)
		s.notifier.Notify(Notice{Kind: NoticeEntitlementReverted, Err: err})
		return nil, err
	}
	if err := s.store.Finish(ctx, rec); err != nil {
		s.log.WarnContext(ctx, "finishing restored transaction failed", "transaction_id", rec.TransactionID, "error", err)
	}
	return resolved, nil
}

// CurrentSubscription returns the authoritative snapshot, normalized for
// the current time: expired entitlements are coerced to free and stale
// daily usage is reset before the caller ever sees it. A first run with
// no stored snapshot yields the free default.
func (s *Service) CurrentSubscription(ctx context.Context) (*snapshot.Snapshot, error) {
	now := s.now()

	if s.committing.Load() {
		// A commit is mid-write; serve the last consistent state.
		if last := s.getLastKnown(); last != nil {
			return last.Normalized(now), nil
		}
	}

	stored, err := s.local.Load(ctx)
	if errors.Is(err, snapshot.ErrNotFound) {
		snap := snapshot.NewFree(now)
		if err := s.local.Save(ctx, snap); err != nil {
			s.log.WarnContext(ctx, "persisting initial snapshot failed", "error", err)
		}
		s.setLastKnown(snap)
		return snap, nil
	}
	if err != nil {
		if last := s.getLastKnown(); last != nil {
			return last.Normalized(now), nil
		}
		return nil, err
	}

	norm := stored.Normalized(now)
	if norm.PlanID != stored.PlanID || norm.EndDate != stored.EndDate || norm.DailyUsage != stored.DailyUsage {
		if err := s.local.Save(ctx, norm); err != nil {
			s.log.WarnContext(ctx, "persisting normalized snapshot failed", "error", err)
		}
	}
	s.setLastKnown(norm)
	return norm, nil
}

// IncrementUsage meters one translation into targetLanguages target
// languages against the current plan's daily cap. Free users without any
// purchase are metered through the on-device meter when one is attached;
// everyone else is metered through the snapshot, with the day's count
// pushed to the server fire-and-forget.
func (s *Service) IncrementUsage(ctx context.Context, targetLanguages int) (usage.Result, error) {
	// Load-check-add-save must be atomic: concurrent increments reading
	// the same base count would silently overwrite each other's writes.
	s.usageMu.Lock()
	defer s.usageMu.Unlock()

	snap, err := s.CurrentSubscription(ctx)
	if err != nil {
		return usage.Result{}, err
	}

	if s.meter != nil && snap.PlanID == PlanFree && snap.OriginalTransactionID == "" {
		cost := s.catalog.UnitCost(s.catalog.Free(), targetLanguages)
		return s.meter.IncrementWithLimit(ctx, cost)
	}

	plan, err := s.catalog.Plan(snap.PlanID)
	if err != nil {
		return usage.Result{}, err
	}
	cost := s.catalog.UnitCost(plan, targetLanguages)

	if plan.DailyLimit != UnlimitedDaily && snap.DailyUsage.Count+cost > plan.DailyLimit {
		return usage.Result{
			Allowed:        false,
			RemainingDaily: max(plan.DailyLimit-snap.DailyUsage.Count, 0),
		}, nil
	}

	snap.DailyUsage.Count += cost
	if err := s.local.Save(ctx, snap); err != nil {
		return usage.Result{}, err
	}
	s.setLastKnown(snap)
	s.pushUsage(snap)

	remaining := UnlimitedDaily
	if plan.DailyLimit != UnlimitedDaily {
		remaining = plan.DailyLimit - snap.DailyUsage.Count
	}
	return usage.Result{Allowed: true, RemainingDaily: remaining}, nil
}

// GetStats returns today's consumption against the current plan's cap.
func (s *Service) GetStats(ctx context.Context) (usage.Stats, error) {
	snap, err := s.CurrentSubscription(ctx)
	if err != nil {
		return usage.Stats{}, err
	}

	if s.meter != nil && snap.PlanID == PlanFree && snap.OriginalTransactionID == "" {
		return s.meter.GetStats(ctx)
	}

	plan, err := s.catalog.Plan(snap.PlanID)
	if err != nil {
		return usage.Stats{}, err
	}

	used := snap.DailyUsage.Count
	remaining := UnlimitedDaily
	if plan.DailyLimit != UnlimitedDaily {
		remaining = max(plan.DailyLimit-used, 0)
	}
	return usage.Stats{
		Daily: usage.DailyStats{Used: used, Limit: plan.DailyLimit, Remaining: remaining},
		Total: used,
	}, nil
}

// Cleanup tears the service down: the purchase listener stops before the
// billing connection closes so no event reaches a torn-down reconciler.
// Idempotent; the service can be re-initialized afterwards.
func (s *Service) Cleanup() error {
	s.mu.Lock()
	cancel := s.listenerCancel
	done := s.listenerDone
	s.listenerCancel = nil
	s.listenerDone = nil
	s.initFuture = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
	return s.store.Disconnect()
}

// handleEvent applies one asynchronously delivered purchase. Transactions
// already claimed by Purchase or Restore are skipped, as is everything
// while a restore is running.
func (s *Service) handleEvent(ctx context.Context, ev purchase.Event) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("purchase listener panic", "panic", r)
		}
	}()

	if ev.Err != nil {
		s.log.WarnContext(ctx, "purchase stream error", "error", ev.Err)
		return
	}
	if ev.Record == nil {
		return
	}
	rec := *ev.Record

	if s.restoring.Load() {
		return
	}
	if !s.markSeenOnce(rec.TransactionID) {
		return
	}

	resolved := s.resolveRecord(ctx, rec)
	existingPlanID, existing := s.existingPlan(ctx, rec.TransactionID)
	s.carryUsage(ctx, resolved, existing, resolved.PlanID == existingPlanID)

	if err := s.commit(ctx, resolved); err != nil {
		s.unmarkSeen(rec.TransactionID)
		s.notifier.Notify(Notice{Kind: NoticePurchaseFailed, Err: err})
		return
	}
	if err := s.store.Finish(ctx, rec); err != nil {
		s.log.WarnContext(ctx, "finishing transaction failed", "transaction_id", rec.TransactionID, "error", err)
	}
}

// resolveRecord turns one purchase record into the entitlement it grants.
// Unverifiable receipts and unknown products resolve to the free plan,
// but keep the transaction id so the downgrade still reaches the server
// under the right key.
func (s *Service) resolveRecord(ctx context.Context, rec purchase.Record) *snapshot.Snapshot {
	now := s.now()

	res, err := s.validator.Validate(ctx, rec)
	if err != nil || !res.Valid {
		if err != nil {
			s.log.WarnContext(ctx, "receipt validation failed", "transaction_id", rec.TransactionID, "error", err)
		} else {
			s.log.InfoContext(ctx, "receipt rejected", "transaction_id", rec.TransactionID)
		}
		return s.freeWithKey(now, rec.TransactionID)
	}

	plan, err := s.catalog.PlanForProduct(rec.ProductID)
	if err != nil {
		s.log.WarnContext(ctx, "purchase for unknown product", "product_id", rec.ProductID)
		return s.freeWithKey(now, rec.TransactionID)
	}

	snap := &snapshot.Snapshot{
		PlanID:                plan.ID,
		IsActive:              true,
		StartDate:             rec.TransactionDate.UnixMilli(),
		DailyUsage:            snapshot.DailyUsage{Date: snapshot.Day(now)},
		IsTrialUsed:           true,
		OriginalTransactionID: rec.TransactionID,
	}
	if !res.ExpiresAt.IsZero() {
		snap.EndDate = res.ExpiresAt.UnixMilli()
	}
	if snap.IsExpiredAt(now) {
		return s.freeWithKey(now, rec.TransactionID)
	}
	return snap
}

func (s *Service) freeWithKey(now time.Time, transactionID string) *snapshot.Snapshot {
	snap := snapshot.NewFree(now)
	snap.OriginalTransactionID = transactionID
	return snap
}

// existingPlan determines which plan the user held before this pass: the
// server-side record when one exists for the transaction, else the local
// snapshot. The comparison against the newly resolved plan drives the
// usage preserve-or-reset decision.
func (s *Service) existingPlan(ctx context.Context, transactionID string) (string, *snapshot.Snapshot) {
	local := s.currentLocal(ctx)
	if transactionID != "" {
		if row, err := s.sync.GetSubscription(ctx, transactionID); err == nil {
			return row.PlanID, local
		}
	}
	return local.PlanID, local
}

// carryUsage moves usage bookkeeping from the previous state onto the
// resolved snapshot. The trial flag is sticky regardless; the day's count
// carries over only when the plan did not change, and the server's count
// wins when it is higher (another device may have translated today).
func (s *Service) carryUsage(ctx context.Context, snap, existing *snapshot.Snapshot, preserve bool) {
	snap.IsTrialUsed = snap.IsTrialUsed || existing.IsTrialUsed
	if !preserve {
		return
	}

	count := 0.0
	if existing.DailyUsage.Date == snap.DailyUsage.Date {
		count = existing.DailyUsage.Count
	}
	if snap.OriginalTransactionID != "" {
		if row, err := s.sync.GetDailyUsage(ctx, snap.OriginalTransactionID, snap.DailyUsage.Date); err == nil && row.Count > count {
			count = row.Count
		}
	}
	snap.DailyUsage.Count = count
}

// commit writes the snapshot remotely then locally. The remote upsert is
// synchronous and failure-propagating: callers must not grant an
// entitlement the server never recorded.
func (s *Service) commit(ctx context.Context, snap *snapshot.Snapshot) error {
	s.committing.Store(true)
	defer s.committing.Store(false)

	if err := s.sync.UpsertSubscription(ctx, s.subscriptionRow(snap)); err != nil {
		return err
	}
	if err := s.local.Save(ctx, snap); err != nil {
		// Remote already holds the truth; the local copy refreshes on read.
		s.log.ErrorContext(ctx, "saving snapshot failed", "error", err)
	}
	s.setLastKnown(snap)
	return nil
}

// commitFree applies the free fallback: local save always happens, the
// remote upsert is best-effort. Used when the platform store or the
// server cannot be consulted, so the user keeps working offline without
// keeping a paid plan the system cannot verify.
func (s *Service) commitFree(ctx context.Context, preserve bool) *snapshot.Snapshot {
	now := s.now()
	existing := s.currentLocal(ctx)

	snap := snapshot.NewFree(now)
	snap.OriginalTransactionID = existing.OriginalTransactionID
	snap.IsTrialUsed = existing.IsTrialUsed
	if preserve && existing.DailyUsage.Date == snapshot.Day(now) {
		snap.DailyUsage = existing.DailyUsage
	}

	if err := s.sync.UpsertSubscription(ctx, s.subscriptionRow(snap)); err != nil {
		s.log.WarnContext(ctx, "free fallback not recorded remotely", "error", err)
	}
	if err := s.local.Save(ctx, snap); err != nil {
		s.log.ErrorContext(ctx, "saving snapshot failed", "error", err)
	}
	s.setLastKnown(snap)
	return snap
}

func (s *Service) subscriptionRow(snap *snapshot.Snapshot) remote.SubscriptionRow {
	return remote.SubscriptionRow{
		TransactionID: snap.OriginalTransactionID,
		PlanID:        snap.PlanID,
		IsActive:      snap.IsActive,
		StartDate:     snap.StartDate,
		EndDate:       snap.EndDate,
		UpdatedAt:     s.now(),
	}
}

// pushUsage syncs the day's count to the server without blocking the
// caller. Failures are logged, never surfaced: usage sync is advisory.
func (s *Service) pushUsage(snap *snapshot.Snapshot) {
	if snap.OriginalTransactionID == "" {
		return
	}
	row := remote.UsageRow{
		TransactionID: snap.OriginalTransactionID,
		Date:          snap.DailyUsage.Date,
		Count:         snap.DailyUsage.Count,
		StartDate:     snap.StartDate,
		EndDate:       snap.EndDate,
		UpdatedAt:     s.now(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), usageSyncTimeout)
		defer cancel()
		if err := s.sync.UpsertDailyUsage(ctx, row); err != nil {
			s.log.Warn("daily usage sync failed", "transaction_id", row.TransactionID, "error", err)
		}
	}()
}

func (s *Service) currentLocal(ctx context.Context) *snapshot.Snapshot {
	snap, err := s.CurrentSubscription(ctx)
	if err != nil {
		return snapshot.NewFree(s.now())
	}
	return snap
}

func (s *Service) markReconciled() {
	s.reconcileMu.Lock()
	s.lastReconcile = s.now()
	s.reconcileMu.Unlock()
}

func (s *Service) markSeen(transactionID string) {
	s.seenMu.Lock()
	s.seen[transactionID] = struct{}{}
	s.seenMu.Unlock()
}

// markSeenOnce claims the transaction id, reporting false when it was
// already claimed.
func (s *Service) markSeenOnce(transactionID string) bool {
	s.seenMu.Lock()
	defer s.seenMu.Unlock()
	if _, ok := s.seen[transactionID]; ok {
		return false
	}
	s.seen[transactionID] = struct{}{}
	return true
}

func (s *Service) unmarkSeen(transactionID string) {
	s.seenMu.Lock()
	delete(s.seen, transactionID)
	s.seenMu.Unlock()
}

func (s *Service) setLastKnown(snap *snapshot.Snapshot) {
	s.lastKnownMu.Lock()
	s.lastKnown = snap.Clone()
	s.lastKnownMu.Unlock()
}

func (s *Service) getLastKnown() *snapshot.Snapshot {
	s.lastKnownMu.RLock()
	defer s.lastKnownMu.RUnlock()
	if s.lastKnown == nil {
		return nil
	}
	return s.lastKnown.Clone()
}

// latestRecord picks the purchase to honor when the store reports several
// active ones: the newest by transaction date, first seen winning ties.
func latestRecord(records []purchase.Record) purchase.Record {
	best := records[0]
	for _, rec := range records[1:] {
		if rec.TransactionDate.After(best.TransactionDate) {
			best = rec
		}
	}
	return best
}
