// Package entitlement is the subscription reconciliation core of the
// PolyLingo translation app.
//
// It derives the user's entitlement - plan, validity window, daily usage -
// from three unreliable collaborators: the platform in-app-purchase store,
// the receipt validation backend, and the remote subscription database.
// The result is one authoritative local snapshot that the rest of the app
// reads synchronously, even fully offline.
//
// The reconciler is deliberately conservative. Every failure mode resolves
// toward less entitlement: unverifiable receipts grant the free plan,
// a paid plan that cannot be recorded server-side is reverted locally,
// and expired entitlements are coerced on read before any network call.
//
// Basic wiring:
//
//	catalog, err := entitlement.NewCatalog(ctx, entitlement.NewInMemSource(entitlement.DefaultPlans()...))
//	if err != nil {
//		return err
//	}
//	svc := entitlement.NewService(store, validator, syncClient, snapshotStore, catalog,
//		entitlement.WithLogger(log),
//		entitlement.WithDeviceMeter(meter),
//	)
//	if _, err := svc.Initialize(ctx); err != nil {
//		return err
//	}
//	defer svc.Cleanup()
//
//	snap, err := svc.Reconcile(ctx)
package entitlement
