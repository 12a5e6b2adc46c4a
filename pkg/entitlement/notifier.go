package entitlement

// NoticeKind identifies the class of an out-of-band entitlement event.
type NoticeKind string

const (
	// NoticeEntitlementReverted signals that a purchase completed at the
	// store but the entitlement could not be committed, so the app is
	// still on its previous plan.
	NoticeEntitlementReverted NoticeKind = "entitlement_reverted"
	// NoticeRestoreTimeout signals that a restore gave up waiting on the
	// platform store.
	NoticeRestoreTimeout NoticeKind = "restore_timeout"
	// NoticePurchaseFailed signals that an asynchronously delivered
	// purchase could not be applied.
	NoticePurchaseFailed NoticeKind = "purchase_failed"
)

// Notice carries an out-of-band event the app surface may want to show
// to the user, like a "purchase could not be applied" banner.
type Notice struct {
	Kind NoticeKind
	Err  error
}

// Notifier receives out-of-band entitlement events. Implementations must
// be safe for concurrent use and must not block: the service calls
// Notify from its reconcile and listener paths.
type Notifier interface {
	Notify(notice Notice)
}

// NopNotifier discards all notices.
type NopNotifier struct{}

func (NopNotifier) Notify(Notice) {}
