package remote

import (
	"context"
	"sync"
	"time"
)

// MemoryClient is an in-memory SyncClient for tests. Error injection
// fields make remote failure paths reproducible.
type MemoryClient struct {
	mu            sync.RWMutex
	subscriptions map[string]SubscriptionRow
	usage         map[string]UsageRow // key: transactionID + "|" + date

	// SubscriptionErr, when set, is returned by every subscription upsert.
	SubscriptionErr error
	// UsageErr, when set, is returned by every usage upsert.
	UsageErr error

	subscriptionUpserts int
}

func NewMemoryClient() *MemoryClient {
	return &MemoryClient{
		subscriptions: make(map[string]SubscriptionRow),
		usage:         make(map[string]UsageRow),
	}
}

func (c *MemoryClient) UpsertSubscription(ctx context.Context, row SubscriptionRow) error {
	if row.TransactionID == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.SubscriptionErr != nil {
		return c.SubscriptionErr
	}
	row.UpdatedAt = time.Now().UTC()
	c.subscriptions[row.TransactionID] = row
	c.subscriptionUpserts++
	return nil
}

func (c *MemoryClient) UpsertDailyUsage(ctx context.Context, row UsageRow) error {
	if row.TransactionID == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.UsageErr != nil {
		return c.UsageErr
	}
	row.UpdatedAt = time.Now().UTC()
	c.usage[row.TransactionID+"|"+row.Date] = row
	return nil
}

func (c *MemoryClient) GetSubscription(ctx context.Context, transactionID string) (*SubscriptionRow, error) {
	if transactionID == "" {
		return nil, ErrNotFound
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	row, ok := c.subscriptions[transactionID]
	if !ok {
		return nil, ErrNotFound
	}
	return &row, nil
}

func (c *MemoryClient) GetDailyUsage(ctx context.Context, transactionID, date string) (*UsageRow, error) {
	if transactionID == "" {
		return nil, ErrNotFound
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	row, ok := c.usage[transactionID+"|"+date]
	if !ok {
		return nil, ErrNotFound
	}
	return &row, nil
}

// SubscriptionUpserts returns how many subscription upserts were stored.
func (c *MemoryClient) SubscriptionUpserts() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.subscriptionUpserts
}
