package receipt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/JayKim88/polylingo-entitlements/pkg/async"
	"github.com/JayKim88/polylingo-entitlements/pkg/purchase"
)

// Result is the outcome of validating one purchase receipt.
type Result struct {
	Valid bool

	// ExpiresAt is the entitlement expiry reported by the backend.
	// Zero when the backend reported none (non-expiring purchase).
	ExpiresAt time.Time
}

// Validator validates purchase receipts. Satisfied by *Client; the
// reconciler depends on this interface so tests can substitute fakes.
type Validator interface {
	Validate(ctx context.Context, rec purchase.Record) (Result, error)
}

// Client calls the receipt validation backend over HTTPS.
//
// Every call is raced against the configured timeout. A timeout resolves to
// a defined fallback rather than hanging: validation failure in production,
// a lenient pass in the sandbox environment so local development without
// backend access keeps working.
type Client struct {
	httpClient *http.Client
	cfg        Config
	log        *slog.Logger
	sandbox    bool
	now        func() time.Time
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithLogger sets the logger; defaults to slog.Default().
func WithLogger(log *slog.Logger) ClientOption {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithClock overrides the time source for expiry checks in tests.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// NewClient creates a receipt validation client.
func NewClient(cfg Config, opts ...ClientOption) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	var sandbox bool
	switch strings.ToLower(cfg.Environment) {
	case EnvSandbox:
		sandbox = true
	case EnvProduction, "":
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidEnvironment, cfg.Environment)
	}

	switch cfg.Platform {
	case "ios", "android":
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidPlatform, cfg.Platform)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	c := &Client{
		// The client-level timeout reaps the request goroutine shortly
		// after the race below is decided, so abandoned calls don't leak.
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		log:        slog.Default(),
		sandbox:    sandbox,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type validateRequest struct {
	ReceiptData string `json:"receiptData"`
	IsTest      bool   `json:"isTest"`
	Platform    string `json:"platform"`
}

type validateResponse struct {
	IsValid     bool   `json:"isValid"`
	ExpiresDate string `json:"expiresDate,omitempty"`
}

// Validate submits the purchase's receipt blob to the validation backend.
//
// A receipt counts as valid only when the backend accepts it AND any
// reported expiry lies in the future - a receipt can be cryptographically
// valid yet expired, and both conditions must hold.
func (c *Client) Validate(ctx context.Context, rec purchase.Record) (Result, error) {
	future := async.Run(ctx, func(ctx context.Context) (Result, error) {
		return c.verify(ctx, rec)
	})

	res, err := future.AwaitWithTimeout(c.cfg.Timeout)
	if errors.Is(err, async.ErrTimeout) {
		if c.sandbox {
			c.log.WarnContext(ctx, "receipt validation timed out, passing leniently in sandbox",
				"transaction_id", rec.TransactionID)
			return Result{Valid: true}, nil
		}
		c.log.WarnContext(ctx, "receipt validation timed out, treating as invalid",
			"transaction_id", rec.TransactionID)
		return Result{}, nil
	}
	return res, err
}

func (c *Client) verify(ctx context.Context, rec purchase.Record) (Result, error) {
	body, err := json.Marshal(validateRequest{
		ReceiptData: rec.Receipt,
		IsTest:      c.sandbox,
		Platform:    c.cfg.Platform,
	})
	if err != nil {
		return Result{}, err
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/validate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Result{}, errors.Join(ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, errors.Join(ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var reply validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return Result{}, errors.Join(ErrMalformedReply, err)
	}

	result := Result{Valid: reply.IsValid}
	if reply.ExpiresDate != "" {
		expiresAt, err := time.Parse(time.RFC3339, reply.ExpiresDate)
		if err != nil {
			return Result{}, errors.Join(ErrMalformedReply, err)
		}
		result.ExpiresAt = expiresAt
		if !c.now().Before(expiresAt) {
			result.Valid = false
		}
	}
	return result, nil
}
