// Package upstream is the client for the equipment-booking API. It
// exchanges client credentials for a short-lived bearer token, caches
// the token across requests, and fetches the raw booking rows for a
// given day.
package upstream

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/kitboardapp/kitboard-server/internal/booking"
	"github.com/kitboardapp/kitboard-server/internal/config"
	"github.com/kitboardapp/kitboard-server/internal/errors"
	"github.com/kitboardapp/kitboard-server/internal/ratelimit"
)

const (
	// Rate limit: 2 requests per second against the booking API, burst of 4.
	defaultRPS   = 2.0
	defaultBurst = 4

	// A token this close to expiry is treated as already expired, so a
	// request never leaves with a token that dies in flight.
	tokenSafetyMargin = 3 * time.Second

	dateParamLayout = "2006-01-02"
)

// Client is a rate-limited booking-API client with a cached bearer token.
type Client struct {
	http    *http.Client
	limiter *ratelimit.KeyedLimiter
	logger  *slog.Logger

	baseURL      string
	clientID     string
	clientSecret string

	mu     sync.Mutex
	token  string
	expiry time.Time
}

// New creates a booking-API client from the upstream configuration.
func New(cfg config.UpstreamConfig, logger *slog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter:      ratelimit.New(defaultRPS, defaultBurst),
		logger:       logger,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
	}
}

// FetchBookings retrieves the raw booking rows for the given day. A 401
// with a cached token invalidates the cache and retries exactly once
// with a fresh one.
func (c *Client) FetchBookings(ctx context.Context, day time.Time) ([]booking.RawRow, error) {
	token, err := c.bearerToken(ctx)
	if err != nil {
		return nil, err
	}

	rows, status, err := c.fetchOnce(ctx, day, token)
	if status == http.StatusUnauthorized {
		c.invalidate(token)
		token, err = c.bearerToken(ctx)
		if err != nil {
			return nil, err
		}
		rows, _, err = c.fetchOnce(ctx, day, token)
	}
	return rows, err
}

// fetchOnce performs one bookings GET. The status code is returned so
// the caller can distinguish a rejected token from other failures.
func (c *Client) fetchOnce(ctx context.Context, day time.Time, token string) ([]booking.RawRow, int, error) {
	if err := c.limiter.Wait(ctx, c.baseURL); err != nil {
		return nil, 0, errors.Wrap(err, errors.CodeUpstreamFetch, "rate limit wait")
	}

	query := url.Values{}
	query.Set("date", day.Format(dateParamLayout))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/bookings?"+query.Encode(), nil)
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.CodeUpstreamFetch, "create bookings request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	c.logger.Debug("fetching bookings", "date", day.Format(dateParamLayout))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.CodeUpstreamFetch, "booking list request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, errors.Wrap(err, errors.CodeUpstreamFetch, "read bookings response")
	}

	if resp.StatusCode != http.StatusOK {
		// The upstream error payload is kept verbatim for troubleshooting.
		return nil, resp.StatusCode,
			errors.UpstreamFetchf("booking API returned %d: %s", resp.StatusCode, string(body))
	}

	rows, err := decodeRows(body)
	if err != nil {
		return nil, resp.StatusCode, errors.Wrap(err, errors.CodeUpstreamFetch, "decode bookings response")
	}
	return rows, resp.StatusCode, nil
}

// bearerToken returns the cached token, refreshing it when absent or
// within the safety margin of expiry.
func (c *Client) bearerToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Until(c.expiry) > tokenSafetyMargin {
		return c.token, nil
	}

	token, expiry, err := c.requestToken(ctx)
	if err != nil {
		return "", err
	}
	c.token = token
	c.expiry = expiry
	return token, nil
}

// invalidate drops the cached token if it is still the one that was
// rejected. A token refreshed by a concurrent request survives.
func (c *Client) invalidate(rejected string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == rejected {
		c.token = ""
		c.expiry = time.Time{}
	}
}

type tokenRequest struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// requestToken exchanges the client credentials for a bearer token.
// Callers must hold c.mu.
func (c *Client) requestToken(ctx context.Context) (string, time.Time, error) {
	payload, err := json.Marshal(tokenRequest{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
	})
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, errors.CodeUpstreamAuth, "marshal token request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/auth/token", bytes.NewReader(payload))
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, errors.CodeUpstreamAuth, "create token request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("requesting booking API token")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, errors.CodeUpstreamAuth, "token request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, errors.CodeUpstreamAuth, "read token response")
	}
	if resp.StatusCode != http.StatusOK {
		return "", time.Time{},
			errors.UpstreamAuthf("token endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", time.Time{}, errors.Wrap(err, errors.CodeUpstreamAuth, "decode token response")
	}
	if tr.Token == "" {
		return "", time.Time{}, errors.UpstreamAuth("token endpoint returned no token")
	}

	expiry := time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	return tr.Token, expiry, nil
}

// decodeRows parses the bookings payload. The upstream names its
// category-hint field inconsistently across installations, so every
// populated variant is collected into CategoryHints.
func decodeRows(body []byte) ([]booking.RawRow, error) {
	var raw []rawBookingRow
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal booking rows: %w", err)
	}

	rows := make([]booking.RawRow, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, booking.RawRow{
			Username:      r.Username,
			UserBarcode:   r.UserBarcode,
			AssetName:     r.AssetName,
			StartDateTime: r.StartDateTime,
			CurrentStatus: r.CurrentStatus,
			CategoryHints: r.hints(),
		})
	}
	return rows, nil
}

type rawBookingRow struct {
	Username      string `json:"username"`
	UserBarcode   string `json:"userBarcode"`
	AssetName     string `json:"assetName"`
	StartDateTime string `json:"startDateTime"`
	CurrentStatus string `json:"currentStatus"`

	AssetCategoryName string `json:"assetCategoryName"`
	CategoryName      string `json:"categoryName"`
	Department        string `json:"department"`
	AssetCategory     string `json:"assetCategory"`
}

func (r rawBookingRow) hints() []string {
	var hints []string
	for _, h := range []string{r.AssetCategoryName, r.CategoryName, r.Department, r.AssetCategory} {
		if h != "" {
			hints = append(hints, h)
		}
	}
	return hints
}
