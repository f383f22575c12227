// internal/adapters/synxis/client.go
package synxis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"synxis_pms/internal/adapters/observability"
	"synxis_pms/internal/domain"
	"synxis_pms/internal/shared"
)

// tokenScope is the fixed scope requested during the client-credentials grant.
const tokenScope = "pms.read pms.write"

const userAgent = "synxis-pms/0.1"

// Remote is the authenticated SynXis backend. It owns the cached access token
// and the retrying request dispatcher; one method per PMS operation lives in
// ops.go.
type Remote struct {
	cfg shared.Settings
	hc  *http.Client
	rl  *rate.Limiter
	log zerolog.Logger

	unit time.Duration // backoff unit between retry attempts

	mu    sync.Mutex
	token string
}

type Option func(*Remote)

// WithHTTPClient overrides the transport (tests).
func WithHTTPClient(hc *http.Client) Option { return func(c *Remote) { c.hc = hc } }

// WithBackoffUnit shrinks the sleep between retry attempts (tests).
func WithBackoffUnit(d time.Duration) Option { return func(c *Remote) { c.unit = d } }

func NewRemote(cfg shared.Settings, logger zerolog.Logger, opts ...Option) *Remote {
	c := &Remote{
		cfg:  cfg,
		hc:   &http.Client{Timeout: cfg.Timeout},
		rl:   rate.NewLimiter(rate.Limit(5), 5),
		log:  logger,
		unit: time.Second,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Close releases pooled connections.
func (c *Remote) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

// ---- Token lifecycle ----

// accessToken returns the cached token or performs a client-credentials
// exchange. The token carries no expiry tracking; it is trusted until a
// request using it comes back 401.
func (c *Remote) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.token != "" {
		t := c.token
		c.mu.Unlock()
		return t, nil
	}
	c.mu.Unlock()

	if !c.cfg.HasCredentials() {
		return "", domain.NewAuthConfigError("client credentials are not configured")
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"scope":         {tokenScope},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL(c.cfg.BaseURL), strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		observability.ObserveTokenExchange("error")
		return "", domain.NewServiceUnavailable("token endpoint unreachable: " + err.Error())
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		observability.ObserveTokenExchange("rejected")
		return "", domain.NewAuthFailure("token exchange rejected", nil)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		observability.ObserveTokenExchange("rejected")
		return "", domain.NewAuthFailure("token exchange failed", map[string]any{
			"upstream_status": resp.StatusCode,
			"body":            strings.TrimSpace(string(body)),
		})
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.AccessToken == "" {
		observability.ObserveTokenExchange("error")
		return "", domain.NewContractError("token response is missing access_token")
	}

	c.mu.Lock()
	c.token = payload.AccessToken
	c.mu.Unlock()
	observability.ObserveTokenExchange("ok")
	c.log.Debug().Str("client_id", c.cfg.MaskedClientID()).Msg("access token acquired")
	return payload.AccessToken, nil
}

// invalidateToken drops the cached token so the next call re-authenticates.
// Concurrent invalidations are harmless; last writer wins on refresh.
func (c *Remote) invalidateToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

// tokenURL derives the OAuth endpoint from the API base by stripping a
// trailing version segment: .../pms/v1 -> .../pms/oauth/token.
func tokenURL(base string) string {
	base = strings.TrimRight(base, "/")
	if i := strings.LastIndex(base, "/"); i > 0 {
		seg := base[i+1:]
		if len(seg) >= 2 && seg[0] == 'v' && seg[1] >= '0' && seg[1] <= '9' {
			base = base[:i]
		}
	}
	return base + "/oauth/token"
}

// ---- Authenticated dispatch ----

// dispatch runs the authenticated request protocol: bearer token, one-shot
// refresh on 401, 404 surfaced as domain.ErrNotFound, and up to MaxRetries
// attempts with exponential backoff for everything else. out, when non-nil,
// receives the decoded 2xx JSON body.
func (c *Remote) dispatch(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = b
	}

	// MaxRetries bounds the attempt count directly: 0 means no request is
	// issued at all and the exhaustion fallback below reports 503.
	attempts := c.cfg.MaxRetries

	for attempt := 0; attempt < attempts; attempt++ {
		status, respBody, err := c.doAuthenticated(ctx, method, path, query, payload)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			var pe *domain.PMSError
			if errors.As(err, &pe) {
				// token acquisition failures are not transient; surface now
				return err
			}
			c.log.Warn().Err(err).Int("attempt", attempt+1).Str("path", path).Msg("request attempt failed")
			if attempt < attempts-1 {
				if !sleepCtx(ctx, c.backoff(attempt)) {
					return ctx.Err()
				}
				continue
			}
			return domain.NewServiceUnavailable("request failed: " + err.Error())
		}

		switch {
		case status == http.StatusNotFound:
			return domain.ErrNotFound
		case status >= 200 && status < 300:
			if out == nil || len(respBody) == 0 {
				return nil
			}
			if err := json.Unmarshal(respBody, out); err != nil {
				return domain.NewContractError("malformed response body: " + err.Error())
			}
			return nil
		default:
			c.log.Warn().Int("status", status).Int("attempt", attempt+1).Str("path", path).Msg("upstream error response")
			if attempt < attempts-1 {
				if !sleepCtx(ctx, c.backoff(attempt)) {
					return ctx.Err()
				}
				continue
			}
			return domain.NewUpstreamFailure(status, errorMessage(respBody))
		}
	}

	// reached only when MaxRetries is zero: no attempt was made
	return domain.NewServiceUnavailable("max retries exceeded")
}

// doAuthenticated issues one request. On 401 the cached token is invalidated
// and the request reissued once with a fresh token; the reissue does not
// consume a retry-budget slot.
func (c *Remote) doAuthenticated(ctx context.Context, method, path string, query url.Values, payload []byte) (int, []byte, error) {
	status, body, err := c.doOnce(ctx, method, path, query, payload)
	if err != nil || status != http.StatusUnauthorized {
		return status, body, err
	}

	c.log.Info().Str("path", path).Msg("access token rejected, refreshing once")
	c.invalidateToken()
	return c.doOnce(ctx, method, path, query, payload)
}

func (c *Remote) doOnce(ctx context.Context, method, path string, query url.Values, payload []byte) (int, []byte, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return 0, nil, err
	}

	u := c.cfg.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var rd io.Reader
	if payload != nil {
		rd = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	resp.Body.Close()
	observability.ObserveOutbound(endpointLabel(path), method, resp.StatusCode, time.Since(start))
	return resp.StatusCode, body, nil
}

// backoff returns the sleep before the next attempt: (1<<attempt) backoff
// units, attempt counted from 0.
func (c *Remote) backoff(attempt int) time.Duration {
	return time.Duration(1<<attempt) * c.unit
}

// sleepCtx waits for d or returns false if ctx is done first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// errorMessage pulls the "message" field from a JSON error body, falling back
// to the raw text.
func errorMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	if s := strings.TrimSpace(string(body)); s != "" {
		return s
	}
	return "upstream request failed"
}

// endpointLabel keeps metric cardinality bounded: only the leading path
// segment is recorded.
func endpointLabel(path string) string {
	p := strings.TrimPrefix(path, "/")
	if i := strings.Index(p, "/"); i > 0 {
		p = p[:i]
	}
	return "/" + p
}
