// Package riot is the single point of contact with the Riot API. It applies
// per-call timeouts, a shared request limiter, and a bounded retry loop for
// rate-limit and transient-network failures.
package riot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultRetryAfter = time.Second

type Config struct {
	APIKey      string
	BaseURL     string // routing region host, account + match endpoints
	RegionalURL string // platform region host, summoner endpoint

	Timeout          time.Duration // per-call HTTP timeout
	RetryBudget      int           // retries per call, not counting the first attempt
	TransientBackoff time.Duration // fixed wait between transient retries
	FetchInterval    time.Duration // minimum spacing between requests, shared across callers

	Clock  clockwork.Clock
	Logger *zap.Logger
}

type Client struct {
	http             *http.Client
	apiKey           string
	baseURL          string
	regionalURL      string
	retryBudget      int
	transientBackoff time.Duration
	limiter          *rate.Limiter
	clock            clockwork.Clock
	logger           *zap.SugaredLogger
}

func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RetryBudget <= 0 {
		cfg.RetryBudget = 3
	}
	if cfg.TransientBackoff <= 0 {
		cfg.TransientBackoff = 2 * time.Second
	}
	if cfg.FetchInterval <= 0 {
		cfg.FetchInterval = 150 * time.Millisecond
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Client{
		http:             &http.Client{Timeout: cfg.Timeout},
		apiKey:           cfg.APIKey,
		baseURL:          cfg.BaseURL,
		regionalURL:      cfg.RegionalURL,
		retryBudget:      cfg.RetryBudget,
		transientBackoff: cfg.TransientBackoff,
		limiter:          rate.NewLimiter(rate.Every(cfg.FetchInterval), 1),
		clock:            cfg.Clock,
		logger:           cfg.Logger.Sugar(),
	}
}

// AccountByRiotID resolves a riot id (name + tag) to an account.
func (c *Client) AccountByRiotID(ctx context.Context, name, tag string) (*Account, error) {
	u := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.baseURL, url.PathEscape(name), url.PathEscape(tag))

	var account Account
	if err := c.getJSON(ctx, u, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// SummonerByPUUID fetches the summoner profile for a known puuid.
func (c *Client) SummonerByPUUID(ctx context.Context, puuid string) (*Summoner, error) {
	u := fmt.Sprintf("%s/lol/summoner/v4/summoners/by-puuid/%s", c.regionalURL, url.PathEscape(puuid))

	var summoner Summoner
	if err := c.getJSON(ctx, u, &summoner); err != nil {
		return nil, err
	}
	return &summoner, nil
}

// MatchIDsByPUUID fetches one page of match ids for a puuid.
func (c *Client) MatchIDsByPUUID(ctx context.Context, puuid string, start, count int) ([]string, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?start=%d&count=%d",
		c.baseURL, url.PathEscape(puuid), start, count)

	var ids []string
	if err := c.getJSON(ctx, u, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Match fetches full match detail. The verbatim response body is retained on
// the returned value for audit storage.
func (c *Client) Match(ctx context.Context, matchID string) (*Match, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.baseURL, url.PathEscape(matchID))

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var match Match
	if err := json.Unmarshal(body, &match); err != nil {
		return nil, fmt.Errorf("decode match %s: %w", matchID, err)
	}
	match.Raw = body
	return &match, nil
}

func (c *Client) getJSON(ctx context.Context, url string, dest any) error {
	body, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// get performs one logical fetch with a bounded retry loop. 429s wait the
// server's Retry-After, transient network failures wait a fixed backoff;
// both retry up to the budget. 404 and 401/403 surface immediately.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		body, err := c.doOnce(ctx, url)
		if err == nil {
			requestsTotal.WithLabelValues("success").Inc()
			return body, nil
		}

		var rl *rateLimitedError
		var tr *transientError
		switch {
		case errors.As(err, &rl):
			if attempt >= c.retryBudget {
				requestsTotal.WithLabelValues("rate_limited").Inc()
				return nil, fmt.Errorf("%w after %d attempts", ErrRateLimited, attempt+1)
			}
			retriesTotal.WithLabelValues("rate_limited").Inc()
			c.logger.Infow("Rate limited by upstream, waiting", "url", url, "retryAfter", rl.retryAfter, "attempt", attempt+1)
			if err := c.sleep(ctx, rl.retryAfter); err != nil {
				return nil, err
			}
		case errors.As(err, &tr):
			if attempt >= c.retryBudget {
				requestsTotal.WithLabelValues("transient").Inc()
				return nil, fmt.Errorf("%w after %d attempts: %v", ErrTransient, attempt+1, tr.err)
			}
			retriesTotal.WithLabelValues("transient").Inc()
			c.logger.Warnw("Transient upstream failure, retrying", "url", url, "error", tr.err, "attempt", attempt+1)
			if err := c.sleep(ctx, c.transientBackoff); err != nil {
				return nil, err
			}
		default:
			requestsTotal.WithLabelValues("error").Inc()
			return nil, err
		}
	}
}

func (c *Client) doOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Riot-Token", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		// Connection resets, timeouts and the like all land here.
		return nil, &transientError{err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return io.ReadAll(resp.Body)
	}

	body, _ := io.ReadAll(resp.Body)
	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return nil, &rateLimitedError{retryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: status %d", ErrUnauthorized, resp.StatusCode)
	default:
		return nil, &StatusError{Status: resp.StatusCode, Body: string(body)}
	}
}

func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-c.clock.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return defaultRetryAfter
	}
	secs, err := strconv.Atoi(header)
	if err != nil || secs <= 0 {
		return defaultRetryAfter
	}
	return time.Duration(secs) * time.Second
}
