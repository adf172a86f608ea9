package textra

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"horse.fit/minhon/internal/config"
	"horse.fit/minhon/internal/globaltime"
)

const (
	// tokenSafetyMargin keeps a token from being used right at the
	// provider-reported expiry.
	tokenSafetyMargin = 60 * time.Second

	// defaultExpiresIn applies when the provider omits expires_in.
	defaultExpiresIn = 3600 * time.Second
)

// tokenCache holds the cached access token. Value and expiry are only
// ever replaced together, under the mutex.
type tokenCache struct {
	mu        sync.Mutex
	value     string
	expiresAt time.Time
}

func (c *tokenCache) clearLocked() {
	c.value = ""
	c.expiresAt = time.Time{}
}

// TokenManager owns the cached TexTra access token and performs the
// OAuth2 client-credentials exchange when the cache is empty or stale.
// It is safe for concurrent use; the check/fetch/store sequence runs
// as one critical section, so concurrent cache misses result in a
// single exchange.
type TokenManager struct {
	cfg        *config.Config
	httpClient *http.Client
	logger     zerolog.Logger
	now        func() time.Time
	cache      *tokenCache
}

func NewTokenManager(cfg *config.Config, logger zerolog.Logger) *TokenManager {
	timeout := 30 * time.Second
	if cfg != nil && cfg.HTTPTimeout > 0 {
		timeout = cfg.HTTPTimeout
	}
	return &TokenManager{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
		now:    globaltime.Now,
		cache:  &tokenCache{},
	}
}

// Token returns a valid access token, reusing the cached one until it
// reaches its safety-margin expiry.
func (m *TokenManager) Token(ctx context.Context) (string, error) {
	if m == nil || m.cfg == nil {
		return "", newError(KindUnexpected, "token manager is not initialized", nil)
	}

	if strings.TrimSpace(m.cfg.APIKey) == "" ||
		strings.TrimSpace(m.cfg.APISecret) == "" ||
		strings.TrimSpace(m.cfg.TokenURL) == "" {
		return "", newError(KindConfiguration, "API key, API secret, and token URL must be configured", nil)
	}

	m.cache.mu.Lock()
	defer m.cache.mu.Unlock()

	now := m.now()
	if m.cache.value != "" && now.Before(m.cache.expiresAt) {
		m.logger.Debug().Time("expires_at", m.cache.expiresAt).Msg("using cached access token")
		return m.cache.value, nil
	}

	m.logger.Info().Msg("cached token expired or not found, fetching new token")

	token, expiresIn, err := m.exchange(ctx)
	if err != nil {
		m.cache.clearLocked()
		return "", err
	}

	// Expiry counts from the moment the fetch started, not from when
	// the response arrived.
	m.cache.value = token
	m.cache.expiresAt = now.Add(expiresIn - tokenSafetyMargin)

	m.logger.Info().Time("expires_at", m.cache.expiresAt).Msg("obtained new access token")
	return token, nil
}

// exchange performs the client-credentials grant against the token
// endpoint. Every failure mode comes back as an authentication error
// chaining the underlying cause.
func (m *TokenManager) exchange(ctx context.Context) (string, time.Duration, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", m.cfg.APIKey)
	form.Set("client_secret", m.cfg.APISecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, newError(KindAuthentication, "Failed to fetch access token", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", 0, newError(KindAuthentication, "Failed to fetch access token", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, newError(KindAuthentication, "Failed to fetch access token", fmt.Errorf("read token response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", 0, newError(KindAuthentication, "Failed to fetch access token",
			fmt.Errorf("token endpoint status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var parsed tokenResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", 0, newError(KindAuthentication, "Failed to fetch access token", fmt.Errorf("decode token response: %w", err))
	}

	if strings.TrimSpace(parsed.AccessToken) == "" {
		return "", 0, newError(KindAuthentication, "failed to retrieve access token from response", nil)
	}

	expiresIn := time.Duration(parsed.ExpiresIn) * time.Second
	if expiresIn <= 0 {
		expiresIn = defaultExpiresIn
	}

	return parsed.AccessToken, expiresIn, nil
}
