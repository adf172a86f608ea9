package textra

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"horse.fit/minhon/internal/config"
	"horse.fit/minhon/internal/langdetect"
)

// TokenSource yields an access token for the translation request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client drives the ja->en translation endpoint: it validates
// configuration, obtains a token, issues the POST, and normalizes
// success and failure outcomes. A single failed attempt is a single
// reported failure; there are no retries.
type Client struct {
	cfg        *config.Config
	tokens     TokenSource
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewClient(cfg *config.Config, logger zerolog.Logger) *Client {
	timeout := 30 * time.Second
	if cfg != nil && cfg.HTTPTimeout > 0 {
		timeout = cfg.HTTPTimeout
	}
	return &Client{
		cfg:    cfg,
		tokens: NewTokenManager(cfg, logger),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Translate translates Japanese text to English. An empty translated
// text on a success code is a valid, if degenerate, result and comes
// back as "" with a nil error.
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	if c == nil || c.cfg == nil {
		return "", newError(KindUnexpected, "translation client is not initialized", nil)
	}

	if strings.TrimSpace(c.cfg.TranslateURL) == "" ||
		strings.TrimSpace(c.cfg.UserName) == "" ||
		strings.TrimSpace(c.cfg.APIKey) == "" {
		return "", newError(KindConfiguration, "API URL, user name, and API key must be configured", nil)
	}

	if code, foreign := langdetect.LooksForeign(text); foreign {
		c.logger.Warn().Str("detected_lang", code).Msg("input does not look Japanese")
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		// Token failures keep their own kind.
		return "", err
	}

	form := url.Values{}
	form.Set("access_token", token)
	form.Set("key", c.cfg.APIKey)
	form.Set("name", c.cfg.UserName)
	form.Set("type", "json")
	form.Set("text", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TranslateURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", newError(KindUnexpected, "Error during translation", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c.logger.Debug().Str("url", c.cfg.TranslateURL).Int("chars", len([]rune(text))).Msg("sending translation request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", newError(KindNetwork, "Network error during translation", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", newError(KindNetwork, "Network error during translation", err)
	}

	// The result code in the body is authoritative; the HTTP status
	// is not inspected. A non-JSON error page therefore surfaces as
	// an unexpected error, same as any other malformed body.
	var parsed translateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", newError(KindUnexpected, "Error during translation", fmt.Errorf("decode translation response: %w", err))
	}

	code := parsed.Resultset.Code.String()
	if code != "0" {
		message := strings.TrimSpace(parsed.Resultset.Message)
		if message == "" {
			message = "Unknown error"
		}
		return "", newError(KindRemoteAPI, fmt.Sprintf("Translation API error: %s (code: %s)", message, code), nil)
	}

	translated := parsed.Resultset.Result.Text
	if translated == "" {
		c.logger.Warn().Msg("translation result is empty")
	} else {
		c.logger.Debug().Int("chars", len([]rune(translated))).Msg("translation successful")
	}

	return translated, nil
}
