package fatsecret

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// tokenSafetyMargin is subtracted from the token lifetime so a token that is
// about to expire is refreshed instead of reused.
const tokenSafetyMargin = 60 * time.Second

const defaultExpiresIn = 3600

type cachedToken struct {
	accessToken string
	expiresAt   time.Time
}

// TokenCache manages OAuth client-credentials tokens keyed by scope set.
// Tokens are reused until their safety-margined expiry; refreshes for the
// same scope key are coalesced so concurrent misses trigger one exchange.
type TokenCache struct {
	clientID     string
	clientSecret string
	tokenURL     string
	client       *http.Client

	mu     sync.Mutex
	tokens map[string]cachedToken
	group  singleflight.Group

	now func() time.Time
}

// NewTokenCache initializes a token cache for the given credentials. Empty
// credentials are allowed here; AccessToken reports them when first used.
func NewTokenCache(clientID, clientSecret, tokenURL string) *TokenCache {
	return &TokenCache{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     tokenURL,
		client:       &http.Client{Timeout: 10 * time.Second},
		tokens:       make(map[string]cachedToken),
		now:          time.Now,
	}
}

// ScopeKey canonicalizes a scope set: sorted, space-joined, duplicates and
// blanks dropped. The empty set maps to the empty key, which is valid.
func ScopeKey(scopes []string) string {
	seen := make(map[string]bool, len(scopes))
	cleaned := make([]string, 0, len(scopes))
	for _, s := range scopes {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		cleaned = append(cleaned, s)
	}
	sort.Strings(cleaned)
	return strings.Join(cleaned, " ")
}

// AccessToken returns a bearer token for the given scope set, reusing the
// cached token while it is still inside its validity window.
func (c *TokenCache) AccessToken(ctx context.Context, scopes []string) (string, error) {
	key := ScopeKey(scopes)

	if tok, ok := c.cached(key); ok {
		return tok, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// Re-check under the flight: another caller may have refreshed
		// while we waited for the group slot.
		if tok, ok := c.cached(key); ok {
			return tok, nil
		}
		return c.exchange(ctx, key)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *TokenCache) cached(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tok, ok := c.tokens[key]
	if !ok || tok.accessToken == "" {
		return "", false
	}
	if !tok.expiresAt.Add(-tokenSafetyMargin).After(c.now()) {
		return "", false
	}
	return tok.accessToken, true
}

func (c *TokenCache) exchange(ctx context.Context, scopeKey string) (string, error) {
	if c.clientID == "" || c.clientSecret == "" {
		return "", ErrMissingCredentials
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	if scopeKey != "" {
		form.Set("scope", scopeKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.clientID, c.clientSecret)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call token endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &AuthError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var tr struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("failed to parse token JSON: %w", err)
	}
	if tr.AccessToken == "" {
		return "", &AuthError{Status: resp.StatusCode, Body: "empty access_token in response"}
	}
	if tr.ExpiresIn <= 0 {
		tr.ExpiresIn = defaultExpiresIn
	}

	c.mu.Lock()
	c.tokens[scopeKey] = cachedToken{
		accessToken: tr.AccessToken,
		expiresAt:   c.now().Add(time.Duration(tr.ExpiresIn) * time.Second),
	}
	c.mu.Unlock()

	return tr.AccessToken, nil
}
