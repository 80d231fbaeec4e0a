package fatsecret

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	maxPageNumber = 9999
	maxMaxResults = 50

	// Upstream error code for an id that resolves to no item.
	errCodeUnknownID = 106
)

// DefaultSort is used when the caller supplies an unknown sort value.
const DefaultSort = "newest"

var sortValues = map[string]bool{
	"newest":                       true,
	"oldest":                       true,
	"caloriesPerServingAscending":  true,
	"caloriesPerServingDescending": true,
}

// Client talks to the FatSecret platform API. Responses are passed through
// verbatim; normalization happens in the callers that need it.
type Client struct {
	apiURL string
	region string
	scopes []string
	tokens *TokenCache
	client *http.Client
}

// NewClient creates a FatSecret API client. defaultRegion is used for
// barcode resolution when callers do not supply one.
func NewClient(tokens *TokenCache, apiURL, defaultRegion string, scopes []string) *Client {
	return &Client{
		apiURL: apiURL,
		region: defaultRegion,
		scopes: scopes,
		tokens: tokens,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// SearchRecipes forwards a recipe search upstream. Page and maxResults are
// silently clamped into range; unknown sort values fall back to newest.
func (c *Client) SearchRecipes(ctx context.Context, query string, page, maxResults int, sortBy string, mustHaveImages bool) (json.RawMessage, error) {
	if !sortValues[sortBy] {
		sortBy = DefaultSort
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("page_number", strconv.Itoa(clamp(page, 0, maxPageNumber)))
	params.Set("max_results", strconv.Itoa(clamp(maxResults, 1, maxMaxResults)))
	params.Set("sort_by", sortBy)
	if query != "" {
		params.Set("search_expression", query)
	}
	if mustHaveImages {
		params.Set("must_have_images", "true")
	}

	return c.get(ctx, "/recipes/search/v3", params)
}

// GetRecipe fetches a raw recipe record by id.
func (c *Client) GetRecipe(ctx context.Context, id string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("recipe_id", id)

	return c.get(ctx, "/recipe/v2", params)
}

// SearchFoods forwards a food search upstream. A cache-busting parameter is
// appended so intermediaries never serve a stale response.
func (c *Client) SearchFoods(ctx context.Context, query string, page, maxResults int, flagDefaultServing bool, region, language string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("page_number", strconv.Itoa(clamp(page, 0, maxPageNumber)))
	params.Set("max_results", strconv.Itoa(clamp(maxResults, 1, maxMaxResults)))
	if query != "" {
		params.Set("search_expression", query)
	}
	if flagDefaultServing {
		params.Set("flag_default_serving", "true")
	}
	if region != "" {
		params.Set("region", region)
	}
	if language != "" {
		params.Set("language", language)
	}
	params.Set("nocache", strconv.FormatInt(time.Now().UnixMilli(), 10))

	return c.get(ctx, "/foods/search/v1", params)
}

// GetFood fetches a raw food record by id.
func (c *Client) GetFood(ctx context.Context, id, region, language string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("food_id", id)
	if region != "" {
		params.Set("region", region)
	}
	if language != "" {
		params.Set("language", language)
	}

	return c.get(ctx, "/food/v4", params)
}

// LookupFoodByBarcode resolves a scanned barcode to a food id. The code is
// reduced to GTIN-13 first; a checksum mismatch is logged but the lookup
// still proceeds, since upstream is the authority on what it accepts. The
// lookup tries the given (or default) region, then retries globally.
func (c *Client) LookupFoodByBarcode(ctx context.Context, raw, region string) (string, error) {
	gtin := ToGTIN13(raw)
	if !ValidGTIN13(gtin) {
		log.Printf("[fatsecret] WARNING: invalid GTIN-13 check digit: %s", gtin)
	}
	if region == "" {
		region = c.region
	}

	id, err := c.findFoodIDByBarcode(ctx, gtin, region)
	if err != nil {
		return "", err
	}
	if id != "" {
		return id, nil
	}

	if region != "" {
		log.Printf("[fatsecret] barcode %s not found in region %s, retrying globally", gtin, region)
		id, err = c.findFoodIDByBarcode(ctx, gtin, "")
		if err != nil {
			return "", err
		}
		if id != "" {
			return id, nil
		}
	}

	return "", ErrNotFound
}

func (c *Client) findFoodIDByBarcode(ctx context.Context, gtin, region string) (string, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("barcode", gtin)
	if region != "" {
		params.Set("region", region)
	}

	body, err := c.get(ctx, "/food/barcode/find-by-id/v1", params)
	if err != nil {
		var apiErr *APIError
		// An upstream error on the barcode endpoint is a miss, not a
		// failure; the caller retries without a region filter.
		if errors.As(err, &apiErr) || errors.Is(err, ErrNotFound) {
			log.Printf("[fatsecret] barcode lookup miss (region=%q): %v", region, err)
			return "", nil
		}
		return "", err
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("failed to parse barcode response: %w", err)
	}

	// The id arrives as food_id or food_id.value depending on API version.
	v := payload["food_id"]
	if m := asMap(v); m != nil {
		v = m["value"]
	}
	id := asString(v)
	if id == "" || id == "0" {
		return "", nil
	}
	return id, nil
}

// get performs an authenticated GET against the platform API and returns the
// response body verbatim. Non-2xx responses are mapped to *APIError, with
// the upstream unknown-id code surfaced as ErrNotFound.
func (c *Client) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	token, err := c.tokens.AccessToken(ctx, c.scopes)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call fatsecret API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read fatsecret response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, upstreamError(resp.StatusCode, body)
	}
	return body, nil
}

func upstreamError(status int, body []byte) error {
	apiErr := &APIError{
		Status:  status,
		Code:    status,
		Message: "Unknown error",
		Raw:     json.RawMessage(body),
	}

	var envelope struct {
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		switch {
		case envelope.Error != nil:
			if envelope.Error.Code != 0 {
				apiErr.Code = envelope.Error.Code
			}
			if envelope.Error.Message != "" {
				apiErr.Message = envelope.Error.Message
			}
		default:
			if envelope.Code != 0 {
				apiErr.Code = envelope.Code
			}
			if envelope.Message != "" {
				apiErr.Message = envelope.Message
			}
		}
	}

	if apiErr.Code == errCodeUnknownID {
		return fmt.Errorf("%w: %s", ErrNotFound, apiErr.Message)
	}
	return apiErr
}

func clamp(n, min, max int) int {
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}
