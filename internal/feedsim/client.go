package feedsim

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// HTTPClient wraps http.Client with timeout and admin credentials
type HTTPClient struct {
	client     *http.Client
	adminToken string
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration, adminToken string) *HTTPClient {
	return &HTTPClient{
		client:     &http.Client{Timeout: timeout},
		adminToken: adminToken,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body and admin credentials.
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.adminToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.adminToken)
	}
	return c.client.Do(req)
}

// marshalItem marshals one generated item to JSON.
func marshalItem(item Item) ([]byte, error) {
	return json.Marshal(item)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("failed to close response body: %v", err)
		}
	}()
	return io.ReadAll(resp.Body)
}

// checkServiceHealth verifies the target service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, baseURL string) error {
	resp, err := client.Get(ctx, baseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if _, err := readResponseBody(resp); err != nil {
		return fmt.Errorf("failed to read health response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}
	return nil
}

// createPlayer registers one roster player with the target service. An
// alias_conflict response means a previous run already registered it, which
// is fine for reruns against a live service.
func createPlayer(ctx context.Context, client *HTTPClient, baseURL string, player RosterPlayer) (bool, error) {
	payload := map[string]interface{}{
		"name":    player.Name,
		"aliases": player.Aliases,
	}

	resp, err := client.Post(ctx, baseURL+"/api/players", payload)
	if err != nil {
		return false, fmt.Errorf("create player request failed: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return false, fmt.Errorf("failed to read create response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusCreated:
		return true, nil
	case http.StatusConflict:
		return false, nil
	default:
		return false, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}
}

// triggerSync asks the target service to run a sync cycle now.
func triggerSync(ctx context.Context, client *HTTPClient, baseURL string) (SyncReport, error) {
	resp, err := client.Post(ctx, baseURL+"/api/sync", nil)
	if err != nil {
		return SyncReport{}, fmt.Errorf("sync request failed: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return SyncReport{}, fmt.Errorf("failed to read sync response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return SyncReport{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var report SyncReport
	if err := json.Unmarshal(body, &report); err != nil {
		return SyncReport{}, fmt.Errorf("failed to parse sync report: %w", err)
	}
	return report, nil
}

// getTrending retrieves the top N trending entries from the target service.
func getTrending(ctx context.Context, client *HTTPClient, baseURL string, topN int) ([]TrendingEntry, error) {
	resp, err := client.Get(ctx, fmt.Sprintf("%s/api/trending?limit=%d", baseURL, topN))
	if err != nil {
		return nil, fmt.Errorf("trending request failed: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read trending response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var entries []TrendingEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse trending response: %w", err)
	}
	return entries, nil
}
