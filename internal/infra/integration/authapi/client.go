package authapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client calls the auth provider's admin API. The service owns profile and
// territory rows, but the account record itself lives with the provider and
// is removed last during a full account deletion.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) DeleteAccount(ctx context.Context, userID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/admin/users/%s", c.baseURL, userID), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("auth api request: %w", err)
	}
	defer resp.Body.Close()

	// A 404 means the account is already gone, which is the state we want.
	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("auth api delete account: status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
