package payhub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the PayHub hosted checkout API. Sessions are created
// before redirecting the buyer and read back when the success redirect or
// the webhook arrives.
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

func (c *Client) CreateSession(ctx context.Context, input CreateSessionInput) (*Session, error) {
	payload := createSessionRequest{
		AmountCents: input.AmountCents,
		Currency:    input.Currency,
		Description: input.Description,
		SuccessURL:  input.SuccessURL,
		CancelURL:   input.CancelURL,
		Metadata:    input.Metadata,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal checkout session: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/v1/checkout/sessions", c.baseURL), bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payhub request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.apiError("create checkout session", resp)
	}

	var response sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode payhub response: %w", err)
	}

	return &Session{
		ID:       response.ID,
		URL:      response.URL,
		Status:   response.Status,
		Metadata: response.Metadata,
	}, nil
}

func (c *Client) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/v1/checkout/sessions/%s", c.baseURL, sessionID), nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payhub request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.apiError("get checkout session", resp)
	}

	var response sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode payhub response: %w", err)
	}

	return &Session{
		ID:       response.ID,
		URL:      response.URL,
		Status:   response.Status,
		Metadata: response.Metadata,
	}, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
}

func (c *Client) apiError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var apiErr errorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return fmt.Errorf("payhub %s: %s (status %d)", op, apiErr.Error.Message, resp.StatusCode)
	}
	return fmt.Errorf("payhub %s: status %d", op, resp.StatusCode)
}
