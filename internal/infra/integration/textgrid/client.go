package textgrid

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client sends SMS through the TextGrid messaging API. The API is
// form-encoded on the way in and JSON on the way out.
type Client struct {
	baseURL    string
	accountSID string
	authToken  string
	fromNumber string
	http       *http.Client
}

type SendMessageInput struct {
	To   string
	Body string
}

type sendMessageResponse struct {
	SID          string `json:"sid"`
	Status       string `json:"status"`
	ErrorCode    *int   `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

func NewClient(accountSID, authToken, fromNumber, baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
		http:       &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) SendMessage(ctx context.Context, input SendMessageInput) error {
	if c.accountSID == "" || c.authToken == "" {
		return fmt.Errorf("textgrid not configured")
	}

	form := url.Values{}
	form.Set("From", c.fromNumber)
	form.Set("To", input.To)
	form.Set("Body", input.Body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("textgrid request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("textgrid send: status %d: %s", resp.StatusCode, string(body))
	}

	var result sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode textgrid response: %w", err)
	}
	if result.ErrorCode != nil {
		return fmt.Errorf("textgrid send: %s (code %d)", result.ErrorMessage, *result.ErrorCode)
	}
	return nil
}
