package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Translator issues translation requests against a reference subtitle.
type Translator interface {
	Translate(ctx context.Context, req Request) (*Result, error)
}

// Client talks to the external translate endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient builds a client for the given endpoint URL. Translation of a
// full caption document can take a while, so the default timeout is
// generous.
func NewClient(endpoint string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, fmt.Errorf("translate endpoint is required")
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func (c *Client) Translate(ctx context.Context, req Request) (*Result, error) {
	if err := ValidateTargetLang(req.TargetLang); err != nil {
		return nil, &Error{Status: http.StatusBadRequest, Message: err.Error()}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode translate request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build translate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("translate request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read translate response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp.StatusCode, respBody)
	}

	var result Result
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("parse translate response: %w", err)
	}
	if strings.TrimSpace(result.TranslatedVTT) == "" {
		return nil, &Error{Status: resp.StatusCode, Message: "empty translation result"}
	}
	return &result, nil
}

// decodeError extracts the server's {"error": ...} payload so the message
// reaches the user unchanged.
func decodeError(status int, body []byte) *Error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return &Error{Status: status, Message: payload.Error}
	}
	return &Error{Status: status, Message: fmt.Sprintf("translation failed with status %d", status)}
}
