package client

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/crucial707/exercise-tracker/cmd/cli/config"
	"github.com/go-errors/errors"
)

// APIError is a non-2xx answer from the tracker API.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	return "API error (" + http.StatusText(e.Status) + "): " + e.Message
}

// Client talks JSON to the tracker API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a Client for config.APIURL().
func New() *Client {
	return &Client{
		BaseURL: config.APIURL(),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Get decodes the JSON body of GET path?query into out.
func (c *Client) Get(path string, query url.Values, out interface{}) error {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return c.do(http.MethodGet, u, nil, out)
}

// Post sends payload as JSON and decodes the response into out.
func (c *Client) Post(path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Errorf("encode request: %w", err)
	}
	return c.do(http.MethodPost, c.BaseURL+path, body, out)
}

func (c *Client) do(method, u string, body []byte, out interface{}) error {
	req, err := http.NewRequest(method, u, bytes.NewReader(body))
	if err != nil {
		return errors.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return errors.Errorf("%s %s: %w", method, u, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: string(bytes.TrimSpace(data))}
		var payload struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}
		if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
			apiErr.Message = payload.Error
			apiErr.Fields = payload.Fields
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Errorf("decode response: %w", err)
	}
	return nil
}
