package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"digestease/internal/models"
)

const (
	DefaultBaseURL = "http://localhost:3000"

	addLogPath          = "/add-log"
	listRapportsPath    = "/rapports"
	generateRapportPath = "/openai"
)

// Client talks to the journal service. The zero value targets DefaultBaseURL
// with http.DefaultClient.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{BaseURL: baseURL}
}

// AddLog sends one finalized log. Only the status is inspected.
func (c *Client) AddLog(ctx context.Context, entry models.LogEntry) error {
	op := "client.AddLog"

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("%s: marshal log: %w", op, err)
	}

	resp, err := c.do(ctx, op, http.MethodPost, addLogPath, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

func (c *Client) ListRapports(ctx context.Context) ([]models.Rapport, error) {
	op := "client.ListRapports"

	resp, err := c.do(ctx, op, http.MethodGet, listRapportsPath, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var rapports []models.Rapport
	if err := json.NewDecoder(resp.Body).Decode(&rapports); err != nil {
		return nil, fmt.Errorf("%s: decode rapports: %w", op, err)
	}
	if rapports == nil {
		rapports = []models.Rapport{}
	}
	return rapports, nil
}

// GenerateRapport asks the service for a new rapport. The request has no body.
func (c *Client) GenerateRapport(ctx context.Context) (models.Rapport, error) {
	op := "client.GenerateRapport"

	resp, err := c.do(ctx, op, http.MethodPost, generateRapportPath, nil)
	if err != nil {
		return models.Rapport{}, err
	}
	defer resp.Body.Close()

	var rapport models.Rapport
	if err := json.NewDecoder(resp.Body).Decode(&rapport); err != nil {
		return models.Rapport{}, fmt.Errorf("%s: decode rapport: %w", op, err)
	}
	return rapport, nil
}

// do returns the response only for 2xx statuses; the caller closes the body.
func (c *Client) do(ctx context.Context, op, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL()+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, &ServiceError{Op: op, StatusCode: resp.StatusCode}
	}
	return resp, nil
}

func (c *Client) baseURL() string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		return DefaultBaseURL
	}
	return base
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}
