package datastore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"
)

// DatasetteClient records path history against a remote Datasette instance
// through the datasette-insert API.
type DatasetteClient struct {
	baseURL  string
	apiToken string
	client   *http.Client

	base *url.URL
}

// NewDatasetteClient creates a client for the given Datasette base URL.
// The token may be empty for instances that allow anonymous writes.
func NewDatasetteClient(baseURL, apiToken string) *DatasetteClient {
	return &DatasetteClient{
		baseURL:  baseURL,
		apiToken: apiToken,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Connect parses and validates the base URL. No request is made; the
// first insert surfaces connectivity problems.
func (c *DatasetteClient) Connect() error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid datasette URL %q: %w", c.baseURL, err)
	}
	c.base = u
	return nil
}

// CreateTable is a no-op: the datasette-insert plugin creates tables on
// first insert.
func (c *DatasetteClient) CreateTable(schema string) error {
	return nil
}

// BatchInsert posts records to /-/insert/<database>/<table>. Inserting
// nothing is a no-op.
func (c *DatasetteClient) BatchInsert(database string, table string, records []map[string]any) error {
	if len(records) == 0 {
		return nil
	}
	if c.base == nil {
		if err := c.Connect(); err != nil {
			return err
		}
	}

	endpoint := *c.base
	endpoint.Path = path.Join(endpoint.Path, "-/insert", database, table)

	body, err := json.Marshal(map[string]any{"rows": records})
	if err != nil {
		return fmt.Errorf("failed to encode insert payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build insert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("datasette insert failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("datasette insert returned %d: %s", resp.StatusCode, errorBody(resp.Body))
	}
	return nil
}

// Close is a no-op for the HTTP client.
func (c *DatasetteClient) Close() error {
	return nil
}

// errorBody extracts the error field from a Datasette JSON error response,
// falling back to the raw body.
func errorBody(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return "no response body"
	}
	var parsed struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Error != "" {
		return parsed.Error
	}
	return string(raw)
}
