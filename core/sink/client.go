package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

// Record is one row of a ledger table. Column names are the ledger's own;
// the sync feature's table registry maps canonical field names onto them.
type Record map[string]any

// Client defines the interface for ledger platform operations. Every table
// supports the same three operations; the table name selects which one is
// addressed.
type Client interface {
	// List returns the records of a table matching the filter columns.
	List(ctx context.Context, table string, filter map[string]string) ([]Record, error)
	// Create inserts a record and returns it as echoed by the ledger,
	// including the freshly minted internal id column.
	Create(ctx context.Context, table string, fields Record) (Record, error)
	// Update rewrites a record. The table's internal id column must be
	// present in fields.
	Update(ctx context.Context, table string, fields Record) error
}

// listEnvelope is the ledger's list response wrapper.
type listEnvelope struct {
	Data struct {
		Items []Record `json:"items"`
	} `json:"data"`
}

// createEnvelope is the ledger's create response wrapper.
type createEnvelope struct {
	Data Record `json:"data"`
}

// NewClient creates a ledger platform client from the configuration.
func NewClient(cfg Config) Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &httpClient{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		http: &http.Client{
			Transport: transport,
			Timeout:   timeoutDuration,
		},
	}
}

type httpClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func (c *httpClient) List(ctx context.Context, table string, filter map[string]string) ([]Record, error) {
	query := url.Values{}
	for col, val := range filter {
		query.Set(col, val)
	}

	var env listEnvelope
	if err := c.do(ctx, http.MethodGet, table, query, nil, &env); err != nil {
		return nil, err
	}
	return env.Data.Items, nil
}

func (c *httpClient) Create(ctx context.Context, table string, fields Record) (Record, error) {
	var env createEnvelope
	if err := c.do(ctx, http.MethodPost, table, nil, fields, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, fmt.Errorf("sink: create on %s echoed no record", table)
	}
	return env.Data, nil
}

func (c *httpClient) Update(ctx context.Context, table string, fields Record) error {
	return c.do(ctx, http.MethodPatch, table, nil, fields, nil)
}

func (c *httpClient) do(ctx context.Context, method, table string, query url.Values, body any, out any) error {
	u := c.baseURL + "/tables/" + url.PathEscape(table) + "/records"
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("sink: encode %s payload: %w", table, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("sink: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("X-Api-Token", c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sink: %s %s: %w", method, table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sink: %s %s returned %d: %s", method, table, resp.StatusCode, string(msg))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("sink: decode %s response: %w", table, err)
		}
	}
	return nil
}
