package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrNotFound is returned when the platform reports no entity for the
// requested id. Callers use it to degrade gracefully instead of failing a
// whole synchronization run.
var ErrNotFound = errors.New("source: entity not found")

// Client defines the interface for booking platform lookups.
type Client interface {
	// GetReservation fetches full reservation (or block) detail by id.
	GetReservation(ctx context.Context, id string) (*Reservation, error)
	// GetListing fetches property detail by id.
	GetListing(ctx context.Context, id string) (*Listing, error)
	// GetCondominium fetches building/grouping detail by id.
	GetCondominium(ctx context.Context, id string) (*Condominium, error)
	// GetGuest fetches guest detail by id.
	GetGuest(ctx context.Context, id string) (*Guest, error)
	// SearchReservations walks the paged reservation search and returns
	// every match for the query.
	SearchReservations(ctx context.Context, q SearchQuery) ([]Reservation, error)
}

// NewClient creates a booking platform client from the configuration.
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

func (c *httpClient) GetReservation(ctx context.Context, id string) (*Reservation, error) {
	var out Reservation
	if err := c.getJSON(ctx, "/reservations/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) GetListing(ctx context.Context, id string) (*Listing, error) {
	var out Listing
	if err := c.getJSON(ctx, "/listings/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) GetCondominium(ctx context.Context, id string) (*Condominium, error) {
	var out Condominium
	if err := c.getJSON(ctx, "/buildings/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) GetGuest(ctx context.Context, id string) (*Guest, error) {
	var out Guest
	if err := c.getJSON(ctx, "/guests/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) SearchReservations(ctx context.Context, q SearchQuery) ([]Reservation, error) {
	var all []Reservation

	for page := 1; ; page++ {
		query := url.Values{}
		if q.From != "" {
			query.Set("from", q.From)
		}
		if q.To != "" {
			query.Set("to", q.To)
		}
		if q.ListingID != "" {
			query.Set("listingId", q.ListingID)
		}
		query.Set("page", strconv.Itoa(page))

		var pg searchPage
		if err := c.getJSON(ctx, "/reservations/search", query, &pg); err != nil {
			return nil, err
		}
		all = append(all, pg.Items...)

		if pg.Pages == 0 || page >= pg.Pages {
			return all, nil
		}
	}
}

func (c *httpClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("source: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("source: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("source: %s returned %d: %s", path, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("source: decode %s: %w", path, err)
	}
	return nil
}
