// Package overpass implements the HTTP client for the Overpass API. It
// fetches OSM elements carrying an opening_hours tag and returns the tag
// values as opaque text; nothing here parses them. All methods are
// context-aware, respect the shared rate limiter, and retry on transient
// errors (429, 5xx).
package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultEndpoint = "https://overpass-api.de/api/interpreter"
	maxRetries      = 4
	// Server-side query timeout in seconds, part of the QL preamble.
	queryTimeout = 25
)

// DefaultLimit bounds a fetch when the caller does not.
const DefaultLimit = 25

// Element is one OSM element with an opening_hours tag.
type Element struct {
	Type  string // node, way or relation
	ID    int64
	Name  string
	Hours string
}

// Bbox is a geographic bounding box in degrees.
type Bbox struct {
	South, West, North, East float64
}

// ParseBbox parses "south,west,north,east".
func ParseBbox(s string) (Bbox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Bbox{}, fmt.Errorf("bbox must be south,west,north,east, got %q", s)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Bbox{}, fmt.Errorf("bbox coordinate %q is not a number", strings.TrimSpace(p))
		}
		vals[i] = v
	}
	b := Bbox{South: vals[0], West: vals[1], North: vals[2], East: vals[3]}
	if b.South < -90 || b.North > 90 || b.West < -180 || b.East > 180 {
		return Bbox{}, fmt.Errorf("bbox %q is out of range", s)
	}
	if b.South >= b.North || b.West >= b.East {
		return Bbox{}, fmt.Errorf("bbox %q is empty (south<north and west<east required)", s)
	}
	return b, nil
}

// Options holds optional parameters for a fetch.
type Options struct {
	Limit int // max elements to return (DefaultLimit if zero)
}

// Client is the Overpass API HTTP client.
type Client struct {
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a Client against the given endpoint.
func NewClient(endpoint string, timeout time.Duration, ratePerSec float64, logger *slog.Logger) *Client {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if logger == nil {
		logger = slog.Default()
	}
	burst := int(ratePerSec)
	if burst < 1 {
		burst = 1
	}
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), burst),
		logger:  logger,
	}
}

// ─── Queries ──────────────────────────────────────────────────────────────────

// ByArea fetches elements with an opening_hours tag inside the named
// administrative area ("Berlin", "Kreuzberg").
func (c *Client) ByArea(ctx context.Context, area string, opts Options) ([]Element, error) {
	query := fmt.Sprintf("[out:json][timeout:%d];area[\"name\"=%s]->.a;nwr[\"opening_hours\"](area.a);out tags %d;",
		queryTimeout, strconv.Quote(area), limitOf(opts))
	elems, err := c.run(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("area %q: %w", area, err)
	}
	return elems, nil
}

// ByBbox fetches elements with an opening_hours tag inside the box.
func (c *Client) ByBbox(ctx context.Context, box Bbox, opts Options) ([]Element, error) {
	query := fmt.Sprintf("[out:json][timeout:%d];nwr[\"opening_hours\"](%g,%g,%g,%g);out tags %d;",
		queryTimeout, box.South, box.West, box.North, box.East, limitOf(opts))
	elems, err := c.run(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("bbox: %w", err)
	}
	return elems, nil
}

func limitOf(opts Options) int {
	if opts.Limit > 0 {
		return opts.Limit
	}
	return DefaultLimit
}

// ─── Low-level HTTP ───────────────────────────────────────────────────────────

// run POSTs an Overpass QL query, handling rate limiting and retries.
func (c *Client) run(ctx context.Context, query string) ([]Element, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	c.logger.Debug("overpass request", "endpoint", c.endpoint, "query", query)

	form := url.Values{}
	form.Set("data", query)
	body := form.Encode()

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))*500) * time.Millisecond
			c.logger.Debug("retrying after backoff", "attempt", attempt, "backoff", backoff)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("building request: %w", err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("User-Agent", "osmoh/1.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("http: %w", err)
			continue
		}

		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("reading body: %w", err)
			continue
		}

		c.logger.Debug("overpass response", "status", resp.StatusCode, "bytes", len(data))

		// Retry on server errors and rate limiting
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("HTTP %d: %s", resp.StatusCode, errSnippet(data))
			continue
		}

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, errSnippet(data))
		}

		elems, remark, err := decodeElements(data)
		if err != nil {
			return nil, err
		}
		if remark != "" {
			if len(elems) == 0 {
				return nil, fmt.Errorf("overpass: %s", remark)
			}
			c.logger.Warn("overpass remark", "remark", remark)
		}
		return elems, nil
	}
	return nil, fmt.Errorf("after %d attempts: %w", maxRetries, lastErr)
}

// decodeElements unpacks an Overpass JSON response. The remark field
// carries server-side runtime errors that arrive with status 200.
func decodeElements(data []byte) ([]Element, string, error) {
	var raw struct {
		Remark   string `json:"remark"`
		Elements []struct {
			Type string            `json:"type"`
			ID   int64             `json:"id"`
			Tags map[string]string `json:"tags"`
		} `json:"elements"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, "", fmt.Errorf("decoding response: %w", err)
	}

	elems := make([]Element, 0, len(raw.Elements))
	for _, e := range raw.Elements {
		hours := e.Tags["opening_hours"]
		if hours == "" {
			continue
		}
		elems = append(elems, Element{
			Type:  e.Type,
			ID:    e.ID,
			Name:  e.Tags["name"],
			Hours: hours,
		})
	}
	return elems, raw.Remark, nil
}

// errSnippet compresses an error body to one short line. Overpass error
// pages are HTML; the interesting part fits in the first line.
func errSnippet(body []byte) string {
	s := strings.Join(strings.Fields(string(body)), " ")
	if len(s) > 180 {
		s = s[:180] + "..."
	}
	return s
}
