// Package analysis talks to the external load-analysis service. The
// service reviews a page's equipment tree and returns findings; it is
// advisory, so every failure degrades into a warning report instead of
// an error. Requests are rate limited and traced.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"golang.org/x/time/rate"

	"sld/schematic"
)

// Report is the service's review of one page.
type Report struct {
	Status          string   `json:"status"` // "ok", "warning" or "critical"
	Summary         string   `json:"summary"`
	Issues          []string `json:"issues,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// Client calls the analysis service.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewClient creates a client for the service at baseURL. An empty
// baseURL disables remote calls; Analyze then reports that analysis is
// unavailable.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 3),
		logger:  logger,
	}
}

type request struct {
	PageName string            `json:"pageName"`
	Items    []*schematic.Node `json:"items"`
}

// Analyze submits the page and returns the service's report. It never
// returns an error: an unreachable or misbehaving service yields a
// degraded warning report so callers can always show something.
func (c *Client) Analyze(ctx context.Context, page *schematic.Page) *Report {
	if c.baseURL == "" {
		return &Report{Status: "warning", Summary: "analysis service not configured"}
	}
	ctx, span := otel.Tracer("sld/analysis").Start(ctx, "analyze")
	defer span.End()

	if err := c.limiter.Wait(ctx); err != nil {
		return c.degraded("rate limit wait interrupted", err)
	}

	body, err := json.Marshal(request{PageName: page.Name, Items: page.Items})
	if err != nil {
		return c.degraded("encoding request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/analyze", bytes.NewReader(body))
	if err != nil {
		return c.degraded("building request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return c.degraded("calling analysis service", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.degraded("analysis service error", fmt.Errorf("status %d", resp.StatusCode))
	}
	var report Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return c.degraded("decoding report", err)
	}
	if report.Status == "" {
		report.Status = "ok"
	}
	return &report
}

// AnalyzeAsync runs Analyze in the background and delivers the report
// to the callback. Fire and forget; the callback runs on the worker
// goroutine.
func (c *Client) AnalyzeAsync(ctx context.Context, page *schematic.Page, deliver func(*Report)) {
	snapshot := page.Clone()
	go func() {
		deliver(c.Analyze(ctx, snapshot))
	}()
}

func (c *Client) degraded(msg string, err error) *Report {
	c.logger.Warn("analysis degraded", "reason", msg, "error", err)
	return &Report{
		Status:  "warning",
		Summary: "analysis unavailable: " + msg,
	}
}
