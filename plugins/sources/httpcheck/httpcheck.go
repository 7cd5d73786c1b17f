// Package httpcheck implements a source that polls an HTTP(S) endpoint and
// reports its status code and latency, rate-limited to be a polite
// citizen against the same golang.org/x/time/rate limiter the pack's
// alert-history service uses for outbound polling.
package httpcheck

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/pipeweave/pipeweave/internal/plugin"
	"github.com/pipeweave/pipeweave/internal/registry"
	"github.com/pipeweave/pipeweave/internal/schema"
)

func init() {
	registry.RegisterSource("httpcheck", func() plugin.Source { return &Source{} })
}

// Source polls an HTTP endpoint and reports its status and latency.
type Source struct {
	limiter *rate.Limiter
	client  *http.Client
}

// Metadata describes this plugin.
func (s *Source) Metadata() plugin.Metadata {
	return plugin.Metadata{
		Type:        "httpcheck",
		Kind:        plugin.KindSource,
		Description: "Polls an HTTP(S) endpoint and reports status and latency",
	}
}

// DeclareConfig declares the "url" and "timeout_seconds" options.
func (s *Source) DeclareConfig(c *schema.Configurator) {
	c.Declare(schema.Option{Key: "url", Schema: &schema.Schema{Type: schema.String}})
	c.Declare(schema.Option{
		Key:      "timeout_seconds",
		Optional: true,
		Default:  10,
		Schema:   &schema.Schema{Type: schema.Integer, Min: schema.Min(1)},
	})
}

// Collect polls the configured URL.
func (s *Source) Collect(ctx context.Context, cfg schema.Record) (map[string]any, error) {
	if s.limiter == nil {
		s.limiter = rate.NewLimiter(rate.Every(time.Second), 1)
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: time.Duration(cfg.Int("timeout_seconds")) * time.Second}
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.String("url"), nil)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return map[string]any{
		"status_code":    resp.StatusCode,
		"latency_millis": time.Since(start).Milliseconds(),
	}, nil
}
