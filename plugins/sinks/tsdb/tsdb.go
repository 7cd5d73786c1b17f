// Package tsdb implements a sink that writes each numeric bundle field as a
// Redis sorted-set sample, scored by the current timestamp.
package tsdb

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pipeweave/pipeweave/internal/bundle"
	"github.com/pipeweave/pipeweave/internal/plugin"
	"github.com/pipeweave/pipeweave/internal/registry"
	"github.com/pipeweave/pipeweave/internal/schema"
)

func init() {
	registry.RegisterSink("tsdb", func() plugin.Sink { return &Sink{} })
}

// Sink writes numeric bundle fields into Redis sorted sets.
type Sink struct {
	newClient func(addr string) redisClient
}

type redisClient interface {
	ZAdd(ctx context.Context, key string, members ...redis.Z) *redis.IntCmd
	Close() error
}

// Metadata describes this plugin.
func (s *Sink) Metadata() plugin.Metadata {
	return plugin.Metadata{
		Type:        "tsdb",
		Kind:        plugin.KindSink,
		Description: "Writes numeric bundle fields as Redis sorted-set samples",
	}
}

// DeclareConfig declares the "address" and "prefix" options.
func (s *Sink) DeclareConfig(c *schema.Configurator) {
	c.Declare(schema.Option{Key: "address", Schema: &schema.Schema{Type: schema.String}})
	c.Declare(schema.Option{
		Key:      "prefix",
		Optional: true,
		Default:  "pipeweave",
		Schema:   &schema.Schema{Type: schema.String},
	})
}

// Distribute writes every numeric leaf value in the bundle to Redis.
func (s *Sink) Distribute(ctx context.Context, cfg schema.Record, data bundle.Bundle) error {
	factory := s.newClient
	if factory == nil {
		factory = func(addr string) redisClient {
			return redis.NewClient(&redis.Options{Addr: addr})
		}
	}

	client := factory(cfg.String("address"))
	defer client.Close()

	prefix := cfg.String("prefix")
	score := float64(time.Now().Unix())

	for _, key := range data.Keys() {
		value, _ := data.Get(key)
		if err := writeNumericLeaves(ctx, client, prefix, key, value, score); err != nil {
			return err
		}
	}
	return nil
}

func writeNumericLeaves(ctx context.Context, client redisClient, prefix, path string, value any, score float64) error {
	switch v := value.(type) {
	case map[string]any:
		for k, nested := range v {
			if err := writeNumericLeaves(ctx, client, prefix, fmt.Sprintf("%s.%s", path, k), nested, score); err != nil {
				return err
			}
		}
		return nil
	case float64, int, int64:
		member := redis.Z{Score: score, Member: fmt.Sprintf("%v", v)}
		return client.ZAdd(ctx, fmt.Sprintf("%s:%s", prefix, path), member).Err()
	default:
		return nil
	}
}
