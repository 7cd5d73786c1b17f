// Package sysmetrics implements a source reporting a host CPU/memory/disk
// snapshot via gopsutil, the same library the pack's alert-history service
// uses for host introspection.
package sysmetrics

import (
	"context"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/pipeweave/pipeweave/internal/plugin"
	"github.com/pipeweave/pipeweave/internal/registry"
	"github.com/pipeweave/pipeweave/internal/schema"
)

func init() {
	registry.RegisterSource("sysmetrics", func() plugin.Source { return &Source{} })
}

// Source reports a host resource usage snapshot.
type Source struct{}

// Metadata describes this plugin.
func (s *Source) Metadata() plugin.Metadata {
	return plugin.Metadata{
		Type:        "sysmetrics",
		Kind:        plugin.KindSource,
		Description: "Reports a host CPU, memory and disk usage snapshot",
	}
}

// DeclareConfig declares the "path" option: the filesystem path to report
// disk usage for.
func (s *Source) DeclareConfig(c *schema.Configurator) {
	c.Declare(schema.Option{
		Key:      "path",
		Optional: true,
		Default:  "/",
		Schema:   &schema.Schema{Type: schema.String},
	})
}

// Collect snapshots CPU, memory and disk usage.
func (s *Source) Collect(ctx context.Context, cfg schema.Record) (map[string]any, error) {
	percentages, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return nil, err
	}
	var cpuPercent float64
	if len(percentages) > 0 {
		cpuPercent = percentages[0]
	}

	vmem, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, err
	}

	path := cfg.String("path")
	if path == "" {
		path = "/"
	}
	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"cpu_percent":       cpuPercent,
		"memory_percent":    vmem.UsedPercent,
		"disk_percent":      usage.UsedPercent,
		"disk_free_bytes":   usage.Free,
		"memory_free_bytes": vmem.Free,
	}, nil
}
