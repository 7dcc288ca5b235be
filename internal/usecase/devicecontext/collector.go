package devicecontext

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/atlas-it/atlas-agent/internal/domain"
	"github.com/atlas-it/atlas-agent/internal/impls"
	"github.com/atlas-it/atlas-agent/internal/infra/system"
)

// Collector assembles a DeviceContext from the platform and agent lookups.
// It keeps no state between calls.
type Collector struct {
	platform impls.PlatformProbe
	agents   impls.AgentLocator
	logger   *slog.Logger
	arch     string
	now      func() time.Time
}

func NewCollector(platform impls.PlatformProbe, agents impls.AgentLocator, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{
		platform: platform,
		agents:   agents,
		logger:   logger,
		arch:     runtime.GOARCH,
		now:      time.Now,
	}
}

// Collect reads every fact in turn and returns the merged snapshot. A lookup
// that panics leaves only its own fields unset.
func (c *Collector) Collect(ctx context.Context) domain.DeviceContext {
	start := c.now()
	dc := domain.DeviceContext{
		Arch:       c.arch,
		OSPlatform: c.platform.Tag(),
		IPAddress:  domain.FallbackIPv4,
	}

	c.gather("computerName", func() { dc.ComputerName = c.platform.ComputerName(ctx) })
	c.gather("loggedInUser", func() { dc.LoggedInUser = c.platform.LoggedInUser(ctx) })
	c.gather("domain", func() { dc.Domain = c.platform.Domain(ctx) })
	c.gather("hardware", func() {
		hw := c.platform.Hardware(ctx)
		dc.SerialNumber, dc.Manufacturer, dc.Model = hw.SerialNumber, hw.Manufacturer, hw.Model
	})
	c.gather("cpu", func() { dc.CPU = c.platform.CPU(ctx) })
	c.gather("memory", func() {
		m := c.platform.Memory(ctx)
		dc.TotalMemory, dc.FreeMemory = m.Total, m.Free
	})
	c.gather("disk", func() {
		d := c.platform.Disk(ctx)
		if d.Total == nil || d.Free == nil {
			return
		}
		dc.DiskTotal, dc.DiskFree = d.Total, d.Free
	})
	c.gather("uptime", func() {
		if secs := c.platform.UptimeSeconds(ctx); secs != nil {
			up := system.FormatUptime(*secs)
			dc.Uptime = &up
		}
	})
	c.gather("osVersion", func() { dc.OSVersion = c.platform.OSVersion(ctx) })
	c.gather("network", func() {
		n := c.platform.Network(ctx)
		if n.IPAddress != "" {
			dc.IPAddress = n.IPAddress
		}
		dc.MACAddress = n.MACAddress
	})
	c.gather("ninjaDeviceId", func() { dc.NinjaDeviceID = c.agents.NinjaDeviceID(ctx) })
	c.gather("teamviewerId", func() { dc.TeamViewerID = c.agents.TeamViewerID(ctx) })
	c.gather("teamviewerVersion", func() { dc.TeamViewerVersion = c.agents.TeamViewerVersion(ctx) })

	dc.CollectedAt = c.now().UTC()
	c.logger.Debug("device context collected",
		"platform", dc.OSPlatform,
		"duration", dc.CollectedAt.Sub(start.UTC()),
	)
	return dc
}

func (c *Collector) gather(field string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("field collection panicked", "field", field, "panic", r)
		}
	}()
	fn()
}
