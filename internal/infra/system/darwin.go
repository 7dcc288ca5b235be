package system

import (
	"context"

	"github.com/atlas-it/atlas-agent/internal/domain"
)

type darwinPlatform struct {
	common
}

func (p *darwinPlatform) Disk(ctx context.Context) domain.DiskUsage {
	return dfDisk(ctx, &p.common)
}

func (p *darwinPlatform) Hardware(ctx context.Context) domain.HardwareIdentity {
	out, err := p.runner.Run(ctx, "system_profiler", "SPHardwareDataType")
	if err != nil {
		p.degraded("hardware", err)
		return domain.HardwareIdentity{}
	}
	return parseSystemProfiler(out)
}

func (p *darwinPlatform) OSVersion(ctx context.Context) *string {
	out, err := p.runner.Run(ctx, "sw_vers", "-productVersion")
	if err != nil {
		p.degraded("os version", err)
		return p.rawOSVersion(ctx)
	}
	if name, ok := macOSFriendlyName(out); ok {
		return &name
	}
	return p.rawOSVersion(ctx)
}

func dfDisk(ctx context.Context, c *common) domain.DiskUsage {
	out, err := c.runner.Run(ctx, "df", "-Pk", "/")
	if err != nil {
		c.degraded("disk", err)
		return domain.DiskUsage{}
	}
	return parseDF(out)
}
