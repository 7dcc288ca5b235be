package system

import (
	"context"

	"github.com/atlas-it/atlas-agent/internal/domain"
)

type linuxPlatform struct {
	common
	dmiDir string
}

func (p *linuxPlatform) Disk(ctx context.Context) domain.DiskUsage {
	return dfDisk(ctx, &p.common)
}

func (p *linuxPlatform) Hardware(_ context.Context) domain.HardwareIdentity {
	return readDMI(p.dmiDir)
}

func (p *linuxPlatform) OSVersion(ctx context.Context) *string {
	info, err := p.src.Info(ctx)
	if err == nil {
		if name, ok := linuxFriendlyName(info.Platform, info.PlatformVersion); ok {
			return &name
		}
	}
	return p.rawOSVersion(ctx)
}
