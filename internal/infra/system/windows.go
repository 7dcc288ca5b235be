package system

import (
	"context"
	"strings"

	"github.com/atlas-it/atlas-agent/internal/domain"
)

const userDomainVar = "%USERDOMAIN%"

type windowsPlatform struct {
	common
}

// Domain echoes %USERDOMAIN% through cmd. An unset variable comes back
// unexpanded.
func (p *windowsPlatform) Domain(ctx context.Context) *string {
	out, err := p.runner.Run(ctx, "cmd", "/c", "echo", userDomainVar)
	if err != nil {
		p.degraded("domain", err)
		return nil
	}
	out = strings.TrimSpace(out)
	if out == "" || strings.EqualFold(out, userDomainVar) {
		return nil
	}
	return &out
}

func (p *windowsPlatform) Disk(ctx context.Context) domain.DiskUsage {
	out, err := p.runner.Run(ctx, "wmic", "logicaldisk", "where", "DeviceID='C:'", "get", "FreeSpace,Size", "/format:csv")
	if err != nil {
		p.degraded("disk", err)
		return domain.DiskUsage{}
	}
	return parseWMICDisk(out)
}

func (p *windowsPlatform) Hardware(ctx context.Context) domain.HardwareIdentity {
	out, err := p.runner.Run(ctx, "wmic", "csproduct", "get", "IdentifyingNumber,Name,Vendor", "/format:csv")
	if err != nil {
		p.degraded("hardware", err)
		return domain.HardwareIdentity{}
	}
	return parseWMICProduct(out)
}

func (p *windowsPlatform) OSVersion(ctx context.Context) *string {
	info, err := p.src.Info(ctx)
	if err != nil {
		p.degraded("os version", err)
		return nil
	}
	if name, ok := windowsFriendlyName(info.KernelVersion); ok {
		return &name
	}
	return p.rawOSVersion(ctx)
}
