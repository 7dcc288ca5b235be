package system

import (
	"context"
	"log/slog"
	"strings"

	"github.com/atlas-it/atlas-agent/internal/domain"
	"github.com/atlas-it/atlas-agent/internal/infra/shell"
)

// common implements the probes whose source is the same on every platform.
// Platform variants embed it and override what differs.
type common struct {
	tag    string
	runner shell.Runner
	src    hostSource
	logger *slog.Logger
}

func (c *common) Tag() string {
	return c.tag
}

func (c *common) ComputerName(ctx context.Context) *string {
	info, err := c.src.Info(ctx)
	if err != nil {
		c.degraded("computer name", err)
		return nil
	}
	return domain.StringPtr(strings.TrimSpace(info.Hostname))
}

func (c *common) LoggedInUser(_ context.Context) *string {
	name, err := c.src.CurrentUser()
	if err != nil {
		c.degraded("logged in user", err)
		return nil
	}
	// Windows reports DOMAIN\user.
	if i := strings.LastIndex(name, `\`); i >= 0 {
		name = name[i+1:]
	}
	return domain.StringPtr(strings.TrimSpace(name))
}

func (c *common) Domain(_ context.Context) *string {
	return nil
}

func (c *common) CPU(ctx context.Context) *string {
	infos, err := c.src.CPUInfo(ctx)
	if err != nil || len(infos) == 0 {
		c.degraded("cpu", err)
		return nil
	}
	return domain.StringPtr(strings.Join(strings.Fields(infos[0].ModelName), " "))
}

func (c *common) Memory(ctx context.Context) domain.MemoryUsage {
	vm, err := c.src.VirtualMemory(ctx)
	if err != nil || vm.Total == 0 {
		c.degraded("memory", err)
		return domain.MemoryUsage{}
	}
	total := roundTo(bytesToGB(float64(vm.Total)), 1)
	free := roundTo(bytesToGB(float64(vm.Available)), 1)
	return domain.MemoryUsage{Total: &total, Free: &free}
}

func (c *common) Disk(_ context.Context) domain.DiskUsage {
	return domain.DiskUsage{}
}

func (c *common) Hardware(_ context.Context) domain.HardwareIdentity {
	return domain.HardwareIdentity{}
}

func (c *common) OSVersion(ctx context.Context) *string {
	return c.rawOSVersion(ctx)
}

// rawOSVersion is the "<os type> <kernel release>" fallback.
func (c *common) rawOSVersion(ctx context.Context) *string {
	info, err := c.src.Info(ctx)
	if err != nil || info.KernelVersion == "" {
		c.degraded("os version", err)
		return nil
	}
	return domain.StringPtr(osType(c.tag) + " " + info.KernelVersion)
}

func (c *common) UptimeSeconds(ctx context.Context) *uint64 {
	info, err := c.src.Info(ctx)
	if err != nil {
		c.degraded("uptime", err)
		return nil
	}
	up := info.Uptime
	return &up
}

func (c *common) Network(ctx context.Context) domain.NetworkIdentity {
	ifaces, err := c.src.Interfaces(ctx)
	if err != nil {
		c.degraded("network", err)
		return domain.NetworkIdentity{IPAddress: domain.FallbackIPv4}
	}
	return selectPrimary(ifaces)
}

func (c *common) degraded(probe string, err error) {
	if c.logger == nil {
		return
	}
	c.logger.Debug("probe degraded", "platform", c.tag, "probe", probe, "error", err)
}

func osType(tag string) string {
	switch tag {
	case Windows:
		return "Windows_NT"
	case Darwin:
		return "Darwin"
	case Linux:
		return "Linux"
	default:
		return tag
	}
}
