package system

import (
	"context"
	"log/slog"
	"os"
	"os/user"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	psnet "github.com/shirou/gopsutil/v4/net"

	"github.com/atlas-it/atlas-agent/internal/domain"
	"github.com/atlas-it/atlas-agent/internal/impls"
	"github.com/atlas-it/atlas-agent/internal/infra/shell"
)

// Platform tags understood by ForPlatform.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

var (
	_ impls.PlatformProbe = (*windowsPlatform)(nil)
	_ impls.PlatformProbe = (*darwinPlatform)(nil)
	_ impls.PlatformProbe = (*linuxPlatform)(nil)
	_ impls.PlatformProbe = (*unsupportedPlatform)(nil)
)

// hostSource wraps the OS APIs shared by every platform.
type hostSource interface {
	Info(ctx context.Context) (*host.InfoStat, error)
	VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error)
	CPUInfo(ctx context.Context) ([]cpu.InfoStat, error)
	Interfaces(ctx context.Context) (psnet.InterfaceStatList, error)
	CurrentUser() (string, error)
}

// ForPlatform returns the probe set for tag, falling back to a generic
// variant for platforms without dedicated probes.
func ForPlatform(tag string, runner shell.Runner, logger *slog.Logger) impls.PlatformProbe {
	return newPlatform(tag, runner, gopsutilSource{}, logger)
}

// Current returns the probe set for the running OS.
func Current(runner shell.Runner, logger *slog.Logger) impls.PlatformProbe {
	return ForPlatform(runtime.GOOS, runner, logger)
}

func newPlatform(tag string, runner shell.Runner, src hostSource, logger *slog.Logger) impls.PlatformProbe {
	c := common{tag: tag, runner: runner, src: src, logger: logger}
	switch tag {
	case Windows:
		return &windowsPlatform{common: c}
	case Darwin:
		return &darwinPlatform{common: c}
	case Linux:
		return &linuxPlatform{common: c, dmiDir: defaultDMIDir}
	default:
		c.degraded("platform probes", domain.ErrUnsupportedPlatform{Platform: tag})
		return &unsupportedPlatform{common: c}
	}
}

type gopsutilSource struct{}

func (gopsutilSource) Info(ctx context.Context) (*host.InfoStat, error) {
	return host.InfoWithContext(ctx)
}

func (gopsutilSource) VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error) {
	return mem.VirtualMemoryWithContext(ctx)
}

func (gopsutilSource) CPUInfo(ctx context.Context) ([]cpu.InfoStat, error) {
	return cpu.InfoWithContext(ctx)
}

func (gopsutilSource) Interfaces(ctx context.Context) (psnet.InterfaceStatList, error) {
	return psnet.InterfacesWithContext(ctx)
}

func (gopsutilSource) CurrentUser() (string, error) {
	u, err := user.Current()
	if err == nil && u.Username != "" {
		return u.Username, nil
	}
	for _, key := range []string{"USER", "USERNAME", "LOGNAME"} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v, nil
		}
	}
	return "", err
}
