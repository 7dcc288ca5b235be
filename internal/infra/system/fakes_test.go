package system

import (
	"context"
	"errors"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	psnet "github.com/shirou/gopsutil/v4/net"
)

var errUnavailable = errors.New("unavailable")

type fakeRunner struct {
	outputs map[string]string
	calls   []string
}

func (r *fakeRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	r.calls = append(r.calls, key)
	out, ok := r.outputs[key]
	if !ok {
		return "", errUnavailable
	}
	return out, nil
}

type fakeSource struct {
	info   *host.InfoStat
	vm     *mem.VirtualMemoryStat
	cpus   []cpu.InfoStat
	ifaces psnet.InterfaceStatList
	user   string
	err    error
}

func (s *fakeSource) Info(context.Context) (*host.InfoStat, error) {
	if s.err != nil || s.info == nil {
		return nil, errUnavailable
	}
	return s.info, nil
}

func (s *fakeSource) VirtualMemory(context.Context) (*mem.VirtualMemoryStat, error) {
	if s.err != nil || s.vm == nil {
		return nil, errUnavailable
	}
	return s.vm, nil
}

func (s *fakeSource) CPUInfo(context.Context) ([]cpu.InfoStat, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cpus, nil
}

func (s *fakeSource) Interfaces(context.Context) (psnet.InterfaceStatList, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.ifaces, nil
}

func (s *fakeSource) CurrentUser() (string, error) {
	if s.err != nil || s.user == "" {
		return "", errUnavailable
	}
	return s.user, nil
}
