package agents

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/atlas-it/atlas-agent/internal/infra/shell"
)

// RegistryValue is a registry value as rendered by `reg query`: integers are
// hex ("0x1a2b"), strings verbatim.
type RegistryValue struct {
	Type string
	Data string
}

// RegistryReader reads a single named value below a key such as
// `HKLM\SOFTWARE\TeamViewer`.
type RegistryReader interface {
	ReadValue(ctx context.Context, key, name string) (RegistryValue, bool)
}

// NewRegistryReader returns the native reader backed by reg.exe as fallback.
// On platforms without a registry every read misses.
func NewRegistryReader(runner shell.Runner) RegistryReader {
	return chainReader{nativeReader{}, regQueryReader{runner: runner}}
}

type chainReader []RegistryReader

func (c chainReader) ReadValue(ctx context.Context, key, name string) (RegistryValue, bool) {
	for _, r := range c {
		if v, ok := r.ReadValue(ctx, key, name); ok {
			return v, true
		}
	}
	return RegistryValue{}, false
}

type regQueryReader struct {
	runner shell.Runner
}

func (r regQueryReader) ReadValue(ctx context.Context, key, name string) (RegistryValue, bool) {
	out, err := r.runner.Run(ctx, "reg", "query", key, "/v", name)
	if err != nil {
		return RegistryValue{}, false
	}
	return parseRegQuery(out, name)
}

var regLineRe = regexp.MustCompile(`^\s*(.+?)\s+(REG_[A-Z_]+)\s*(.*?)\s*$`)

// parseRegQuery finds the named value in `reg query <key> /v <name>` output.
func parseRegQuery(out, name string) (RegistryValue, bool) {
	for _, line := range strings.Split(strings.ReplaceAll(out, "\r", ""), "\n") {
		m := regLineRe.FindStringSubmatch(line)
		if m == nil || !strings.EqualFold(m[1], name) {
			continue
		}
		return RegistryValue{Type: m[2], Data: m[3]}, true
	}
	return RegistryValue{}, false
}

// parseRegistryNumber reads a registry value as an integer, trying the hex
// DWORD rendering first and a decimal string second.
func parseRegistryNumber(v RegistryValue) (int64, bool) {
	data := strings.TrimSpace(v.Data)
	if hex, ok := strings.CutPrefix(strings.ToLower(data), "0x"); ok {
		if n, err := strconv.ParseInt(hex, 16, 64); err == nil {
			return n, true
		}
	}
	if n, err := strconv.ParseInt(data, 10, 64); err == nil {
		return n, true
	}
	return 0, false
}
