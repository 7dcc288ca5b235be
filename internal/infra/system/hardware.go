package system

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/atlas-it/atlas-agent/internal/domain"
)

const (
	appleManufacturer = "Apple Inc."
	defaultDMIDir     = "/sys/class/dmi/id"
)

var (
	profilerSerial     = regexp.MustCompile(`(?m)^\s*Serial Number \(system\):\s*(.+?)\s*$`)
	profilerModelName  = regexp.MustCompile(`(?m)^\s*Model Name:\s*(.+?)\s*$`)
	profilerIdentifier = regexp.MustCompile(`(?m)^\s*Model Identifier:\s*(.+?)\s*$`)
)

var placeholderValues = map[string]struct{}{
	"to be filled by o.e.m.": {},
	"default string":         {},
	"system serial number":   {},
	"system product name":    {},
	"system manufacturer":    {},
	"not specified":          {},
	"none":                   {},
	"n/a":                    {},
	"0":                      {},
}

// parseSystemProfiler extracts identity fields from
// `system_profiler SPHardwareDataType`.
func parseSystemProfiler(out string) domain.HardwareIdentity {
	var hw domain.HardwareIdentity
	hw.SerialNumber = cleanHardwareValue(firstSubmatch(profilerSerial, out))
	hw.Model = cleanHardwareValue(firstSubmatch(profilerModelName, out))
	if hw.Model == nil {
		hw.Model = cleanHardwareValue(firstSubmatch(profilerIdentifier, out))
	}
	if hw.SerialNumber != nil || hw.Model != nil {
		hw.Manufacturer = domain.StringPtr(appleManufacturer)
	}
	return hw
}

// parseWMICProduct reads
// `wmic csproduct get IdentifyingNumber,Name,Vendor /format:csv` output,
// whose columns are Node,IdentifyingNumber,Name,Vendor.
func parseWMICProduct(out string) domain.HardwareIdentity {
	lines := nonEmptyLines(out)
	if len(lines) < 2 || lines[0] != "Node,IdentifyingNumber,Name,Vendor" {
		return domain.HardwareIdentity{}
	}
	fields := strings.Split(lines[1], ",")
	if len(fields) != 4 {
		return domain.HardwareIdentity{}
	}
	return domain.HardwareIdentity{
		SerialNumber: cleanHardwareValue(fields[1]),
		Model:        cleanHardwareValue(fields[2]),
		Manufacturer: cleanHardwareValue(fields[3]),
	}
}

func readDMI(dir string) domain.HardwareIdentity {
	read := func(name string) *string {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil
		}
		return cleanHardwareValue(string(data))
	}
	return domain.HardwareIdentity{
		SerialNumber: read("product_serial"),
		Manufacturer: read("sys_vendor"),
		Model:        read("product_name"),
	}
}

func cleanHardwareValue(v string) *string {
	v = strings.TrimSpace(v)
	if _, ok := placeholderValues[strings.ToLower(v)]; ok {
		return nil
	}
	return domain.StringPtr(v)
}

func firstSubmatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}
