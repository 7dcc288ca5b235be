package system

import (
	"strconv"
	"strings"

	"github.com/atlas-it/atlas-agent/internal/domain"
)

// parseDF reads `df -Pk /` output: a header line followed by one row whose
// second and fourth columns are total and available KiB. The header text is
// locale-dependent, so only its presence is checked.
func parseDF(out string) domain.DiskUsage {
	lines := nonEmptyLines(out)
	if len(lines) < 2 {
		return domain.DiskUsage{}
	}
	fields := strings.Fields(lines[len(lines)-1])
	if len(fields) < 6 {
		return domain.DiskUsage{}
	}
	total, err1 := strconv.ParseFloat(fields[1], 64)
	avail, err2 := strconv.ParseFloat(fields[3], 64)
	if err1 != nil || err2 != nil || total <= 0 {
		return domain.DiskUsage{}
	}
	return diskPair(total/kibPerGB, avail/kibPerGB)
}

// parseWMICDisk reads `wmic logicaldisk ... get FreeSpace,Size /format:csv`
// output. wmic orders columns as Node,FreeSpace,Size.
func parseWMICDisk(out string) domain.DiskUsage {
	lines := nonEmptyLines(out)
	if len(lines) < 2 || lines[0] != "Node,FreeSpace,Size" {
		return domain.DiskUsage{}
	}
	fields := strings.Split(lines[1], ",")
	if len(fields) != 3 {
		return domain.DiskUsage{}
	}
	free, err1 := strconv.ParseFloat(fields[1], 64)
	size, err2 := strconv.ParseFloat(fields[2], 64)
	if err1 != nil || err2 != nil || size <= 0 {
		return domain.DiskUsage{}
	}
	return diskPair(bytesToGB(size), bytesToGB(free))
}

func diskPair(totalGB, freeGB float64) domain.DiskUsage {
	total := roundTo(totalGB, 0)
	free := roundTo(freeGB, 0)
	return domain.DiskUsage{Total: &total, Free: &free}
}

// nonEmptyLines splits on any line ending, including wmic's "\r\r\n".
func nonEmptyLines(out string) []string {
	var lines []string
	for _, line := range strings.FieldsFunc(out, func(r rune) bool { return r == '\n' || r == '\r' }) {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
