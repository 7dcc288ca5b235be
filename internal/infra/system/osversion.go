package system

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const windows11MinBuild = 22000

var (
	macOSNames = map[int]string{
		11: "Big Sur",
		12: "Monterey",
		13: "Ventura",
		14: "Sonoma",
		15: "Sequoia",
		26: "Tahoe",
	}
	// macOS 10.x releases are named by minor version.
	macOSXNames = map[int]string{
		13: "High Sierra",
		14: "Mojave",
		15: "Catalina",
	}

	productVersionRe = regexp.MustCompile(`^(\d+)(?:\.(\d+))?(?:\.\d+)?$`)
	windowsKernelRe  = regexp.MustCompile(`(\d+)\.(\d+)\.(\d+)`)
)

// macOSFriendlyName prefixes a `sw_vers -productVersion` value with its
// marketing name, e.g. "14.4.1" becomes "macOS Sonoma 14.4.1".
func macOSFriendlyName(productVersion string) (string, bool) {
	productVersion = strings.TrimSpace(productVersion)
	m := productVersionRe.FindStringSubmatch(productVersion)
	if m == nil {
		return "", false
	}
	major, _ := strconv.Atoi(m[1])
	name := macOSNames[major]
	if major == 10 && m[2] != "" {
		minor, _ := strconv.Atoi(m[2])
		name = macOSXNames[minor]
	}
	if name == "" {
		return "macOS " + productVersion, true
	}
	return fmt.Sprintf("macOS %s %s", name, productVersion), true
}

// windowsFriendlyName builds a marketing name from a kernel release such as
// "10.0.22631.3447".
func windowsFriendlyName(kernel string) (string, bool) {
	m := windowsKernelRe.FindStringSubmatch(kernel)
	if m == nil {
		return "", false
	}
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	build, _ := strconv.Atoi(m[3])

	var name string
	switch {
	case major == 10 && build >= windows11MinBuild:
		name = "Windows 11"
	case major == 10:
		name = "Windows 10"
	case major == 6 && minor == 3:
		name = "Windows 8.1"
	case major == 6 && minor == 2:
		name = "Windows 8"
	case major == 6 && minor == 1:
		name = "Windows 7"
	default:
		return "", false
	}
	return fmt.Sprintf("%s (Build %d)", name, build), true
}

// linuxFriendlyName joins a distribution id and version: "ubuntu", "22.04"
// becomes "Ubuntu 22.04".
func linuxFriendlyName(platform, version string) (string, bool) {
	platform = strings.TrimSpace(platform)
	if platform == "" {
		return "", false
	}
	r := []rune(platform)
	r[0] = unicode.ToUpper(r[0])
	return strings.TrimSpace(string(r) + " " + strings.TrimSpace(version)), true
}
