package domain

import "time"

// FallbackIPv4 is reported when no non-loopback IPv4 address is found.
const FallbackIPv4 = "127.0.0.1"

// DeviceContext is a point-in-time snapshot of local machine facts and the
// identifiers of installed remote-support agents. A nil field means the value
// could not be probed.
type DeviceContext struct {
	ComputerName *string `json:"computerName"`
	LoggedInUser *string `json:"loggedInUser"`
	Domain       *string `json:"domain"`

	SerialNumber *string  `json:"serialNumber"`
	Manufacturer *string  `json:"manufacturer"`
	Model        *string  `json:"model"`
	CPU          *string  `json:"cpu"`
	Arch         string   `json:"arch"`
	TotalMemory  *float64 `json:"totalMemory"`
	FreeMemory   *float64 `json:"freeMemory"`
	DiskTotal    *float64 `json:"diskTotal"`
	DiskFree     *float64 `json:"diskFree"`
	Uptime       *string  `json:"uptime"`

	OSVersion  *string `json:"osVersion"`
	OSPlatform string  `json:"osPlatform"`

	IPAddress  string  `json:"ipAddress"`
	MACAddress *string `json:"macAddress"`

	NinjaDeviceID     *int64  `json:"ninjaDeviceId"`
	TeamViewerID      *string `json:"teamviewerId"`
	TeamViewerVersion *string `json:"teamviewerVersion"`

	CollectedAt time.Time `json:"collectedAt"`
}

// DiskUsage holds system volume capacity in GB. Total and Free are either
// both set or both nil.
type DiskUsage struct {
	Total *float64 `json:"total"`
	Free  *float64 `json:"free"`
}

// MemoryUsage holds physical memory in GB.
type MemoryUsage struct {
	Total *float64 `json:"total"`
	Free  *float64 `json:"free"`
}

// HardwareIdentity describes the machine as reported by firmware.
type HardwareIdentity struct {
	SerialNumber *string `json:"serialNumber"`
	Manufacturer *string `json:"manufacturer"`
	Model        *string `json:"model"`
}

// NetworkIdentity is the primary address pair of the machine.
type NetworkIdentity struct {
	IPAddress  string  `json:"ipAddress"`
	MACAddress *string `json:"macAddress"`
}

// StringPtr returns nil for blank values and a pointer otherwise.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
