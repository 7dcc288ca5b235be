package system

import (
	"net"
	"slices"
	"strings"

	psnet "github.com/shirou/gopsutil/v4/net"

	"github.com/atlas-it/atlas-agent/internal/domain"
)

const zeroMAC = "00:00:00:00:00:00"

// selectPrimary picks the primary IPv4 and MAC address. Interfaces are
// visited by ascending index, then name, so the result is stable for a
// given machine state regardless of enumeration order. Only interfaces that
// are up, not loopback and carry at least one address qualify. The MAC comes
// from the interface holding the primary IPv4; when that interface has
// none, the first qualifying non-zero MAC is used.
func selectPrimary(ifaces psnet.InterfaceStatList) domain.NetworkIdentity {
	sorted := slices.Clone(ifaces)
	slices.SortStableFunc(sorted, func(a, b psnet.InterfaceStat) int {
		if a.Index != b.Index {
			return a.Index - b.Index
		}
		return strings.Compare(a.Name, b.Name)
	})
	sorted = slices.DeleteFunc(sorted, func(iface psnet.InterfaceStat) bool {
		return !qualifies(iface)
	})

	id := domain.NetworkIdentity{IPAddress: domain.FallbackIPv4}
	for _, iface := range sorted {
		if ip := firstIPv4(iface.Addrs); ip != "" {
			id.IPAddress = ip
			id.MACAddress = normalizeMAC(iface.HardwareAddr)
			break
		}
	}
	if id.MACAddress != nil {
		return id
	}
	for _, iface := range sorted {
		if mac := normalizeMAC(iface.HardwareAddr); mac != nil {
			id.MACAddress = mac
			break
		}
	}
	return id
}

func qualifies(iface psnet.InterfaceStat) bool {
	return !slices.Contains(iface.Flags, "loopback") &&
		slices.Contains(iface.Flags, "up") &&
		len(iface.Addrs) > 0
}

func firstIPv4(addrs psnet.InterfaceAddrList) string {
	for _, a := range addrs {
		ip := net.ParseIP(a.Addr)
		if ip == nil {
			parsed, _, err := net.ParseCIDR(a.Addr)
			if err != nil {
				continue
			}
			ip = parsed
		}
		if v4 := ip.To4(); v4 != nil && !v4.IsLoopback() {
			return v4.String()
		}
	}
	return ""
}

func normalizeMAC(raw string) *string {
	mac := strings.ToLower(strings.TrimSpace(raw))
	if mac == "" || mac == zeroMAC {
		return nil
	}
	return &mac
}
