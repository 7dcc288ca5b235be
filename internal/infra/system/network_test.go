package system

import (
	"testing"

	psnet "github.com/shirou/gopsutil/v4/net"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlas-it/atlas-agent/internal/domain"
)

func iface(index int, name, mac string, flags []string, addrs ...string) psnet.InterfaceStat {
	list := make(psnet.InterfaceAddrList, 0, len(addrs))
	for _, a := range addrs {
		list = append(list, psnet.InterfaceAddr{Addr: a})
	}
	return psnet.InterfaceStat{Index: index, Name: name, HardwareAddr: mac, Flags: flags, Addrs: list}
}

func TestSelectPrimaryPicksLowestIndex(t *testing.T) {
	ifaces := psnet.InterfaceStatList{
		iface(7, "wlan0", "aa:bb:cc:00:00:07", []string{"up"}, "192.168.1.7/24"),
		iface(1, "lo", "", []string{"up", "loopback"}, "127.0.0.1/8", "::1/128"),
		iface(2, "eth0", "AA:BB:CC:00:00:02", []string{"up"}, "fe80::1/64", "10.0.0.2/24"),
	}

	id := selectPrimary(ifaces)
	assert.Equal(t, "10.0.0.2", id.IPAddress)
	require.NotNil(t, id.MACAddress)
	assert.Equal(t, "aa:bb:cc:00:00:02", *id.MACAddress)
}

func TestSelectPrimaryFallsBackToLoopback(t *testing.T) {
	ifaces := psnet.InterfaceStatList{
		iface(1, "lo", "", []string{"up", "loopback"}, "127.0.0.1/8"),
	}

	id := selectPrimary(ifaces)
	assert.Equal(t, domain.FallbackIPv4, id.IPAddress)
	assert.Nil(t, id.MACAddress)
}

func TestSelectPrimaryIgnoresZeroMAC(t *testing.T) {
	ifaces := psnet.InterfaceStatList{
		iface(3, "tun0", "00:00:00:00:00:00", []string{"up", "pointtopoint"}, "10.8.0.2/24"),
		iface(4, "utun1", "", []string{"up"}),
	}

	id := selectPrimary(ifaces)
	assert.Equal(t, "10.8.0.2", id.IPAddress)
	assert.Nil(t, id.MACAddress)
}

func TestSelectPrimaryIPv6Only(t *testing.T) {
	ifaces := psnet.InterfaceStatList{
		iface(2, "eth0", "aa:bb:cc:dd:ee:ff", []string{"up"}, "2001:db8::5/64"),
	}

	id := selectPrimary(ifaces)
	assert.Equal(t, domain.FallbackIPv4, id.IPAddress)
	require.NotNil(t, id.MACAddress)
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", *id.MACAddress)
}

func TestSelectPrimaryNameBreaksIndexTie(t *testing.T) {
	ifaces := psnet.InterfaceStatList{
		iface(0, "en1", "aa:00:00:00:00:01", []string{"up"}, "192.168.0.11"),
		iface(0, "en0", "aa:00:00:00:00:00", []string{"up"}, "192.168.0.10"),
	}

	id := selectPrimary(ifaces)
	assert.Equal(t, "192.168.0.10", id.IPAddress)
}

func TestSelectPrimarySkipsDownAndAddresslessInterfaces(t *testing.T) {
	ifaces := psnet.InterfaceStatList{
		iface(1, "lo", "", []string{"up", "loopback"}, "127.0.0.1/8"),
		iface(2, "ifb0", "7e:cf:2a:f2:95:4c", []string{"broadcast", "noarp"}),
		iface(3, "docker0", "02:42:ac:11:00:01", []string{"broadcast", "multicast"}, "172.17.0.1/16"),
		iface(4, "eth0", "02:fc:00:00:00:01", []string{"up", "broadcast", "multicast"}, "192.0.2.2/24"),
	}

	id := selectPrimary(ifaces)
	assert.Equal(t, "192.0.2.2", id.IPAddress)
	require.NotNil(t, id.MACAddress)
	assert.Equal(t, "02:fc:00:00:00:01", *id.MACAddress)
}

func TestSelectPrimaryMACFollowsIPv4Interface(t *testing.T) {
	ifaces := psnet.InterfaceStatList{
		iface(2, "eth0", "aa:aa:aa:aa:aa:02", []string{"up"}, "fe80::2/64"),
		iface(5, "wlan0", "aa:aa:aa:aa:aa:05", []string{"up"}, "192.168.1.5/24"),
	}

	id := selectPrimary(ifaces)
	assert.Equal(t, "192.168.1.5", id.IPAddress)
	require.NotNil(t, id.MACAddress)
	assert.Equal(t, "aa:aa:aa:aa:aa:05", *id.MACAddress)
}

func TestSelectPrimaryMACFallsBackWhenIPv4InterfaceHasNone(t *testing.T) {
	ifaces := psnet.InterfaceStatList{
		iface(3, "tun0", "", []string{"up", "pointtopoint"}, "10.8.0.2/24"),
		iface(4, "eth1", "aa:aa:aa:aa:aa:04", []string{"up"}, "fe80::4/64"),
	}

	id := selectPrimary(ifaces)
	assert.Equal(t, "10.8.0.2", id.IPAddress)
	require.NotNil(t, id.MACAddress)
	assert.Equal(t, "aa:aa:aa:aa:aa:04", *id.MACAddress)
}

func TestNetworkDegrades(t *testing.T) {
	p := newPlatform(Linux, &fakeRunner{}, &fakeSource{err: errUnavailable}, nil)

	id := p.Network(t.Context())
	assert.Equal(t, domain.FallbackIPv4, id.IPAddress)
	assert.Nil(t, id.MACAddress)
}
