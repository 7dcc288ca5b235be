package system

import (
	"testing"

	"github.com/shirou/gopsutil/v4/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMacOSFriendlyName(t *testing.T) {
	tests := map[string]string{
		"14.4.1":  "macOS Sonoma 14.4.1",
		"15.0":    "macOS Sequoia 15.0",
		"10.15.7": "macOS Catalina 10.15.7",
		"99.1":    "macOS 99.1",
	}
	for in, want := range tests {
		got, ok := macOSFriendlyName(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got)
	}

	_, ok := macOSFriendlyName("not a version")
	assert.False(t, ok)
}

func TestWindowsFriendlyName(t *testing.T) {
	tests := map[string]string{
		"10.0.22631.3447 Build 22631.3447": "Windows 11 (Build 22631)",
		"10.0.19045":                       "Windows 10 (Build 19045)",
		"6.1.7601":                         "Windows 7 (Build 7601)",
	}
	for in, want := range tests {
		got, ok := windowsFriendlyName(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got)
	}

	_, ok := windowsFriendlyName("5.1.2600")
	assert.False(t, ok)
}

func TestDarwinOSVersionShellsOut(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{"sw_vers -productVersion": "14.4.1\n"}}
	p := newPlatform(Darwin, runner, &fakeSource{}, nil)

	v := p.OSVersion(t.Context())
	require.NotNil(t, v)
	assert.Equal(t, "macOS Sonoma 14.4.1", *v)
}

func TestDarwinOSVersionFallsBackToRaw(t *testing.T) {
	src := &fakeSource{info: &host.InfoStat{KernelVersion: "23.4.0"}}
	p := newPlatform(Darwin, &fakeRunner{}, src, nil)

	v := p.OSVersion(t.Context())
	require.NotNil(t, v)
	assert.Equal(t, "Darwin 23.4.0", *v)
}

func TestWindowsOSVersionFromKernel(t *testing.T) {
	src := &fakeSource{info: &host.InfoStat{KernelVersion: "10.0.22631.3447"}}
	p := newPlatform(Windows, &fakeRunner{}, src, nil)

	v := p.OSVersion(t.Context())
	require.NotNil(t, v)
	assert.Equal(t, "Windows 11 (Build 22631)", *v)
}

func TestLinuxOSVersion(t *testing.T) {
	src := &fakeSource{info: &host.InfoStat{Platform: "ubuntu", PlatformVersion: "22.04", KernelVersion: "6.5.0"}}
	p := newPlatform(Linux, &fakeRunner{}, src, nil)

	v := p.OSVersion(t.Context())
	require.NotNil(t, v)
	assert.Equal(t, "Ubuntu 22.04", *v)
}

func TestOSVersionUnknown(t *testing.T) {
	p := newPlatform(Windows, &fakeRunner{}, &fakeSource{}, nil)
	assert.Nil(t, p.OSVersion(t.Context()))
}
