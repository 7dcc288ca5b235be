//go:build windows

package agents

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sys/windows/registry"
)

type nativeReader struct{}

var registryRoots = map[string]registry.Key{
	"HKLM":               registry.LOCAL_MACHINE,
	"HKEY_LOCAL_MACHINE": registry.LOCAL_MACHINE,
	"HKCU":               registry.CURRENT_USER,
	"HKEY_CURRENT_USER":  registry.CURRENT_USER,
}

func (nativeReader) ReadValue(_ context.Context, key, name string) (RegistryValue, bool) {
	rootName, path, ok := strings.Cut(key, `\`)
	if !ok {
		return RegistryValue{}, false
	}
	root, ok := registryRoots[strings.ToUpper(rootName)]
	if !ok {
		return RegistryValue{}, false
	}

	// Paths name WOW6432Node explicitly, so bypass redirection.
	k, err := registry.OpenKey(root, path, registry.QUERY_VALUE|registry.WOW64_64KEY)
	if err != nil {
		return RegistryValue{}, false
	}
	defer k.Close()

	if n, valType, err := k.GetIntegerValue(name); err == nil {
		typ := "REG_DWORD"
		if valType == registry.QWORD {
			typ = "REG_QWORD"
		}
		return RegistryValue{Type: typ, Data: fmt.Sprintf("0x%x", n)}, true
	}
	if s, _, err := k.GetStringValue(name); err == nil {
		return RegistryValue{Type: "REG_SZ", Data: s}, true
	}
	return RegistryValue{}, false
}
