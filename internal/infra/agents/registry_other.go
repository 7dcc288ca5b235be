//go:build !windows

package agents

import "context"

type nativeReader struct{}

func (nativeReader) ReadValue(context.Context, string, string) (RegistryValue, bool) {
	return RegistryValue{}, false
}
