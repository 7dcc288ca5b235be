package network

import (
	"fmt"
	"log/slog"
	"net"
	"strconv"
)

// LoopbackHost is the only address the local API binds to.
const LoopbackHost = "127.0.0.1"

// Listen binds the local API on the loopback interface. Port 0 picks a free
// ephemeral port; a configured port that is busy is an error, not a
// fallback.
func Listen(port int, logger *slog.Logger) (net.Listener, error) {
	if port < 0 || port > 65535 {
		return nil, fmt.Errorf("invalid local port %d", port)
	}
	addr := net.JoinHostPort(LoopbackHost, strconv.Itoa(port))
	l, err := net.Listen("tcp", addr)
	if err != nil {
		if port != 0 {
			return nil, fmt.Errorf("configured local port %d is busy: %w", port, err)
		}
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	if logger != nil {
		logger.Debug("local api listener bound", "addr", l.Addr().String())
	}
	return l, nil
}

// Port returns the TCP port of l.
func Port(l net.Listener) (int, error) {
	addr, ok := l.Addr().(*net.TCPAddr)
	if !ok {
		return 0, fmt.Errorf("unable to resolve TCP addr")
	}
	return addr.Port, nil
}
