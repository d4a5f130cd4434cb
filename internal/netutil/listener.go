// Package netutil holds the listener and network error helpers shared by
// batchd and batchctl.
package netutil

import (
	"fmt"
	"net"
	"strconv"
)

// AddressInUseError reports that the API port is taken, usually by another
// batchd. The underlying *net.OpError stays reachable through Unwrap.
type AddressInUseError struct {
	Addr string
	Err  error
}

func (e *AddressInUseError) Error() string {
	return fmt.Sprintf("address %s is already in use", e.Addr)
}

func (e *AddressInUseError) Unwrap() error {
	return e.Err
}

// BindTCP opens the daemon's API listener. The daemon binds before the
// batcher starts accepting tasks so a port conflict aborts startup with
// nothing queued. Port 0 picks a free port; see ListenerPort.
func BindTCP(host string, port int) (net.Listener, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	network := "tcp"
	if ip := net.ParseIP(host); ip != nil && ip.To4() != nil {
		network = "tcp4"
	}

	listener, err := net.Listen(network, addr)
	switch {
	case err == nil:
		return listener, nil
	case IsAddressInUseError(err):
		return nil, &AddressInUseError{Addr: addr, Err: err}
	default:
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
}

// ListenerPort returns the port a TCP listener is bound to.
func ListenerPort(listener net.Listener) (int, error) {
	tcpAddr, ok := listener.Addr().(*net.TCPAddr)
	if !ok {
		return 0, fmt.Errorf("not a TCP listener: %s", listener.Addr())
	}
	return tcpAddr.Port, nil
}
