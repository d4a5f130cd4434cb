package netutil

import (
	"errors"
	"net"
	"strconv"
	"testing"
)

func TestBindTCP(t *testing.T) {
	first, err := BindTCP("127.0.0.1", 0)
	if err != nil {
		t.Fatalf("BindTCP() error = %v", err)
	}
	defer first.Close()

	port, err := ListenerPort(first)
	if err != nil || port <= 0 {
		t.Fatalf("ListenerPort() = %d, %v", port, err)
	}

	t.Run("port taken", func(t *testing.T) {
		_, err := BindTCP("127.0.0.1", port)
		var inUse *AddressInUseError
		if !errors.As(err, &inUse) {
			t.Fatalf("BindTCP() error = %v, want *AddressInUseError", err)
		}
		if want := net.JoinHostPort("127.0.0.1", strconv.Itoa(port)); inUse.Addr != want {
			t.Errorf("Addr = %q, want %q", inUse.Addr, want)
		}
		if !IsAddressInUseError(err) {
			t.Error("IsAddressInUseError() = false through the wrapper")
		}
	})

	t.Run("bad host", func(t *testing.T) {
		_, err := BindTCP("256.0.0.1", 0)
		if err == nil {
			t.Fatal("BindTCP() with invalid host should fail")
		}
		if IsAddressInUseError(err) {
			t.Errorf("IsAddressInUseError(%v) = true", err)
		}
	})
}

func TestIsConnectionRefusedError(t *testing.T) {
	listener, err := BindTCP("127.0.0.1", 0)
	if err != nil {
		t.Fatalf("BindTCP() error = %v", err)
	}
	addr := listener.Addr().String()
	listener.Close()

	conn, err := net.Dial("tcp4", addr)
	if err == nil {
		conn.Close()
		t.Skip("port was reused before dial")
	}
	if !IsConnectionRefusedError(err) {
		t.Errorf("IsConnectionRefusedError(%v) = false", err)
	}
	if IsConnectionRefusedError(errors.New("other")) {
		t.Error("IsConnectionRefusedError(other) = true")
	}
}
