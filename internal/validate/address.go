package validate

import (
	"fmt"
	"net"
	"strconv"
)

// NetworkAddress is a parsed "ip:port" pair.
type NetworkAddress struct {
	Host string `validate:"required,ip"`
	Port int    `validate:"min=1,max=65535"`
}

func (na NetworkAddress) String() string {
	return net.JoinHostPort(na.Host, strconv.Itoa(na.Port))
}

// ParseBindAddress parses the daemon's --api listen address or the CLI's
// --api endpoint. The host must be a literal IP; hostnames are rejected so a
// typo cannot silently resolve somewhere else.
func ParseBindAddress(addr string) (*NetworkAddress, error) {
	if addr == "" {
		return nil, fmt.Errorf("address cannot be empty")
	}

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid address format '%s': %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid port '%s': %w", portStr, err)
	}

	na := &NetworkAddress{Host: host, Port: port}
	if err := Struct(na); err != nil {
		return nil, fmt.Errorf("invalid address '%s': %w", addr, err)
	}
	return na, nil
}

// ValidateField checks a single value against a validator tag expression,
// e.g. ValidateField(port, "min=1,max=65535").
func ValidateField(value any, tag string) error {
	return validate.Var(value, tag)
}
