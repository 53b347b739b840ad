package uhppote

import (
	"net"
	"strconv"
	"strings"
)

const (
	defaultDestinationPort = 60000
	defaultListenerPort    = 60001
)

// resolveAddress parses a "host:port" or bare "host" string into a
// net.UDPAddr, applying defaultPort when the caller omitted a port.
// Hosts are expected to be dotted-quad IPv4 literals, per the wire
// contract; this is not a general DNS resolver.
func resolveAddress(addr string, defaultPort int) (*net.UDPAddr, error) {
	host, port := addr, defaultPort

	if i := strings.LastIndex(addr, ":"); i >= 0 {
		host = addr[:i]
		p, err := strconv.Atoi(addr[i+1:])
		if err != nil {
			return nil, &InvalidArgumentError{Arg: "address", Value: addr, Reason: "port is not numeric"}
		}
		port = p
	}

	ip := net.ParseIP(host)
	if ip == nil {
		return nil, &InvalidArgumentError{Arg: "address", Value: addr, Reason: "host is not a valid IPv4 address"}
	}

	return &net.UDPAddr{IP: ip, Port: port}, nil
}

// isUnspecified reports whether a bind address names INADDR_ANY: no
// address at all, the empty string, or the literal 0.0.0.0 (with or
// without an explicit port). A host that does not parse as an IP
// address is treated the same way. A TCP transport bound to INADDR_ANY lets
// the kernel pick the outgoing interface and source port instead of
// binding explicitly.
func isUnspecified(addr string) bool {
	if addr == "" {
		return true
	}

	host := addr
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		host = addr[:i]
	}

	ip := net.ParseIP(host)
	return ip == nil || ip.IsUnspecified()
}
