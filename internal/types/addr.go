package types

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/ghettovoice/gouri/internal/grammar"
	"github.com/ghettovoice/gouri/internal/util"
)

// Addr is a container for a host and an optional explicit port.
// The host is kept exactly as provided, including IPv6 brackets.
type Addr struct {
	host    string
	port    uint16
	hasPort bool
}

// Host returns an [Addr] containing the provided host and no port.
func Host(host string) Addr {
	return Addr{host: host}
}

// HostPort returns an [Addr] containing the provided host and port.
func HostPort(host string, port uint16) Addr {
	return Addr{
		host:    host,
		port:    port,
		hasPort: true,
	}
}

// Host returns the host as provided during construction or parsing.
func (addr Addr) Host() string { return addr.host }

// Port returns the port, in case it is set, and bool flag indicating whether it is set.
func (addr Addr) Port() (uint16, bool) { return addr.port, addr.hasPort }

// IP returns the IP address when the host is an IP literal or IPv4 address, otherwise nil.
func (addr Addr) IP() net.IP {
	ip := net.ParseIP(strings.TrimSuffix(strings.TrimPrefix(addr.host, "["), "]"))
	if v := ip.To4(); v != nil {
		ip = v
	}
	return ip
}

// String formats the address as host[:port].
func (addr Addr) String() string {
	if !addr.hasPort {
		return addr.host
	}
	return addr.host + ":" + strconv.Itoa(int(addr.port))
}

// Format implements fmt.Formatter to support custom formatting verbs for Addr values.
func (addr Addr) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, addr.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(addr.String()))
		return
	default:
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, addr.String())
			return
		}

		type hideMethods Addr
		type Addr hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), Addr(addr))
		return
	}
}

// Equal reports whether the address equals the provided value, accepting Addr and *Addr.
// Hosts are compared case-insensitively, IP hosts are compared by address.
func (addr Addr) Equal(val any) bool {
	var other Addr
	switch v := val.(type) {
	case Addr:
		other = v
	case *Addr:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}

	var hostMatch bool
	ip1, ip2 := addr.IP(), other.IP()
	switch {
	case ip1 == nil && ip2 == nil:
		hostMatch = util.EqFold(addr.host, other.host)
	case ip1 != nil && ip2 != nil:
		hostMatch = ip1.Equal(ip2)
	default:
		return false
	}

	return hostMatch && addr.port == other.port && addr.hasPort == other.hasPort
}

// IsValid reports whether the address contains a syntactically valid host component.
func (addr Addr) IsValid() bool { return grammar.IsHost(addr.host) }

// IsZero reports whether the address has neither host nor port.
func (addr Addr) IsZero() bool { return addr.host == "" && !addr.hasPort }
