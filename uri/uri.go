package uri

//go:generate go tool errtrace -w .

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gouri/internal/constraints"
	"github.com/ghettovoice/gouri/internal/errorutil"
	"github.com/ghettovoice/gouri/internal/grammar"
	"github.com/ghettovoice/gouri/internal/types"
	"github.com/ghettovoice/gouri/internal/util"
)

// Addr represents a host with an optional explicit port.
type Addr = types.Addr

// RenderOptions contains options for rendering URIs.
type RenderOptions = types.RenderOptions

var (
	_ types.Renderer  = URI{}
	_ types.ValidFlag = URI{}
	_ types.Equalable = URI{}
)

// URI is an immutable URI value.
//
// Components are stored as they appear in the input: no normalization,
// no percent-decoding. Only the scheme is lower-cased.
// The zero value is an empty relative reference.
type URI struct {
	scheme   string
	userInfo string
	addr     Addr
	path     string
	query    string
	fragment string
}

// Parse parses a URI from the given input s (string or []byte).
//
// Accepted are absolute URIs with authority ("http://user@example.com:8080/a?b#c"),
// absolute paths ("/a?b#c"), asterisk ("*") and bare authorities ("example.com:8080").
// The fragment is everything after the first "#" of the input, including any further "#".
// Errors match [ErrMalformedURI].
func Parse[T constraints.Byteseq](s T) (URI, error) {
	raw := string(s)

	parts, err := grammar.ParseURI(raw)
	if err != nil {
		return URI{}, errtrace.Wrap(&ParseError{Input: raw, Err: err})
	}

	u := URI{scheme: util.LCase(parts.Scheme)}
	if i := strings.IndexByte(parts.Authority, '@'); i >= 0 {
		u.userInfo = parts.Authority[:i]
	}
	if parts.Port == "" {
		u.addr = types.Host(parts.Host)
	} else {
		port, err := strconv.ParseUint(parts.Port, 10, 16)
		if err != nil {
			return URI{}, errtrace.Wrap(&ParseError{
				Input: raw,
				Err:   errorutil.NewWrapperError(grammar.ErrMalformedInput, "port %s out of range", parts.Port),
			})
		}
		u.addr = types.HostPort(parts.Host, uint16(port))
	}
	if i := strings.IndexByte(parts.PathAndQuery, '?'); i >= 0 {
		u.path, u.query = parts.PathAndQuery[:i], parts.PathAndQuery[i+1:]
	} else {
		u.path = parts.PathAndQuery
	}
	// The grammar tolerates "#" inside the fragment, but the fragment is still
	// cut from the raw input to keep it byte for byte.
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		u.fragment = raw[i+1:]
	}
	return u, nil
}

// MustParse is like [Parse] but panics on error.
func MustParse[T constraints.Byteseq](s T) URI {
	return util.Must2(Parse(s))
}

var defaultPorts = map[string]uint16{
	"http":  80,
	"https": 443,
}

// DefaultPort returns the port implied by the scheme: 80 for "http", 443 for "https".
func DefaultPort(scheme string) (uint16, bool) {
	port, ok := defaultPorts[util.LCase(scheme)]
	return port, ok
}

// Scheme returns the lower-cased scheme or an empty string.
func (u URI) Scheme() string { return u.scheme }

// Authority returns "[user-info@]host[:port]", or an empty string if the host is empty.
// The port is included only if it was set explicitly.
func (u URI) Authority() string {
	if u.addr.Host() == "" {
		return ""
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	u.writeAuthority(sb, nil)
	return sb.String()
}

// UserInfo returns the raw user info, including the ":password" part if any.
func (u URI) UserInfo() string { return u.userInfo }

// Host returns the raw host.
func (u URI) Host() string { return u.addr.Host() }

// Port returns the explicit port or, if there is none, the default port of the scheme.
// Use [URI.ExplicitPort] to know whether the port was set explicitly.
func (u URI) Port() (uint16, bool) {
	if port, ok := u.addr.Port(); ok {
		return port, true
	}
	return DefaultPort(u.scheme)
}

// ExplicitPort returns the port parsed from the input or set with [URI.WithPort].
func (u URI) ExplicitPort() (uint16, bool) { return u.addr.Port() }

// Addr returns the host and the explicit port.
func (u URI) Addr() Addr { return u.addr }

// Path returns the raw path.
func (u URI) Path() string { return u.path }

// Query returns the raw query without the leading "?".
func (u URI) Query() string { return u.query }

// Fragment returns the raw fragment without the leading "#".
func (u URI) Fragment() string { return u.fragment }

// WithScheme returns a copy of u with the lower-cased scheme.
// An empty scheme removes it.
func (u URI) WithScheme(scheme string) URI {
	u.scheme = util.LCase(scheme)
	return u
}

// WithUserInfo returns a copy of u with the user info set to user, without password.
// An empty user removes the user info.
func (u URI) WithUserInfo(user string) URI {
	u.userInfo = user
	return u
}

// WithUserPassword returns a copy of u with the user info set to "user:password".
func (u URI) WithUserPassword(user, password string) URI {
	u.userInfo = user + ":" + password
	return u
}

// WithHost returns a copy of u with the host.
func (u URI) WithHost(host string) URI {
	if port, ok := u.addr.Port(); ok {
		u.addr = types.HostPort(host, port)
	} else {
		u.addr = types.Host(host)
	}
	return u
}

// WithPort returns a copy of u with the explicit port.
// Port must be in range [0, 65535], otherwise an error matching [ErrInvalidPort] is returned.
func (u URI) WithPort(port int) (URI, error) {
	if port < 0 || port > math.MaxUint16 {
		return URI{}, errtrace.Wrap(&PortError{Port: port})
	}
	u.addr = types.HostPort(u.addr.Host(), uint16(port))
	return u, nil
}

// WithoutPort returns a copy of u without the explicit port.
// [URI.Port] falls back to the default port of the scheme after that.
func (u URI) WithoutPort() URI {
	u.addr = types.Host(u.addr.Host())
	return u
}

// WithPath returns a copy of u with the path.
func (u URI) WithPath(path string) URI {
	u.path = path
	return u
}

// WithQuery returns a copy of u with the query.
func (u URI) WithQuery(query string) URI {
	u.query = query
	return u
}

// WithFragment returns a copy of u with the fragment.
func (u URI) WithFragment(fragment string) URI {
	u.fragment = fragment
	return u
}

const redactedPassword = "xxxxx"

func (u URI) writeAuthority(sb *strings.Builder, opts *RenderOptions) {
	if u.userInfo != "" {
		if opts != nil && opts.RedactPassword {
			if user, _, ok := strings.Cut(u.userInfo, ":"); ok {
				sb.WriteString(user)
				sb.WriteByte(':')
				sb.WriteString(redactedPassword)
			} else {
				sb.WriteString(u.userInfo)
			}
		} else {
			sb.WriteString(u.userInfo)
		}
		sb.WriteByte('@')
	}
	sb.WriteString(u.addr.String())
}

func (u URI) renderTo(sb *strings.Builder, opts *RenderOptions) {
	if u.scheme != "" {
		sb.WriteString(u.scheme)
		sb.WriteString("://")
	}
	if u.addr.Host() != "" {
		u.writeAuthority(sb, opts)
	}
	sb.WriteString(u.path)
	if u.query != "" {
		sb.WriteByte('?')
		sb.WriteString(u.query)
	}
	if u.fragment != "" {
		sb.WriteByte('#')
		sb.WriteString(u.fragment)
	}
}

// Render returns the string representation of the URI.
func (u URI) Render(opts *RenderOptions) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	u.renderTo(sb, opts)
	return sb.String()
}

// RenderTo writes the URI to the provided writer.
func (u URI) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	return errtrace.Wrap2(io.WriteString(w, u.Render(opts)))
}

// String returns the string representation of the URI.
//
// With scheme it is "scheme://authority path[?query][#fragment]",
// without scheme it is "authority path[?query][#fragment]".
// Empty query and fragment are omitted together with their delimiters.
func (u URI) String() string { return u.Render(nil) }

// Format implements fmt.Formatter for custom formatting of the URI.
func (u URI) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, u.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
		return
	default:
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, u.String())
			return
		}

		type hideMethods URI
		type URI hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), URI(u))
		return
	}
}

// Equal compares this URI with another for equality.
// The host is compared case-insensitively, other components byte for byte.
// The scheme is always stored lower-cased.
func (u URI) Equal(val any) bool {
	var other URI
	switch v := val.(type) {
	case URI:
		other = v
	case *URI:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}

	return u.scheme == other.scheme &&
		u.userInfo == other.userInfo &&
		u.addr.Equal(other.addr) &&
		u.path == other.path &&
		u.query == other.query &&
		u.fragment == other.fragment
}

// IsValid reports whether the rendered URI is accepted by [Parse].
// Values returned by mutators are not validated and may be invalid.
func (u URI) IsValid() bool { return grammar.IsURI(u.String()) }

// IsZero reports whether all components are empty.
func (u URI) IsZero() bool { return u == URI{} }

// MarshalText implements [encoding.TextMarshaler].
func (u URI) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
// Empty text results in the zero URI.
func (u *URI) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*u = URI{}
		return nil
	}

	u1, err := Parse(text)
	if err != nil {
		*u = URI{}
		return errtrace.Wrap(err)
	}
	*u = u1
	return nil
}
