package grammar

import (
	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/gouri/internal/constraints"
	"github.com/ghettovoice/gouri/internal/errorutil"
	"github.com/ghettovoice/gouri/internal/grammar/rfc3986"
)

const (
	ErrEmptyInput     Error = "empty input"
	ErrMalformedInput Error = "malformed input"
)

func newMalformedInputErr(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedInput, args...) //errtrace:skip
}

// URIParts holds raw substrings of a URI as matched by the grammar.
// Absent components are empty strings.
type URIParts struct {
	// Scheme is the scheme token as written in the input.
	Scheme string
	// Authority is the whole authority token: [ userinfo "@" ] host [ ":" port ].
	Authority string
	// Host is the host token of the authority.
	Host string
	// Port is the digits after ":" in the authority, empty for no explicit port.
	Port string
	// PathAndQuery is the path with the optional "?" query, without the fragment.
	PathAndQuery string
}

// ParseURI parses s as a URI value and returns its raw parts.
// The fragment is not among them: it is everything after the first "#" of s.
//
// Accepted forms are absolute form (scheme "://" authority path ["?" query] ["#" fragment]),
// origin form ("/" path ["?" query] ["#" fragment]), asterisk form ("*") and
// authority form (host with optional user info and port).
func ParseURI[T constraints.Byteseq](s T) (URIParts, error) {
	if len(s) == 0 {
		return URIParts{}, errtrace.Wrap(ErrEmptyInput)
	}

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := rfc3986.Rules().URIValue([]byte(s), ns); err != nil {
		return URIParts{}, errtrace.Wrap(newMalformedInputErr(err))
	}

	n := ns.Best()
	if nl, il := n.Len(), len(s); nl < il {
		return URIParts{}, errtrace.Wrap(newMalformedInputErr("node length %d < input length %d", nl, il))
	}
	return buildURIParts(n), nil
}

func buildURIParts(node *abnf.Node) URIParts {
	var p URIParts
	if n := lookupNode(node, "scheme"); n != nil {
		p.Scheme = n.String()
	}
	if an := lookupNode(node, "authority"); an != nil {
		p.Authority = an.String()
		if n := lookupNode(an, "host"); n != nil {
			p.Host = n.String()
		}
		if n := lookupNode(an, "port"); n != nil {
			p.Port = n.String()
		}
	}
	if n := lookupNode(node, "path-and-query"); n != nil {
		p.PathAndQuery = n.String()
	}
	return p
}
