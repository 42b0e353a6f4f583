// Package rfc3986 contains ABNF operators of the generic URI syntax (RFC 3986)
// shaped for hierarchical URIs and their schemeless forms.
//
// Rules differ from RFC 3986 in a few places:
//   - top level rule "uri-value" accepts absolute form (scheme "://" authority ...),
//     origin form ("/" path), asterisk form ("*") and authority form (host[:port]);
//   - "fragment" tolerates additional "#" characters;
//   - "IP-literal" checks only the character set of IPv6 addresses;
//   - character runs are matched greedily and yield a single node per run.
package rfc3986

import (
	"sync"

	"github.com/ghettovoice/abnf"
)

// Opset is a set of RFC 3986 operators.
type Opset struct {
	Scheme      abnf.Operator
	Userinfo    abnf.Operator
	IPLiteral   abnf.Operator
	IPvFuture   abnf.Operator
	RegName     abnf.Operator
	Host        abnf.Operator
	Port        abnf.Operator
	Authority   abnf.Operator
	PathAbempty abnf.Operator
	PathAbs     abnf.Operator
	Query       abnf.Operator
	Fragment    abnf.Operator

	AbsoluteForm  abnf.Operator
	OriginForm    abnf.Operator
	AsteriskForm  abnf.Operator
	AuthorityForm abnf.Operator
	URIValue      abnf.Operator
}

var (
	opset     *Opset
	opsetOnce sync.Once
)

// Operators returns the shared operator set.
func Operators() *Opset {
	opsetOnce.Do(func() { opset = newOpset() })
	return opset
}

const (
	alphaChars      = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	digitChars      = "0123456789"
	hexdigChars     = digitChars + "ABCDEFabcdef"
	unreservedChars = alphaChars + digitChars + "-._~"
	subDelimsChars  = "!$&'()*+,;="
	pcharChars      = unreservedChars + subDelimsChars + ":@"
)

type charset [256]bool

func newCharset(chars string) *charset {
	cs := new(charset)
	for i := range len(chars) {
		cs[chars[i]] = true
	}
	return cs
}

var (
	alphaSet     = newCharset(alphaChars)
	schemeSet    = newCharset(alphaChars + digitChars + "+-.")
	hexdigSet    = newCharset(hexdigChars)
	ipv6Set      = newCharset(hexdigChars + ":.")
	ipvFutureSet = newCharset(unreservedChars + subDelimsChars + ":")
	userinfoSet  = newCharset(unreservedChars + subDelimsChars + ":")
	regNameSet   = newCharset(unreservedChars + subDelimsChars)
	digitSet     = newCharset(digitChars)
	pathSet      = newCharset(pcharChars + "/")
	querySet     = newCharset(pcharChars + "/?")
	fragmentSet  = newCharset(pcharChars + "/?#")
)

func isHexdig(c byte) bool { return hexdigSet[c] }

// scan returns the end of the longest run starting at pos that consists of
// bytes from cs and, if pct is set, of "%" HEXDIG HEXDIG triplets.
func scan(in []byte, pos int, cs *charset, pct bool) int {
	for pos < len(in) {
		switch c := in[pos]; {
		case cs[c]:
			pos++
		case pct && c == '%' && pos+2 < len(in) && isHexdig(in[pos+1]) && isHexdig(in[pos+2]):
			pos += 3
		default:
			return pos
		}
	}
	return pos
}

// run matches the longest run of the character class, at least minLen bytes.
// It yields a single node, so it only fits where the next rule can not start
// with a byte of the class.
func run(key string, minLen int, cs *charset, pct bool) abnf.Operator {
	return func(in []byte, pos uint, ns *abnf.Nodes) error {
		end := scan(in, int(pos), cs, pct)
		if end-int(pos) < minLen {
			return abnf.ErrNotMatched
		}
		ns.Append(&abnf.Node{Key: key, Pos: pos, Value: in[pos:end]})
		return nil
	}
}

func lit(s string) abnf.Operator { return abnf.Literal(`"`+s+`"`, []byte(s)) }

func newOpset() *Opset {
	o := new(Opset)

	// scheme = ALPHA *( ALPHA / DIGIT / "+" / "-" / "." )
	o.Scheme = abnf.Concat("scheme",
		run("ALPHA", 1, alphaSet, false),
		run("*( ALPHA / DIGIT / \"+\" / \"-\" / \".\" )", 0, schemeSet, false),
	)

	// userinfo = *( unreserved / pct-encoded / sub-delims / ":" )
	o.Userinfo = run("userinfo", 0, userinfoSet, true)

	// IPvFuture = "v" 1*HEXDIG "." 1*( unreserved / sub-delims / ":" )
	o.IPvFuture = abnf.Concat("IPvFuture",
		lit("v"),
		run("1*HEXDIG", 1, hexdigSet, false),
		lit("."),
		run("1*( unreserved / sub-delims / \":\" )", 1, ipvFutureSet, false),
	)
	// IP-literal = "[" ( IPv6address / IPvFuture ) "]"
	o.IPLiteral = abnf.Concat("IP-literal",
		lit("["),
		abnf.Alt("IPv6address / IPvFuture", run("IPv6address", 1, ipv6Set, false), o.IPvFuture),
		lit("]"),
	)
	// reg-name = *( unreserved / pct-encoded / sub-delims )
	// IPv4address is a subset of reg-name, so it is not matched separately.
	o.RegName = run("reg-name", 0, regNameSet, true)
	// host = IP-literal / reg-name
	o.Host = abnf.Alt("host", o.IPLiteral, o.RegName)
	// port = *DIGIT
	o.Port = run("port", 0, digitSet, false)
	// authority = [ userinfo "@" ] host [ ":" port ]
	o.Authority = abnf.Concat("authority",
		abnf.Optional("[ userinfo \"@\" ]", abnf.Concat("userinfo \"@\"", o.Userinfo, lit("@"))),
		o.Host,
		abnf.Optional("[ \":\" port ]", abnf.Concat("\":\" port", lit(":"), o.Port)),
	)

	// path-abempty = *( "/" segment )
	o.PathAbempty = func(in []byte, pos uint, ns *abnf.Nodes) error {
		end := int(pos)
		if end < len(in) && in[end] == '/' {
			end = scan(in, end, pathSet, true)
		}
		ns.Append(&abnf.Node{Key: "path-abempty", Pos: pos, Value: in[pos:end]})
		return nil
	}
	// path-absolute = "/" [ segment-nz *( "/" segment ) ]
	o.PathAbs = func(in []byte, pos uint, ns *abnf.Nodes) error {
		p := int(pos)
		if p >= len(in) || in[p] != '/' {
			return abnf.ErrNotMatched
		}
		end := p + 1
		if end == len(in) || in[end] != '/' {
			end = scan(in, end, pathSet, true)
		}
		ns.Append(&abnf.Node{Key: "path-absolute", Pos: pos, Value: in[pos:end]})
		return nil
	}

	// query = *( pchar / "/" / "?" )
	o.Query = run("query", 0, querySet, true)
	// fragment = *( pchar / "/" / "?" / "#" )
	o.Fragment = run("fragment", 0, fragmentSet, true)

	optQuery := abnf.Optional("[ \"?\" query ]", abnf.Concat("\"?\" query", lit("?"), o.Query))
	optFragment := abnf.Optional("[ \"#\" fragment ]", abnf.Concat("\"#\" fragment", lit("#"), o.Fragment))

	// absolute-form = scheme "://" authority path-abempty [ "?" query ] [ "#" fragment ]
	o.AbsoluteForm = abnf.Concat("absolute-form",
		o.Scheme,
		lit("://"),
		o.Authority,
		abnf.Concat("path-and-query", o.PathAbempty, optQuery),
		optFragment,
	)
	// origin-form = path-absolute [ "?" query ] [ "#" fragment ]
	o.OriginForm = abnf.Concat("origin-form",
		abnf.Concat("path-and-query", o.PathAbs, optQuery),
		optFragment,
	)
	// asterisk-form = "*"
	o.AsteriskForm = abnf.Concat("asterisk-form", abnf.Concat("path-and-query", lit("*")))
	// authority-form = [ userinfo "@" ] host [ ":" port ], host is not empty
	o.AuthorityForm = abnf.Concat("authority-form",
		abnf.Concat("authority",
			abnf.Optional("[ userinfo \"@\" ]", abnf.Concat("userinfo \"@\"", o.Userinfo, lit("@"))),
			abnf.Alt("host", o.IPLiteral, run("reg-name", 1, regNameSet, true)),
			abnf.Optional("[ \":\" port ]", abnf.Concat("\":\" port", lit(":"), o.Port)),
		),
	)
	// uri-value = absolute-form / origin-form / asterisk-form / authority-form
	// The first matching form wins: "*" is an asterisk form, not a host.
	o.URIValue = abnf.AltFirst("uri-value", o.AbsoluteForm, o.OriginForm, o.AsteriskForm, o.AuthorityForm)

	return o
}

// Ruleset runs operators from the start of the input.
type Ruleset struct {
	ops *Opset
}

// Rules returns the shared rule set.
func Rules() Ruleset { return Ruleset{Operators()} }

// URIValue matches rule "uri-value".
func (r Ruleset) URIValue(s []byte, ns *abnf.Nodes) error {
	return r.ops.URIValue(s, 0, ns) //errtrace:skip
}

// Host matches rule "host".
func (r Ruleset) Host(s []byte, ns *abnf.Nodes) error {
	return r.ops.Host(s, 0, ns) //errtrace:skip
}

// Scheme matches rule "scheme".
func (r Ruleset) Scheme(s []byte, ns *abnf.Nodes) error {
	return r.ops.Scheme(s, 0, ns) //errtrace:skip
}
