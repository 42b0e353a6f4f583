package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"braces.dev/errtrace"
	jsoniter "github.com/json-iterator/go"
	"github.com/miekg/dns"
	"golang.org/x/net/idna"

	"github.com/ghettovoice/gouri/uri"
)

const (
	hostTypeIP      = "ip"
	hostTypeDomain  = "domain"
	hostTypeRegName = "reg-name"
)

type info struct {
	Scheme    string  `json:"scheme"`
	Authority string  `json:"authority"`
	UserInfo  string  `json:"user_info"`
	Host      string  `json:"host"`
	HostType  string  `json:"host_type"`
	HostASCII string  `json:"host_ascii,omitempty"`
	Port      *uint16 `json:"port"`
	Path      string  `json:"path"`
	Query     string  `json:"query"`
	Fragment  string  `json:"fragment"`
	URI       string  `json:"uri"`
}

func newInfo(u uri.URI) info {
	inf := info{
		Scheme:    u.Scheme(),
		Authority: u.Authority(),
		UserInfo:  u.UserInfo(),
		Host:      u.Host(),
		HostType:  hostType(u.Addr()),
		Path:      u.Path(),
		Query:     u.Query(),
		Fragment:  u.Fragment(),
		URI:       u.String(),
	}
	if port, ok := u.Port(); ok {
		inf.Port = &port
	}
	if inf.HostType == hostTypeDomain || inf.HostType == hostTypeRegName {
		inf.HostASCII = hostASCII(inf.Host)
	}
	return inf
}

func hostType(addr uri.Addr) string {
	host := addr.Host()
	switch {
	case host == "":
		return ""
	case addr.IP() != nil:
		return hostTypeIP
	case strings.HasPrefix(host, "["):
		return hostTypeRegName
	}
	if _, ok := dns.IsDomainName(host); ok {
		return hostTypeDomain
	}
	return hostTypeRegName
}

// hostASCII returns the IDNA ASCII form of host, or an empty string
// if it does not differ from host apart from letter case.
func hostASCII(host string) string {
	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil || strings.EqualFold(ascii, host) {
		return ""
	}
	return ascii
}

func writeText(w io.Writer, inf info) error {
	var port string
	if inf.Port != nil {
		port = strconv.Itoa(int(*inf.Port))
	}

	lines := [][2]string{
		{"scheme", inf.Scheme},
		{"authority", inf.Authority},
		{"user_info", inf.UserInfo},
		{"host", inf.Host},
		{"host_type", inf.HostType},
		{"host_ascii", inf.HostASCII},
		{"port", port},
		{"path", inf.Path},
		{"query", inf.Query},
		{"fragment", inf.Fragment},
		{"uri", inf.URI},
	}
	for _, l := range lines {
		if l[0] == "host_ascii" && l[1] == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "%-10s %s\n", l[0]+":", l[1]); err != nil {
			return errtrace.Wrap(err)
		}
	}
	return nil
}

func writeJSON(w io.Writer, inf info) error {
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errtrace.Wrap(enc.Encode(inf))
}
