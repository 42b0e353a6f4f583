// Package log provides logging utilities.
package log

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"

	"github.com/ghettovoice/gouri/internal/types"
	"github.com/ghettovoice/gouri/uri"
)

var newHandler = slogformatter.NewFormatterHandler(
	slogformatter.ErrorFormatter("error"),
	slogformatter.FormatByType(func(u uri.URI) slog.Value {
		user, _, _ := strings.Cut(u.UserInfo(), ":")
		attrs := []slog.Attr{
			slog.String("value", u.Render(&uri.RenderOptions{RedactPassword: true})),
			slog.String("scheme", u.Scheme()),
			slog.String("user", user),
			slog.String("host", u.Host()),
		}
		if port, ok := u.Port(); ok {
			attrs = append(attrs, slog.Int("port", int(port)))
		}
		attrs = append(attrs,
			slog.String("path", u.Path()),
			slog.String("query", u.Query()),
			slog.String("fragment", u.Fragment()),
		)
		return slog.GroupValue(attrs...)
	}),
	slogformatter.FormatByType(func(addr types.Addr) slog.Value {
		attrs := []slog.Attr{slog.String("host", addr.Host())}
		if port, ok := addr.Port(); ok {
			attrs = append(attrs, slog.Int("port", int(port)))
		}
		return slog.GroupValue(attrs...)
	}),
)

// New returns a logger writing to w.
// The dev flag selects the developer handler instead of the console one.
func New(w io.Writer, level slog.Leveler, dev bool) *slog.Logger {
	if dev {
		return slog.New(newHandler(
			devslog.NewHandler(w, &devslog.Options{
				HandlerOptions: &slog.HandlerOptions{
					AddSource: true,
					Level:     level,
				},
				SortKeys:   true,
				TimeFormat: time.RFC3339Nano,
			}),
		))
	}
	return slog.New(newHandler(
		console.NewHandler(w, &console.HandlerOptions{
			AddSource:  true,
			Level:      level,
			TimeFormat: time.RFC3339Nano,
		}),
	))
}
