package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"braces.dev/errtrace"
	"github.com/urfave/cli/v3"

	"github.com/ghettovoice/gouri/internal/errorutil"
	"github.com/ghettovoice/gouri/internal/grammar"
	"github.com/ghettovoice/gouri/internal/log"
	"github.com/ghettovoice/gouri/uri"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func newCommand(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "uriinfo",
		Usage:     "parse a URI, change its components and print them",
		ArgsUsage: "<uri>",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "scheme", Usage: "replace the scheme, empty value removes it"},
			&cli.StringFlag{Name: "user", Usage: "replace the user info, empty value removes it"},
			&cli.StringFlag{Name: "password", Usage: "set the password of the user info"},
			&cli.StringFlag{Name: "host", Usage: "replace the host"},
			&cli.IntFlag{Name: "port", Usage: "set the explicit port (0-65535)"},
			&cli.BoolFlag{Name: "no-port", Usage: "remove the explicit port"},
			&cli.StringFlag{Name: "path", Usage: "replace the path"},
			&cli.StringFlag{Name: "query", Usage: "replace the query, empty value removes it"},
			&cli.StringFlag{Name: "fragment", Usage: "replace the fragment, empty value removes it"},
			&cli.StringFlag{
				Name:  "format",
				Usage: "output format: text or json",
				Value: formatText,
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level: debug, info, warn or error",
				Value:   "warn",
				Sources: cli.EnvVars("URIINFO_LOG_LEVEL"),
			},
			&cli.BoolFlag{
				Name:    "dev",
				Usage:   "use the developer log handler",
				Sources: cli.EnvVars("URIINFO_DEV"),
			},
		},
		OnUsageError: func(_ context.Context, _ *cli.Command, err error, _ bool) error {
			return errtrace.Wrap(invalidArgument(err))
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return errtrace.Wrap(run(ctx, cmd, stdout, stderr))
		},
	}
}

func run(ctx context.Context, cmd *cli.Command, stdout, stderr io.Writer) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cmd.String("log-level"))); err != nil {
		return errtrace.Wrap(invalidArgument(err))
	}
	logger := log.New(stderr, level, cmd.Bool("dev"))

	format := cmd.String("format")
	if format != formatText && format != formatJSON {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("unsupported format %q", format))
	}
	if cmd.NArg() != 1 {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("expected exactly one URI argument, got %d", cmd.NArg()))
	}

	input := cmd.Args().First()
	u, err := uri.Parse(input)
	if err != nil {
		logger.DebugContext(ctx, "failed to parse URI", "error", err)
		return errtrace.Wrap(invalidArgument(err))
	}
	logger.DebugContext(ctx, "URI parsed", "uri", u)

	u, err = applyFlags(ctx, cmd, u, logger)
	if err != nil {
		return errtrace.Wrap(err)
	}

	inf := newInfo(u)
	if format == formatJSON {
		return errtrace.Wrap(writeJSON(stdout, inf))
	}
	return errtrace.Wrap(writeText(stdout, inf))
}

// applyFlags applies mutators in a fixed order:
// scheme, user info, host, port, path, query, fragment.
func applyFlags(ctx context.Context, cmd *cli.Command, u uri.URI, logger *slog.Logger) (uri.URI, error) {
	applied := func(flag string) {
		logger.DebugContext(ctx, "URI changed", "flag", flag, "uri", u)
	}

	if cmd.IsSet("scheme") {
		scheme := cmd.String("scheme")
		if scheme != "" && !grammar.IsScheme(scheme) {
			return uri.URI{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid scheme %q", scheme))
		}
		u = u.WithScheme(scheme)
		applied("scheme")
	}
	switch {
	case cmd.IsSet("password"):
		u = u.WithUserPassword(cmd.String("user"), cmd.String("password"))
		applied("password")
	case cmd.IsSet("user"):
		u = u.WithUserInfo(cmd.String("user"))
		applied("user")
	}
	if cmd.IsSet("host") {
		u = u.WithHost(cmd.String("host"))
		applied("host")
	}
	switch {
	case cmd.IsSet("port") && cmd.Bool("no-port"):
		return uri.URI{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("flags --port and --no-port are mutually exclusive"))
	case cmd.IsSet("port"):
		var err error
		if u, err = u.WithPort(int(cmd.Int("port"))); err != nil {
			return uri.URI{}, errtrace.Wrap(invalidArgument(err))
		}
		applied("port")
	case cmd.Bool("no-port"):
		u = u.WithoutPort()
		applied("no-port")
	}
	if cmd.IsSet("path") {
		u = u.WithPath(cmd.String("path"))
		applied("path")
	}
	if cmd.IsSet("query") {
		u = u.WithQuery(cmd.String("query"))
		applied("query")
	}
	if cmd.IsSet("fragment") {
		u = u.WithFragment(cmd.String("fragment"))
		applied("fragment")
	}
	return u, nil
}

// invalidArgument prefixes err with [errorutil.ErrInvalidArgument]
// even if err already matches it.
func invalidArgument(err error) error {
	return fmt.Errorf("%w: %w", errorutil.ErrInvalidArgument, err) //errtrace:skip
}
