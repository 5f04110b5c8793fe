package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sdict-format/go-sdict/format"
	"github.com/sdict-format/go-sdict/ir"
	"github.com/sdict-format/go-sdict/parse"

	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	IgnoreIncludes bool   `cli:"name=I aliases=ignore-includes desc='do not merge included dictionaries'"`
	IgnoreComments bool   `cli:"name=C aliases=ignore-comments desc='drop comments while parsing'"`
	Order          bool   `cli:"name=order desc='sort the parsed dictionary by key'"`
	Mode           string `cli:"name=mode desc='output mode: w overwrites, a merges into an existing target'"`
	Quiet          bool   `cli:"name=q aliases=quiet desc='log errors only'"`
	Verbose        bool   `cli:"name=v aliases=verbose desc='log debug detail'"`

	OutFormat *format.Format
	Scope     []ir.Key

	Main *cli.Command
}

func (cfg *MainConfig) fmtOpt() cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		cfg.OutFormat = &f
		return f, nil
	})
}

func (cfg *MainConfig) scopeOpt() cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		for _, field := range strings.Fields(v) {
			key, err := parse.ParseKey(field)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
			}
			cfg.Scope = append(cfg.Scope, key)
		}
		return v, nil
	})
}

func (cfg *MainConfig) logLevel() slog.Level {
	switch {
	case cfg.Quiet:
		return slog.LevelError
	case cfg.Verbose:
		return slog.LevelDebug
	default:
		return slog.LevelWarn
	}
}

func setupLog(cfg *MainConfig) {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.logLevel(),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})))
}
