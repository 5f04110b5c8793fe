package main

import (
	"fmt"
	"io"
	"os"

	sdict "github.com/sdict-format/go-sdict"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

func run(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: no dictionary file given", cli.ErrUsage)
	}
	if cfg.Mode != "w" && cfg.Mode != "a" {
		return fmt.Errorf("%w: invalid mode %q", cli.ErrUsage, cfg.Mode)
	}
	setupLog(cfg)
	for _, file := range args {
		if err := parseFile(cfg, cc.Out, file); err != nil {
			return err
		}
	}
	return nil
}

func parseFile(cfg *MainConfig, w io.Writer, file string) error {
	if _, err := os.Stat(file); err != nil {
		return fmt.Errorf("dictionary %s not found: %w", file, err)
	}
	d, err := sdict.Read(file,
		sdict.WithIncludes(!cfg.IgnoreIncludes),
		sdict.WithComments(!cfg.IgnoreComments),
		sdict.WithOrder(cfg.Order),
		sdict.WithScope(cfg.Scope),
	)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", file, err)
	}
	target := sdict.TargetFileName(file, cfg.Scope, cfg.OutFormat)
	if err := sdict.Write(d, target, sdict.WithMode(cfg.Mode)); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	if !cfg.Quiet {
		fmt.Fprintf(w, "%s -> %s\n", file, highlight(w, target))
	}
	return nil
}

// highlight colors a path when the output goes to a terminal.
func highlight(w io.Writer, s string) string {
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return s
	}
	return color.GreenString(s)
}
