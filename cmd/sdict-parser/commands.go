package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{Mode: "w"}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		{
			Name:        "o",
			Aliases:     []string{"output"},
			Description: "output format: native/foam/json/xml",
			Type:        cli.NamedFuncOpt(cfg.fmtOpt(), "(format)"),
		},
		{
			Name:        "s",
			Aliases:     []string{"scope"},
			Description: "reduce the result to a scope, keys separated by spaces",
			Type:        cli.NamedFuncOpt(cfg.scopeOpt(), "(keys)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "sdict-parser").
		WithSynopsis("sdict-parser [opts] file [files]").
		WithDescription("sdict-parser reads dictionary files, resolves their includes,\nreferences and expressions, and writes the parsed result back out\nin native, OpenFOAM, JSON or XML format.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return run(cfg, cc, args)
		})
}
