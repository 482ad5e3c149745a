package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pugfmt/go-pug"
	"github.com/pugfmt/go-pug/ir"
	"github.com/pugfmt/go-pug/parse"
	"github.com/pugfmt/go-pug/source"

	"github.com/scott-cotton/cli"
)

const usageText = `===[ pug2html ]===

[USAGE] $ pug2html [options] {pug file}
[options]
  -h              shows this usage only
  -o (filepath)   writes the HTML to the given file
  -stdout         writes the HTML to standard output
  -dump           dumps the parsed line tree instead of translating
  -color (mode)   diagnostics color: auto, always, never
  -config (path)  reads project defaults from the given YAML file

Without -o or -stdout the HTML is written next to the input file with
the extension replaced by .html. Exit status is 0 on success, 1 for
usage, and 2 on any error.`

type MainConfig struct {
	H      bool `cli:"name=h desc='shows this usage only'"`
	Stdout bool `cli:"name=stdout desc='write HTML to standard output'"`
	Dump   bool `cli:"name=dump desc='dump the parsed line tree'"`

	Out    string
	Color  string
	Config string
	OutDir string

	Main *cli.Command
}

func MainCommand() *cli.Command {
	cfg := &MainConfig{Color: "auto"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts,
		&cli.Opt{
			Name:        "o",
			Description: "output file (default: sibling .html)",
			Type:        cli.NamedFuncOpt(stringOpt(&cfg.Out), "(filepath)"),
		},
		&cli.Opt{
			Name:        "color",
			Description: "diagnostics color: auto, always, never",
			Type:        cli.NamedFuncOpt(stringOpt(&cfg.Color), "(mode)"),
		},
		&cli.Opt{
			Name:        "config",
			Description: "project config file (default: pug2html.yaml next to the input)",
			Type:        cli.NamedFuncOpt(stringOpt(&cfg.Config), "(path)"),
		})
	return cli.NewCommandAt(&cfg.Main, "pug2html").
		WithSynopsis("pug2html [options] <file.pug>").
		WithDescription(usageText).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return run(cfg, cc, args)
		})
}

func stringOpt(p *string) cli.FuncOpt {
	return func(_ *cli.Context, v string) (any, error) {
		*p = v
		return v, nil
	}
}

func run(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.H {
		fmt.Fprintln(os.Stderr, usageText)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, usageText)
		fmt.Fprintln(os.Stderr, "No pug file is specified.")
		return cli.ExitCodeErr(2)
	}
	if len(args) > 1 {
		fmt.Fprintln(os.Stderr, usageText)
		fmt.Fprintln(os.Stderr, "Several pug files are specified.")
		return cli.ExitCodeErr(2)
	}
	path := args[0]
	proj, err := loadProject(cfg, path)
	if err != nil {
		return diag(cfg, err)
	}
	applyProject(cfg, proj)
	if cfg.Dump {
		return dumpTree(cfg, cc, path)
	}
	out, err := pug.File(path)
	if err != nil {
		return diag(cfg, err)
	}
	if cfg.Stdout {
		if _, err := io.WriteString(cc.Out, out); err != nil {
			return diag(cfg, &source.IOError{Path: "<stdout>", Err: err})
		}
		return nil
	}
	dst := htmlPath(cfg, path)
	if err := os.WriteFile(dst, []byte(out), 0644); err != nil {
		return diag(cfg, &source.IOError{Path: dst, Err: err})
	}
	return nil
}

func dumpTree(cfg *MainConfig, cc *cli.Context, path string) error {
	var loader source.OSLoader
	d, err := loader.Load(path)
	if err != nil {
		return diag(cfg, err)
	}
	root, err := parse.Parse(d, parse.WithFilename(path))
	if err != nil {
		return diag(cfg, err)
	}
	ir.Dump(cc.Out, root, 0)
	return nil
}

// htmlPath derives the destination: -o wins, then the project outDir,
// then a sibling with the extension replaced by .html.
func htmlPath(cfg *MainConfig, path string) string {
	if cfg.Out != "" {
		return cfg.Out
	}
	dst := strings.TrimSuffix(path, filepath.Ext(path)) + ".html"
	if cfg.OutDir != "" {
		dst = filepath.Join(cfg.OutDir, filepath.Base(dst))
	}
	return dst
}

// diag prints the single-line diagnostic for the error's category and
// carries exit status 2.
func diag(cfg *MainConfig, err error) error {
	var (
		ioErr  *source.IOError
		synErr *pug.SyntaxError
	)
	var msg string
	switch {
	case errors.As(err, &ioErr):
		msg = fmt.Sprintf("I/O error occurred. : %v [%s]", ioErr.Err, ioErr.Path)
	case errors.As(err, &synErr):
		msg = fmt.Sprintf("Syntax error found. : %v", synErr.Err)
	default:
		msg = fmt.Sprintf("Unexpected error occurred. : %v", err)
	}
	fmt.Fprintln(os.Stderr, colorize(cfg, msg))
	return cli.ExitCodeErr(2)
}
