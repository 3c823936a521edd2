// Command hdrval parses HTTP header field lines and prints them in canonical form.
//
// Usage:
//
//	hdrval [flags] [file ...]
//
// Each file (or the standard input) holds the header section of one message:
// "Name: value" lines, folded continuation lines starting with white space allowed.
// Repeated fields are merged in order before parsing, as comma-list headers require.
// The exit code is 1 if any header fails to parse or validate.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"braces.dev/errtrace"
	jsoniter "github.com/json-iterator/go"
	"github.com/mattn/go-isatty"

	"github.com/ghettovoice/httpval/header"
	"github.com/ghettovoice/httpval/internal/errorutil"
	"github.com/ghettovoice/httpval/internal/log"
	"github.com/ghettovoice/httpval/internal/types"
)

type config struct {
	json     bool
	validate bool
	dev      bool
	quiet    bool
	noColor  bool
}

func parseFlags(args []string, stderr io.Writer) (*config, []string, error) {
	var cfg config

	fs := flag.NewFlagSet("hdrval", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&cfg.json, "json", false, "print headers as JSON objects, one per line")
	fs.BoolVar(&cfg.validate, "validate", false, "check header semantics in addition to the grammar")
	fs.BoolVar(&cfg.dev, "dev", false, "use the developer log format")
	fs.BoolVar(&cfg.quiet, "q", false, "disable logging")
	fs.BoolVar(&cfg.noColor, "no-color", false, "disable colored log output (default when stderr is not a terminal)")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: hdrval [flags] [file ...]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, nil, errtrace.Wrap(err)
	}
	return &cfg, fs.Args(), nil
}

func newLogger(cfg *config, w io.Writer) *slog.Logger {
	noColor := cfg.noColor || !isTerminal(w)
	switch {
	case cfg.quiet:
		return log.Noop
	case cfg.dev:
		return log.NewDev(w, slog.LevelDebug, noColor)
	default:
		return log.NewConsole(w, slog.LevelInfo, noColor)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, files, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	logger := newLogger(cfg, stderr)
	p := &printer{cfg: cfg, out: stdout, enc: jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(stdout)}

	if len(files) == 0 {
		return p.process(logger.With("source", "stdin"), stdin)
	}

	code := 0
	for _, name := range files {
		l := logger.With("source", name)
		f, err := os.Open(name)
		if err != nil {
			l.Error("failed to open file", "error", err)
			code = 1
			continue
		}
		c := p.process(l, f)
		f.Close()
		if c > code {
			code = c
		}
	}
	return code
}

type printer struct {
	cfg *config
	out io.Writer
	enc *jsoniter.Encoder
}

type record struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Valid bool   `json:"valid"`
}

func (p *printer) process(logger *slog.Logger, r io.Reader) int {
	fields, err := readFields(r)
	if err != nil {
		logger.Error("failed to read header section", "error", err)
		return 1
	}

	code := 0
	for _, f := range fields {
		hdr, err := header.ParseValues(f.name, f.values...)
		if err != nil {
			logger.Warn("failed to parse header",
				"name", f.name,
				"values", f.values,
				"grammar", errorutil.IsGrammarErr(err),
				"error", err,
			)
			code = 1
			continue
		}
		logger.Debug("header parsed", "header", hdr, "fields", log.FmtValue(hdr, false))

		if p.cfg.validate {
			if v, ok := hdr.(types.Validatable); ok {
				if err := v.Validate(); err != nil {
					logger.Warn("invalid header", "header", hdr, "error", err)
					code = 1
				}
			}
		}

		if err := p.print(hdr); err != nil {
			logger.Error("failed to write header", "header", hdr, "error", err)
			return 1
		}
	}
	return code
}

func (p *printer) print(hdr header.Header) error {
	if p.cfg.json {
		return errtrace.Wrap(p.enc.Encode(record{
			Name:  string(hdr.CanonicName()),
			Value: hdr.RenderValue(),
			Valid: hdr.IsValid(),
		}))
	}

	if _, err := hdr.RenderTo(p.out); err != nil {
		return errtrace.Wrap(err)
	}
	_, err := io.WriteString(p.out, "\n")
	return errtrace.Wrap(err)
}
