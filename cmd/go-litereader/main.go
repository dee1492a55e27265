// Package main provides the CLI entry point for go-litereader, a SQLite file inspector.
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	litereader "github.com/wilhasse/go-litereader"
	"github.com/wilhasse/go-litereader/internal/logging"
)

// Globals are flags shared by every command.
type Globals struct {
	Format    string `name:"format" short:"f" enum:"text,json,summary" default:"text" help:"Output format: text, json, or summary"`
	LogLevel  string `name:"log-level" enum:"debug,info,warn,error" default:"warn" env:"LITEREADER_LOG_LEVEL" help:"Log level for diagnostics on stderr"`
	LogFormat string `name:"log-format" enum:"text,json" default:"text" env:"LITEREADER_LOG_FORMAT" help:"Log format for diagnostics on stderr"`
}

// CLI defines the command-line interface using Kong
type CLI struct {
	Globals

	Header HeaderCmd `cmd:"" help:"Decode the 100-byte database file header"`
	Page   PageCmd   `cmd:"" help:"Decode the b-tree header of one page"`
	Scan   ScanCmd   `cmd:"" help:"Decode every page of the file in order"`
	Varint VarintCmd `cmd:"" help:"Decode a varint given as hex bytes"`
}

// HeaderCmd prints the file header.
type HeaderCmd struct {
	File string `arg:"" help:"Database file (.xz is decompressed in memory)"`
}

func (c *HeaderCmd) Run(g *Globals, w io.Writer) error {
	pr, closeFn, err := openReader(c.File)
	if err != nil {
		return err
	}
	defer closeFn()

	h, err := pr.ReadFileHeader()
	if err != nil {
		return err
	}
	return printHeader(w, g.Format, h)
}

// PageCmd prints one page.
type PageCmd struct {
	File       string `arg:"" help:"Database file (.xz is decompressed in memory)"`
	Page       uint32 `name:"page" short:"p" default:"1" help:"Page number, starting at 1"`
	Cells      bool   `name:"cells" help:"Decode cell prefixes"`
	Freeblocks bool   `name:"freeblocks" help:"Walk the freeblock chain"`
}

func (c *PageCmd) Run(g *Globals, w io.Writer) error {
	pr, closeFn, err := openReader(c.File)
	if err != nil {
		return err
	}
	defer closeFn()

	p, err := pr.ReadPage(c.Page)
	if err != nil {
		return err
	}
	v := pageView{Page: p}
	if c.Cells {
		if v.Cells, err = p.Cells(); err != nil {
			logging.Warn("cell decode stopped early", "page", c.Page, "error", err)
			v.CellError = err.Error()
		}
	}
	if c.Freeblocks {
		if v.Freeblocks, err = p.Freeblocks(); err != nil {
			logging.Warn("freeblock chain is corrupt", "page", c.Page, "error", err)
			v.FreeblockError = err.Error()
		}
	}
	return printPage(w, g.Format, v)
}

// ScanCmd summarizes every page.
type ScanCmd struct {
	File string `arg:"" help:"Database file (.xz is decompressed in memory)"`
}

func (c *ScanCmd) Run(ctx context.Context, g *Globals, w io.Writer) error {
	pr, closeFn, err := openReader(c.File)
	if err != nil {
		return err
	}
	defer closeFn()

	res, err := litereader.Scan(ctx, pr)
	if err != nil {
		return err
	}
	return printScan(w, g.Format, res)
}

// VarintCmd decodes a varint.
type VarintCmd struct {
	Hex string `arg:"" help:"Bytes in hex, e.g. 813e or \"81 3e\""`
}

func (c *VarintCmd) Run(g *Globals, w io.Writer) error {
	raw, err := hex.DecodeString(strings.ReplaceAll(c.Hex, " ", ""))
	if err != nil {
		return fmt.Errorf("bad hex: %w", err)
	}
	v, n, err := litereader.ParseVarint(raw)
	if err != nil {
		return err
	}
	return printVarint(w, g.Format, v, n, len(raw))
}

func openReader(path string) (*litereader.PageReader, func(), error) {
	src, err := litereader.Open(path)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := src.Close(); err != nil {
			logging.Warn("close failed", "path", path, "error", err)
		}
	}
	return litereader.NewPageReader(src), closeFn, nil
}

func setupLogging(g *Globals) error {
	level, err := logging.ParseLevel(g.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(g.LogFormat)
	if err != nil {
		return err
	}
	logging.InitLogger(level, format)
	return nil
}

// run parses args and executes the selected command, writing results to w.
func run(ctx context.Context, args []string, w io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("go-litereader"),
		kong.Description("Inspect SQLite database files: header, b-tree pages and varints"),
		kong.UsageOnError(),
		kong.Writers(w, os.Stderr),
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	if err := setupLogging(&cli.Globals); err != nil {
		return err
	}
	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.BindTo(w, (*io.Writer)(nil))
	return kctx.Run(&cli.Globals)
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
