package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/product-extractor/internal/engine"
	"github.com/donaldgifford/product-extractor/pkg/extract"
	"github.com/donaldgifford/product-extractor/pkg/logger"
	domain "github.com/donaldgifford/product-extractor/pkg/types"
)

const stdinArg = "-"

type extractOptions struct {
	pageURL     string
	remote      bool
	concurrency int
	logLevel    string
}

func extractCmd() *cobra.Command {
	opts := &extractOptions{}

	c := &cobra.Command{
		Use:   "extract <file|-> [file...]",
		Short: "Extract product metadata from saved HTML",
		Long: "Extracts product metadata from one or more HTML files, or from stdin with \"-\".\n" +
			"With several files, --url is the base that each file name is resolved against.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, opts, args)
		},
	}

	c.Flags().StringVar(&opts.pageURL, "url", "", "page URL the HTML was loaded from (required)")
	c.Flags().BoolVar(&opts.remote, "remote", false, "send documents to the API server instead of extracting locally")
	c.Flags().IntVar(&opts.concurrency, "concurrency", 4, "documents extracted in parallel")
	c.Flags().StringVar(&opts.logLevel, "log-level", "warn", "log level for local extraction")
	cobra.CheckErr(c.MarkFlagRequired("url"))

	return c
}

func runExtract(cmd *cobra.Command, opts *extractOptions, args []string) error {
	pages, err := buildPages(cmd, opts.pageURL, args)
	if err != nil {
		return err
	}

	var rows []extractionRow
	if opts.remote {
		rows = extractRemote(cmd, pages)
	} else {
		log := logger.NewWithWriter(cmd.ErrOrStderr(), opts.logLevel, "console")
		eng := engine.NewEngine(engine.WithLogger(log))

		results, err := eng.ExtractAll(cmd.Context(), pages, opts.concurrency)
		if err != nil {
			return err
		}
		rows = make([]extractionRow, len(results))
		for i, r := range results {
			rows[i] = toRow(r.Page.Name, r.Product, r.Err)
		}
	}

	out := cmd.OutOrStdout()
	switch {
	case jsonOutput() && len(rows) == 1 && rows[0].Product != nil:
		err = outputJSON(out, rows[0].Product)
	case jsonOutput():
		err = outputJSON(out, rows)
	case len(rows) == 1 && rows[0].Product != nil:
		err = printProductDetail(out, rows[0].Product)
	default:
		err = printExtractionTable(out, rows)
	}
	if err != nil {
		return err
	}

	for _, r := range rows {
		if r.Error != "" {
			return fmt.Errorf("%s: %s", r.File, r.Error)
		}
	}
	return nil
}

func buildPages(cmd *cobra.Command, pageURL string, args []string) ([]engine.Page, error) {
	pages := make([]engine.Page, 0, len(args))
	for _, arg := range args {
		u := pageURL
		if len(args) > 1 && arg != stdinArg {
			resolved, ok := extract.ResolveURL(filepath.Base(arg), pageURL)
			if !ok {
				return nil, fmt.Errorf("resolving %s against %q", arg, pageURL)
			}
			u = resolved
		}

		pages = append(pages, engine.Page{
			Name: arg,
			URL:  u,
			Open: opener(cmd, arg),
		})
	}
	return pages, nil
}

func opener(cmd *cobra.Command, arg string) func() (io.ReadCloser, error) {
	if arg == stdinArg {
		return func() (io.ReadCloser, error) {
			return io.NopCloser(cmd.InOrStdin()), nil
		}
	}
	return func() (io.ReadCloser, error) {
		return os.Open(arg) //nolint:gosec // user-supplied path from CLI args
	}
}

func extractRemote(cmd *cobra.Command, pages []engine.Page) []extractionRow {
	c := newClient()
	rows := make([]extractionRow, 0, len(pages))

	for _, page := range pages {
		html, err := readPage(page)
		if err != nil {
			rows = append(rows, extractionRow{File: page.Name, Error: err.Error()})
			continue
		}

		p, err := c.PageInfo(cmd.Context(), page.URL, html)
		if err != nil {
			rows = append(rows, extractionRow{File: page.Name, Error: err.Error()})
			continue
		}
		rows = append(rows, extractionRow{File: page.Name, Product: p})
	}
	return rows
}

func readPage(page engine.Page) (string, error) {
	rc, err := page.Open()
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", page.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", page.Name, err)
	}
	return string(data), nil
}

func toRow(name string, p domain.ExtractedProduct, err error) extractionRow {
	if err != nil {
		return extractionRow{File: name, Error: err.Error()}
	}
	return extractionRow{File: name, Product: &p}
}
