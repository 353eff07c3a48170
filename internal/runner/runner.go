// Package runner drives one scrape: fetch, extract, assemble, save, and the
// optional image download and table output.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"shoplist-csv/internal/assembler"
	"shoplist-csv/internal/config"
	"shoplist-csv/internal/crawler"
	"shoplist-csv/internal/ioformats"
	"shoplist-csv/internal/models"
	"shoplist-csv/internal/parser"
	"shoplist-csv/internal/render"
	"shoplist-csv/pkg/logger"
)

// Fetcher is the network side of a run.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (models.Document, error)
	Download(ctx context.Context, dir, rawURL string) (string, int64, error)
}

type Runner struct {
	client Fetcher
	parser *parser.Parser
	asm    *assembler.Assembler
	log    *logger.Logger
	out    io.Writer
	now    func() time.Time
}

// New builds a Runner. Tables are written to out.
func New(client Fetcher, log *logger.Logger, out io.Writer) *Runner {
	return &Runner{
		client: client,
		parser: parser.New(),
		asm:    assembler.New(),
		log:    log,
		out:    out,
		now:    time.Now,
	}
}

// Result describes a completed run.
type Result struct {
	Title  string
	Path   string
	Items  []models.Item
	Images int
}

// Scrape fetches and parses one list page without writing anything.
func (r *Runner) Scrape(ctx context.Context, rawURL string) (models.ListResult, error) {
	doc, err := r.client.Fetch(ctx, rawURL)
	if err != nil {
		return models.ListResult{}, err
	}
	page, err := r.parser.Extract(strings.NewReader(doc.Body), doc.ContentType)
	if err != nil {
		return models.ListResult{}, err
	}
	page.SourceURL = doc.URL

	al := r.asm.Check(page.Fields)
	if !al.Aligned() {
		r.log.Warnf("field counts differ, keeping %d items: %s", al.Items(), al)
	}
	return models.ListResult{
		SourceURL: page.SourceURL,
		Title:     page.Title,
		Items:     r.asm.Assemble(page.Fields),
	}, nil
}

// Run performs a full CLI invocation. Nothing is written unless the page
// was fetched and parsed.
func (r *Runner) Run(ctx context.Context, opts config.Options) (Result, error) {
	if err := ioformats.EnsureDir(opts.Dst); err != nil {
		return Result{}, err
	}

	list, err := r.Scrape(ctx, opts.URL)
	if err != nil {
		return Result{}, err
	}

	path, err := ioformats.SaveCSV(opts.Dst, opts.CSV, list.Title, list.Items, r.now())
	if err != nil {
		return Result{}, fmt.Errorf("write csv: %w", err)
	}
	r.log.Infof("saved %d items to %s", len(list.Items), path)
	res := Result{Title: list.Title, Path: path, Items: list.Items}

	if opts.Images && len(list.Items) > 0 {
		n, err := r.saveImages(ctx, filepath.Join(opts.Dst, ioformats.SafeName(list.Title)), list.Items)
		res.Images = n
		if err != nil {
			return res, err
		}
	}

	if opts.Table {
		render.Render(r.out, list.Items, render.Options{Styled: opts.Style != "", Style: opts.Style})
	}
	return res, nil
}

// saveImages downloads every item image into dir. A failed image is logged
// and skipped; only a missing directory or cancellation stops the loop.
func (r *Runner) saveImages(ctx context.Context, dir string, items []models.Item) (int, error) {
	if err := ioformats.EnsureDir(dir); err != nil {
		return 0, err
	}
	saved := 0
	for _, it := range items {
		if it.Image == "" {
			continue
		}
		if _, _, err := r.client.Download(ctx, dir, it.Image); err != nil {
			if ctx.Err() != nil {
				return saved, ctx.Err()
			}
			r.log.Warnf("image %s: %v", it.Image, err)
			continue
		}
		saved++
	}
	return saved, nil
}

// Outcome is the class of a finished run.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeNoData
	OutcomeCancelled
	OutcomeTransport
	OutcomeFilesystem
	OutcomeUnexpected
)

// Classify sorts a Run error into an Outcome.
func Classify(err error) Outcome {
	var (
		te *crawler.TransportError
		de *ioformats.DirError
	)
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, context.Canceled):
		return OutcomeCancelled
	case errors.Is(err, parser.ErrNoTitle):
		return OutcomeNoData
	case errors.As(err, &te):
		return OutcomeTransport
	case errors.As(err, &de):
		return OutcomeFilesystem
	default:
		return OutcomeUnexpected
	}
}

// ExitCode is the process status for o. A page without a list and an
// interrupted run both end cleanly.
func (o Outcome) ExitCode() int {
	switch o {
	case OutcomeOK, OutcomeNoData, OutcomeCancelled:
		return 0
	default:
		return 1
	}
}
