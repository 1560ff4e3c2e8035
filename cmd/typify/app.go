package main

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tanema/typify/src/conf"
	"github.com/tanema/typify/src/docs"
	"github.com/tanema/typify/src/document"
	"github.com/tanema/typify/src/linter"
	"github.com/tanema/typify/src/parse"
	"github.com/tanema/typify/src/typecache"
	"github.com/tanema/typify/src/typify"
)

type (
	// app holds everything that is shared between passes.
	app struct {
		cfg      *conf.Config
		logger   *zap.Logger
		registry *docs.Registry
		memo     *parse.Memo
		hints    typify.HintSource
		stderr   io.Writer
	}
	fixOptions struct {
		dryRun bool
		backup bool
	}
	fixResult struct {
		path   string
		edits  int
		before string
		after  string
	}
	writerSink struct {
		w io.Writer
	}
)

var (
	removedLine = color.New(color.FgRed)
	addedLine   = color.New(color.FgGreen)
	fileHeader  = color.New(color.Bold)
)

func newApp(cfg *conf.Config, logger *zap.Logger, lint bool, stderr io.Writer) (*app, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	registry, err := docs.Builtin()
	if err != nil {
		return nil, err
	}
	for _, path := range cfg.Docs.Files {
		if err := registry.LoadFile(path); err != nil {
			return nil, fmt.Errorf("load docs: %w", err)
		}
	}
	memo, err := parse.NewMemo(cfg.Typify.MemoSize)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: logger, registry: registry, memo: memo, stderr: stderr}
	if lint && cfg.Linter.Enabled {
		timeout, err := cfg.LinterTimeout()
		if err != nil {
			return nil, err
		}
		a.hints = &linter.Client{
			URL:       cfg.Linter.URL,
			UserAgent: cfg.Linter.UserAgent,
			Timeout:   timeout,
			Logger:    logger.Named("linter"),
		}
	}
	return a, nil
}

func (a *app) builder() *typecache.Builder {
	return &typecache.Builder{Memo: a.memo, Logger: a.logger.Named("typecache")}
}

func (a *app) typifier(doc typify.Document) *typify.Typifier {
	return &typify.Typifier{
		Editor:   document.Active{Doc: doc},
		Hints:    a.hints,
		Registry: a.registry,
		Builder:  a.builder(),
		Sink:     writerSink{w: a.stderr},
		Logger:   a.logger,
		Options:  typify.Options{Disallowed: a.cfg.Typify.Disallowed},
	}
}

func (a *app) fixFile(ctx context.Context, path string, opts fixOptions) (fixResult, error) {
	doc := document.Open(path)
	doc.DryRun = opts.dryRun
	doc.Backup = opts.backup || a.cfg.Typify.Backup
	if a.cfg.Typify.BackupFormat != "" {
		doc.BackupFormat = a.cfg.Typify.BackupFormat
	}
	before, err := doc.Text()
	if err != nil {
		return fixResult{path: path}, fmt.Errorf("%s: %w", path, err)
	}
	count, err := a.typifier(doc).Typify(ctx)
	if err != nil {
		return fixResult{path: path}, err
	}
	after := before
	if count > 0 {
		if opts.dryRun {
			after = doc.Preview
		} else {
			after, _ = doc.Text()
		}
	}
	return fixResult{path: path, edits: count, before: before, after: after}, nil
}

// fixFiles typifies every path concurrently. Each file gets its own pass and
// table, only the parse memo is shared.
func (a *app) fixFiles(ctx context.Context, paths []string, opts fixOptions) ([]fixResult, error) {
	results := make([]fixResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			res, err := a.fixFile(gctx, path, opts)
			results[i] = res
			return err
		})
	}
	return results, g.Wait()
}

// writePreview prints the lines a fix changes. Edits only insert text in
// front of declarations so the line structure of before and after match.
func writePreview(w io.Writer, res fixResult) {
	if res.edits == 0 {
		return
	}
	fileHeader.Fprintf(w, "%s (%d edits)\n", res.path, res.edits)
	before, after := strings.Split(res.before, "\n"), strings.Split(res.after, "\n")
	for i := 0; i < len(before) && i < len(after); i++ {
		if before[i] == after[i] {
			continue
		}
		removedLine.Fprintf(w, "%4d - %s\n", i+1, strings.TrimRight(before[i], "\r"))
		addedLine.Fprintf(w, "%4d + %s\n", i+1, strings.TrimRight(after[i], "\r"))
	}
}

func (sink writerSink) ShowError(msg string) {
	if sink.w != nil {
		removedLine.Fprintln(sink.w, msg)
	}
}
