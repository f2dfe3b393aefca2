package driver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"apexdoc/internal/config"
	"apexdoc/internal/diag"
	"apexdoc/internal/plugin"
	"apexdoc/internal/source"
)

// ErrNoSourceFiles is returned when the given paths hold no Apex sources.
var ErrNoSourceFiles = errors.New("format: no source files found")

// FormatOptions configures a formatting run.
type FormatOptions struct {
	Check  bool
	Stdout bool
	// Diff fills FormatResult.Diff for changed files; implies no writes.
	Diff bool
	// Whole formats entire files with the host formatter instead of only
	// rewriting doc comments.
	Whole          bool
	Config         config.Options
	Excludes       []string
	Jobs           int
	MaxDiagnostics int
	Cache          *DiskCache
	// Version is mixed into disk cache keys.
	Version  string
	Progress ProgressSink
	OnPhase  PhaseObserver
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path        string
	Changed     bool
	Err         error
	Formatted   []byte
	Diff        string
	Comments    int
	Cached      bool
	Diagnostics []*diag.Diagnostic
	// Files resolves the spans of Diagnostics.
	Files *source.FileSet
}

// FormatPaths formats provided files or directories (recursively collecting
// .cls, .trigger and .apex files) in parallel. With Check, Diff or Stdout
// nothing on disk changes. Per-file failures land in FormatResult.Err; the
// returned error is reserved for collection failures and cancellation.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}

	end := phase(opts.OnPhase, "collect")
	files, err := CollectFiles(ctx, paths, opts.Excludes)
	end()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoSourceFiles
	}
	for _, f := range files {
		emit(opts.Progress, Event{File: f, Stage: StageRead, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	end = phase(opts.OnPhase, "format")
	defer end()

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]FormatResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = formatFile(gctx, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func formatFile(ctx context.Context, path string, opts FormatOptions) FormatResult {
	started := time.Now()
	result := FormatResult{Path: path}
	fail := func(stage Stage, err error) FormatResult {
		result.Err = err
		emit(opts.Progress, Event{File: path, Stage: stage, Status: StatusError, Err: err, Elapsed: time.Since(started)})
		return result
	}

	emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusWorking})
	data, err := os.ReadFile(path)
	if err != nil {
		return fail(StageRead, err)
	}
	fileSet := source.NewFileSet()
	sf := fileSet.Get(fileSet.Add(path, data, 0))
	result.Files = fileSet

	emit(opts.Progress, Event{File: path, Stage: StageComments, Status: StatusWorking})
	formatted, comments, cached, diags, err := formatContent(ctx, sf, opts)
	result.Diagnostics = diags
	if err != nil {
		return fail(StageComments, err)
	}
	result.Comments, result.Cached = comments, cached
	changed := !bytes.Equal(sf.Content, formatted)

	switch {
	case opts.Diff:
		result.Changed = changed
		if result.Diff, err = UnifiedDiff(path, sf.Content, formatted); err != nil {
			return fail(StageWrite, err)
		}
	case opts.Check:
		result.Changed = changed
	case opts.Stdout:
		result.Formatted = formatted
		result.Changed = changed
	case changed:
		emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusWorking})
		mode := os.FileMode(0o644)
		if info, statErr := os.Stat(path); statErr == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(path, formatted, mode.Perm()); err != nil {
			return fail(StageWrite, err)
		}
		result.Changed = true
	}
	emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusDone, Elapsed: time.Since(started)})
	return result
}

// formatContent consults the disk cache, then formats sf. Results that
// produced diagnostics are not cached so their warnings show every run.
func formatContent(ctx context.Context, sf *source.File, opts FormatOptions) ([]byte, int, bool, []*diag.Diagnostic, error) {
	key := cacheKey(sf.Hash, opts.Config, opts.Whole, opts.Version)
	var payload DiskPayload
	if ok, err := opts.Cache.Get(key, &payload); err == nil && ok {
		return payload.Formatted, payload.Comments, true, nil, nil
	}

	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = 256
	}
	bag := diag.NewBag(maxDiag)
	p, err := plugin.New(opts.Config, &diag.SyncReporter{Next: diag.BagReporter{Bag: bag}})
	if err != nil {
		return nil, 0, false, nil, err
	}

	var (
		formatted []byte
		comments  int
	)
	if opts.Whole {
		formatted, err = FormatWhole(ctx, p, sf)
	} else {
		formatted, comments, err = FormatComments(ctx, p, sf, bag)
	}
	bag.Sort()
	if err != nil {
		return nil, 0, false, bag.Items(), err
	}
	if bag.Len() == 0 {
		// кэш - best effort, ошибка записи не мешает форматированию
		_ = opts.Cache.Put(key, &DiskPayload{Path: sf.Path, Formatted: formatted, Comments: comments})
	}
	return formatted, comments, false, bag.Items(), nil
}
