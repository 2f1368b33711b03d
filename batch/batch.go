// Package batch abstracts every matching Java file below a directory in
// parallel and groups files whose abstractions are identical.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/dhamidi/src2abs/abstraction"
	"github.com/dhamidi/src2abs/abstractor"
	"github.com/gobwas/glob"
	"github.com/tliron/commonlog"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"
)

// OutputExt is appended to a file's relative path to name its abstraction.
const OutputExt = ".abs"

var log = commonlog.GetLogger("src2abs.batch")

type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

type Request struct {
	Root    string
	OutDir  string // no files are written when empty
	Include []string
	Exclude []string
	Workers int
}

type FileResult struct {
	Path     string // relative to the request root, slash separated
	Status   Status
	Result   *abstraction.Result
	Hash     uint64
	Error    string
	Duration time.Duration
}

type Report struct {
	Request   Request
	Files     []FileResult
	Clones    [][]string
	StartedAt time.Time
	EndedAt   time.Time
}

func (r *Report) Completed() int {
	return r.count(StatusCompleted)
}

func (r *Report) Failed() int {
	return r.count(StatusFailed)
}

func (r *Report) count(s Status) int {
	n := 0
	for _, f := range r.Files {
		if f.Status == s {
			n++
		}
	}
	return n
}

// ProgressFunc is called once per finished file. Calls are serialized.
type ProgressFunc func(done, total int, file FileResult)

type Option func(*Runner)

// WithAbstractorOptions configures the abstraction of every file.
func WithAbstractorOptions(opts ...abstractor.Option) Option {
	return func(r *Runner) {
		r.abstractorOpts = append(r.abstractorOpts, opts...)
	}
}

func WithProgress(fn ProgressFunc) Option {
	return func(r *Runner) {
		r.progress = fn
	}
}

type Runner struct {
	abstractorOpts []abstractor.Option
	progress       ProgressFunc
}

func New(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Discover returns the slash-separated paths below root that match an include
// pattern and no exclude pattern, in lexical order.
func Discover(root string, include, exclude []string) ([]string, error) {
	includes, err := compile(include)
	if err != nil {
		return nil, err
	}
	excludes, err := compile(exclude)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && matchAny(excludes, rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if matchAny(includes, rel) && !matchAny(excludes, rel) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

func compile(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func matchAny(globs []glob.Glob, path string) bool {
	for _, g := range globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// Run abstracts every discovered file. A file that fails to abstract is
// recorded as failed and does not stop the others; only context cancellation
// and discovery errors abort the run.
func (r *Runner) Run(ctx context.Context, req Request) (*Report, error) {
	report := &Report{Request: req, StartedAt: time.Now()}

	files, err := Discover(req.Root, req.Include, req.Exclude)
	if err != nil {
		return nil, err
	}
	log.Info("discovered files", "root", req.Root, "files", len(files))

	workers := req.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	report.Files = make([]FileResult, len(files))

	var (
		mu   sync.Mutex
		done int
	)
	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, rel := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report.Files[i] = r.abstractFile(ctx, req, rel)

			mu.Lock()
			defer mu.Unlock()
			done++
			if r.progress != nil {
				r.progress(done, len(files), report.Files[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch %s: %w", req.Root, err)
	}

	report.Clones = cloneGroups(report.Files)
	report.EndedAt = time.Now()
	log.Info("batch finished",
		"completed", report.Completed(),
		"failed", report.Failed(),
		"clone_groups", len(report.Clones),
		"elapsed", report.EndedAt.Sub(report.StartedAt).String())
	return report, nil
}

func (r *Runner) abstractFile(ctx context.Context, req Request, rel string) FileResult {
	start := time.Now()
	fr := FileResult{Path: rel}

	input := filepath.Join(req.Root, filepath.FromSlash(rel))
	opts := append([]abstractor.Option{abstractor.WithFile(input)}, r.abstractorOpts...)

	var (
		res *abstraction.Result
		err error
	)
	if req.OutDir != "" {
		output := filepath.Join(req.OutDir, filepath.FromSlash(rel)+OutputExt)
		res, err = abstractor.AbstractFile(ctx, input, output, opts...)
	} else {
		var src []byte
		src, err = abstractor.ReadSource(input)
		if err == nil {
			res, err = abstractor.Abstract(ctx, src, opts...)
		}
	}

	fr.Duration = time.Since(start)
	if err != nil {
		fr.Status = StatusFailed
		fr.Error = err.Error()
		if !errors.Is(err, context.Canceled) {
			log.Warning("abstraction failed", "file", rel, "error", err.Error())
		}
		return fr
	}

	fr.Status = StatusCompleted
	fr.Result = res
	fr.Hash = xxh3.HashString(res.Text)
	log.Debug("abstracted file", "file", rel, "entries", res.Mapping.Len(), "duration", fr.Duration.String())
	return fr
}

// cloneGroups returns the paths of completed files sharing an abstracted
// text, one group per distinct text with at least two members. Groups are
// ordered by their first path.
func cloneGroups(files []FileResult) [][]string {
	byHash := make(map[uint64][]int)
	for i, f := range files {
		if f.Status != StatusCompleted {
			continue
		}
		byHash[f.Hash] = append(byHash[f.Hash], i)
	}

	var groups [][]string
	for _, indices := range byHash {
		if len(indices) < 2 {
			continue
		}
		// Equal hashes are confirmed by text so a collision cannot merge groups.
		byText := make(map[string][]string)
		var order []string
		for _, i := range indices {
			text := files[i].Result.Text
			if _, ok := byText[text]; !ok {
				order = append(order, text)
			}
			byText[text] = append(byText[text], files[i].Path)
		}
		for _, text := range order {
			if paths := byText[text]; len(paths) > 1 {
				sort.Strings(paths)
				groups = append(groups, paths)
			}
		}
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i][0] < groups[j][0]
	})
	return groups
}
