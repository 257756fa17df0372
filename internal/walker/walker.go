// Package walker is the Ignore-Aware Walker (IAW): it drives two passes
// of the work-stealing job runtime (internal/job) over a directory tree,
// threading a persistent ignore stack (internal/stack) of compiled
// .gitignore/.gitnuke rule sets (internal/ignore) along each descent,
// built on raw directory enumeration (internal/fsdir) the way the
// teacher repo's own internal/walker package is built on its raw dirent
// parsing.
//
// Pass A discovers every ignored root — a path matched Ignore by the
// stack in effect at its parent, with whitelisted subtrees and their
// contents excluded entirely. Pass B, run only when size accounting is
// requested, sums the byte size under each discovered root independently
// and in parallel.
package walker

import (
	"errors"
	"sort"

	"github.com/dl/gitnuke/internal/fsdir"
	"github.com/dl/gitnuke/internal/ignore"
	"github.com/dl/gitnuke/internal/job"
)

// Options configures a single Walk call.
type Options struct {
	// StartDir is the directory to begin scanning from.
	StartDir string
	// Root bounds the ancestor .gitignore scan (IncludeParentScope); the
	// scan never looks above this directory. Empty means unbounded (it
	// still stops at the first repository root it finds).
	Root string
	// IncludeGlobalIgnore layers the user's global git ignore file
	// ($XDG_CONFIG_HOME/git/ignore or ~/.config/git/ignore) beneath
	// StartDir's own rules.
	IncludeGlobalIgnore bool
	// IncludeParentScope layers every ancestor directory's .gitignore
	// (and .gitnuke, if GitnukeFile) between StartDir and the nearest
	// repository root or Root.
	IncludeParentScope bool
	// GitnukeFile enables reading .gitnuke files alongside .gitignore.
	GitnukeFile bool
	// FollowSymlinks makes the walker descend into symlinked
	// directories, guarding against cycles with a visited-inode set.
	// Off by default: a symlink entry is otherwise skipped outright.
	FollowSymlinks bool
	// ComputeSizes runs Pass B to attach a byte size to each result and
	// enables MinBytes filtering. When false, every discovered root is
	// returned with Bytes == -1 and MinBytes is ignored.
	ComputeSizes bool
	// MinBytes filters out any root whose aggregated size is smaller
	// than this, when ComputeSizes is set.
	MinBytes int64
	// NumWorkers sets the job runtime's pool size for both passes
	// (runtime.NumCPU() if <= 0).
	NumWorkers int
	// OnError, if set, is called for every non-fatal error encountered
	// during the walk (a bad .gitignore, an unreadable directory, a
	// broken stat). The walk continues regardless.
	OnError func(error)
	// OnGlobMatch, if set, is called for every path matched Ignore or
	// Whitelist, for --print-glob-matches style diagnostics.
	OnGlobMatch func(path string, isDir bool, m ignore.Match)
}

// Root is one discovered ignored path.
type Root struct {
	Path string
	// Bytes is the aggregated size under Path, or -1 if Options.ComputeSizes
	// was false.
	Bytes int64
}

// Walk runs the configured passes and returns every discovered ignored
// root. When Options.ComputeSizes is set, results are sorted ascending
// by Bytes, matching the CLI's smallest-first review order.
func Walk(opts Options) ([]Root, error) {
	start, err := fsdir.Canonicalize(opts.StartDir)
	if err != nil {
		return nil, &StartupError{Path: opts.StartDir, Err: err}
	}
	if !fsdir.IsDir(start) {
		return nil, &StartupError{Path: start, Err: errors.New("not a directory")}
	}

	initial, globalTip, err := setup(start, opts)
	if err != nil {
		return nil, &StartupError{Path: start, Err: err}
	}

	d := &discoverer{
		globalTip:   globalTip,
		gitnukeFile: opts.GitnukeFile,
		followLinks: opts.FollowSymlinks,
		onError:     opts.OnError,
		onGlobMatch: opts.OnGlobMatch,
	}
	if opts.FollowSymlinks {
		d.visited = fsdir.NewVisitedSet()
	}

	groups, err := job.Run([]discoverTask{{stack: initial, dir: start}}, d.run, opts.NumWorkers)
	if err != nil {
		return nil, err
	}

	var ignoredPaths []string
	for _, g := range groups {
		ignoredPaths = append(ignoredPaths, g...)
	}

	if !opts.ComputeSizes {
		roots := make([]Root, len(ignoredPaths))
		for i, p := range ignoredPaths {
			roots[i] = Root{Path: p, Bytes: -1}
		}
		return roots, nil
	}

	sz := &sizer{followLinks: opts.FollowSymlinks, onError: opts.OnError}
	seed := make([]sizeTask, len(ignoredPaths))
	for i, p := range ignoredPaths {
		seed[i] = sizeTask{group: i, path: p}
	}
	outputs, err := job.Run(seed, sz.run, opts.NumWorkers)
	if err != nil {
		return nil, err
	}

	totals := make([]int64, len(ignoredPaths))
	for _, o := range outputs {
		totals[o.group] += o.bytes
	}

	var roots []Root
	for i, p := range ignoredPaths {
		if totals[i] < opts.MinBytes {
			continue
		}
		roots = append(roots, Root{Path: p, Bytes: totals[i]})
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].Bytes < roots[j].Bytes })
	return roots, nil
}
