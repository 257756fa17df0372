package walker

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/dl/gitnuke/internal/fsdir"
	"github.com/dl/gitnuke/internal/ignore"
	"github.com/dl/gitnuke/internal/job"
	"github.com/dl/gitnuke/internal/stack"
)

// discoverTask is one unit of Pass A: a directory to enumerate together
// with the ignore stack in effect at that point in the descent. ambient
// is non-nil when dir lies inside a directory that itself matched
// Ignore but contained a nested whitelist exception (spec.md scenario
// 2): it names the rule set responsible, so descendants that don't
// match any rule of their own still inherit Ignore instead of being
// kept, while a descendant HasException still carves itself back out.
type discoverTask struct {
	stack   stack.Stack[*ignore.RuleSet]
	dir     string
	ambient *ignore.RuleSet
}

// discoverer holds Pass A's shared, read-only configuration. Its run
// method is a job.Func[discoverTask, []string]: each task's output is
// its own slice of newly-discovered ignored paths, flattened by the
// caller once job.Run returns.
type discoverer struct {
	globalTip   stack.Stack[*ignore.RuleSet]
	gitnukeFile bool
	followLinks bool
	visited     *fsdir.VisitedSet
	onError     func(error)
	onGlobMatch func(path string, isDir bool, m ignore.Match)
}

func (d *discoverer) run(task discoverTask, local job.LocalQueue[discoverTask]) ([]string, bool) {
	entries, err := fsdir.ReadDir(task.dir)
	if err != nil {
		d.reportEntryError(task.dir, err)
		return nil, false
	}

	tip := task.stack
	if isRepoRoot(entries) {
		tip = d.globalTip
	}
	tip = d.pushLayer(tip, filepath.Join(task.dir, ".gitignore"))
	if d.gitnukeFile {
		tip = d.pushLayer(tip, filepath.Join(task.dir, ".gitnuke"))
	}

	var ignored []string
	for _, e := range entries {
		isDir, ok := d.resolve(e)
		if !ok {
			continue
		}

		m, owner := classify(tip, e.Path, isDir)
		kind := m.Kind
		if kind == ignore.None && task.ambient != nil {
			kind, owner = ignore.Ignore, task.ambient
		}

		switch kind {
		case ignore.Ignore:
			// A nested repository boundary is never itself subject to
			// the enclosing repository's rules (spec.md scenario 4).
			// Only directories the parent's patterns would otherwise
			// swallow pay this check's Lstat cost; every other entry
			// recurses (or doesn't) on classify's verdict alone, and a
			// nested boundary that does recurse resets its own scope
			// via isRepoRoot once its own entries are read.
			if isDir && hasRepoMarker(e.Path) {
				local.Push(discoverTask{stack: d.globalTip, dir: e.Path})
				continue
			}
			if isDir && owner != nil && owner.HasException(e.Path) {
				local.Push(discoverTask{stack: tip, dir: e.Path, ambient: owner})
				continue
			}
			ignored = append(ignored, e.Path)
			if d.onGlobMatch != nil {
				d.onGlobMatch(e.Path, isDir, m)
			}
		case ignore.Whitelist:
			if d.onGlobMatch != nil {
				d.onGlobMatch(e.Path, isDir, m)
			}
		default:
			if isDir {
				local.Push(discoverTask{stack: tip, dir: e.Path})
			}
		}
	}

	return ignored, true
}

// pushLayer compiles path, if present, onto tip. A missing file is not
// an error; a present-but-unreadable-or-malformed file is reported and
// otherwise treated as absent, per spec.md §7.
func (d *discoverer) pushLayer(tip stack.Stack[*ignore.RuleSet], path string) stack.Stack[*ignore.RuleSet] {
	rs, err := ignore.CompileFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			d.reportCompileError(path, err)
		}
		return tip
	}
	if rs.Empty() {
		return tip
	}
	return tip.Push(rs)
}

// resolve classifies a directory entry and reports whether it should be
// considered at all (false skips it silently: an unresolvable symlink,
// a loop, or an entry of a type the walker has no opinion about).
func (d *discoverer) resolve(e fsdir.Entry) (isDir bool, ok bool) {
	switch e.Type {
	case fsdir.Dir:
		return true, true
	case fsdir.File:
		return false, true
	case fsdir.Symlink:
		if !d.followLinks {
			return false, false
		}
		info, err := fsdir.Stat(e.Path)
		if err != nil {
			return false, false
		}
		if info.IsDir {
			if d.visited != nil && !d.visited.MarkIfNew(info.Inode) {
				return false, false
			}
			return true, true
		}
		return false, true
	default:
		return false, false
	}
}

func (d *discoverer) reportEntryError(path string, err error) {
	if d.onError != nil {
		d.onError(&EntryError{Path: path, Err: err})
	}
}

func (d *discoverer) reportCompileError(path string, err error) {
	if d.onError != nil {
		d.onError(&CompileError{Path: path, Err: err})
	}
}

// isRepoRoot reports whether entries contains a .git or .hg child,
// marking dir as a nested repository boundary per spec.md §4.3: the
// ignore stack resets to globalTip here rather than inheriting the
// enclosing repository's .gitignore layers.
func isRepoRoot(entries []fsdir.Entry) bool {
	for _, e := range entries {
		if e.Name == ".git" || e.Name == ".hg" {
			return true
		}
	}
	return false
}

// classify queries tip tip-first (most specific scope wins) and returns
// the first non-None match, along with the rule set that produced it
// (nil if the result is None).
func classify(tip stack.Stack[*ignore.RuleSet], path string, isDir bool) (ignore.Match, *ignore.RuleSet) {
	var result ignore.Match
	var owner *ignore.RuleSet
	tip.Iter(func(rsp **ignore.RuleSet) bool {
		rs := *rsp
		m := rs.Match(path, isDir)
		if m.Kind != ignore.None {
			result, owner = m, rs
			return false
		}
		return true
	})
	return result, owner
}
