package walker

import (
	"os"
	"path/filepath"

	"github.com/dl/gitnuke/internal/fsdir"
	"github.com/dl/gitnuke/internal/ignore"
	"github.com/dl/gitnuke/internal/stack"
)

// setup builds the initial ignore stack for the start directory per
// spec.md §4.3's setup steps: push the built-in VCS-metadata whitelist,
// optionally layer the user's global ignore file, then optionally layer
// every ancestor's .gitignore/.gitnuke from root down to start's parent.
// It returns both the stack to begin the walk with and the stack a
// nested repo root should reset to (everything except per-directory
// .gitignore/.gitnuke layers discovered during the walk itself).
func setup(start string, opts Options) (initial, globalTip stack.Stack[*ignore.RuleSet], err error) {
	whitelist, err := ignore.Compile(start, []string{"!.git", "!.hg"}, "<builtin-vcs-whitelist>")
	if err != nil {
		return stack.Stack[*ignore.RuleSet]{}, stack.Stack[*ignore.RuleSet]{}, err
	}

	s := stack.New[*ignore.RuleSet]().Push(whitelist)
	globalTip = s

	if opts.IncludeGlobalIgnore {
		if g, ok := loadGlobalIgnore(); ok {
			s = s.Push(g)
			globalTip = s
		}
	}

	if opts.IncludeParentScope {
		for _, rs := range collectAncestorIgnores(start, opts.Root, opts.GitnukeFile) {
			s = s.Push(rs)
		}
	}

	return s, globalTip, nil
}

// loadGlobalIgnore resolves and compiles the user's global git ignore
// file, mirroring git's own lookup: $XDG_CONFIG_HOME/git/ignore, falling
// back to ~/.config/git/ignore. Per spec.md §10 this is an opt-in
// supplement (original_source/src/main.rs's build_global), off unless
// --include-global-ignore is set.
func loadGlobalIgnore() (*ignore.RuleSet, bool) {
	path := globalIgnorePath()
	if path == "" {
		return nil, false
	}
	rs, err := ignore.CompileFile(path)
	if err != nil || rs.Empty() {
		return nil, false
	}
	return rs, true
}

func globalIgnorePath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "git", "ignore")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "git", "ignore")
}

// collectAncestorIgnores walks upward from start's parent, collecting
// each ancestor's .gitignore (and, if gitnukeFile, .gitnuke) in
// root-to-leaf order so that pushing them in the returned order leaves
// the closest ancestor as the tip. The walk stops at the first ancestor
// that itself looks like a repository root (contains .git or .hg), at
// root if non-empty, or at the filesystem root.
func collectAncestorIgnores(start, root string, gitnukeFile bool) []*ignore.RuleSet {
	var dirs []string
	cur := filepath.Dir(start)
	for {
		if hasRepoMarker(cur) {
			break
		}
		dirs = append(dirs, cur)
		if root != "" && cur == root {
			break
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}

	for i, j := 0, len(dirs)-1; i < j; i, j = i+1, j-1 {
		dirs[i], dirs[j] = dirs[j], dirs[i]
	}

	var sets []*ignore.RuleSet
	for _, d := range dirs {
		if rs, err := ignore.CompileFile(filepath.Join(d, ".gitignore")); err == nil && !rs.Empty() {
			sets = append(sets, rs)
		}
		if gitnukeFile {
			if rs, err := ignore.CompileFile(filepath.Join(d, ".gitnuke")); err == nil && !rs.Empty() {
				sets = append(sets, rs)
			}
		}
	}
	return sets
}

// hasRepoMarker reports whether dir looks like a repository root. A
// plain file named .git also counts (git submodules/worktrees use a
// gitdir-pointer file rather than a directory there).
func hasRepoMarker(dir string) bool {
	return pathExists(filepath.Join(dir, ".git")) || pathExists(filepath.Join(dir, ".hg"))
}

func pathExists(path string) bool {
	_, err := fsdir.Lstat(path)
	return err == nil
}
