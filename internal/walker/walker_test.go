package walker

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func paths(roots []Root) []string {
	out := make([]string, len(roots))
	for i, r := range roots {
		out[i] = r.Path
	}
	sort.Strings(out)
	return out
}

func contains(roots []Root, suffix string) bool {
	for _, r := range roots {
		if strings.HasSuffix(filepath.ToSlash(r.Path), suffix) {
			return true
		}
	}
	return false
}

// Scenario 1: a basic glob ignores one file but not its sibling or the
// .gitignore itself.
func TestWalk_BasicGlobRoundTrip(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.log"), "x")
	writeFile(t, filepath.Join(root, "b.txt"), "x")
	writeFile(t, filepath.Join(root, ".gitignore"), "*.log\n")

	roots, err := Walk(Options{StartDir: root, NumWorkers: 4})
	if err != nil {
		t.Fatal(err)
	}
	if !contains(roots, "a.log") {
		t.Errorf("expected a.log to be ignored, got %v", paths(roots))
	}
	if contains(roots, "b.txt") || contains(roots, ".gitignore") {
		t.Errorf("b.txt/.gitignore should not be ignored, got %v", paths(roots))
	}
}

// Scenario 2: a whitelisted child forces recursion into an otherwise
// ignored directory; the directory itself is never reported, only the
// still-ignored sibling is.
func TestWalk_WhitelistedChildForcesRecursion(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "build/\n!build/keep.me\n")
	writeFile(t, filepath.Join(root, "build", "keep.me"), "x")
	writeFile(t, filepath.Join(root, "build", "drop.o"), "x")

	roots, err := Walk(Options{StartDir: root, NumWorkers: 4})
	if err != nil {
		t.Fatal(err)
	}
	if !contains(roots, "build/drop.o") {
		t.Errorf("expected build/drop.o to be ignored, got %v", paths(roots))
	}
	if contains(roots, "build/keep.me") {
		t.Errorf("build/keep.me should not be ignored, got %v", paths(roots))
	}
	if contains(roots, "build") {
		t.Errorf("build itself should not be reported, only its ignored child, got %v", paths(roots))
	}
}

// Scenario 3: a nested .gitignore's negation narrows the parent's glob
// within its own subtree only.
func TestWalk_NestedScopeNarrowsParentGlob(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "*.tmp\n")
	writeFile(t, filepath.Join(root, "sub", ".gitignore"), "!a.tmp\n")
	writeFile(t, filepath.Join(root, "sub", "a.tmp"), "x")
	writeFile(t, filepath.Join(root, "sub", "b.tmp"), "x")
	writeFile(t, filepath.Join(root, "c.tmp"), "x")

	roots, err := Walk(Options{StartDir: root, NumWorkers: 4})
	if err != nil {
		t.Fatal(err)
	}
	if !contains(roots, "c.tmp") || !contains(roots, "sub/b.tmp") {
		t.Errorf("expected c.tmp and sub/b.tmp ignored, got %v", paths(roots))
	}
	if contains(roots, "sub/a.tmp") {
		t.Errorf("sub/a.tmp should be whitelisted, got %v", paths(roots))
	}
}

// Scenario 4: a nested repository boundary resets accumulated scope, so
// the outer blanket ignore does not reach inside it, and .git's own
// contents are never visited at all.
func TestWalk_RepoBoundaryResetsScope(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "*\n")
	writeFile(t, filepath.Join(root, "inner", ".git", "HEAD"), "ref: refs/heads/main")
	writeFile(t, filepath.Join(root, "inner", "keep.txt"), "x")

	roots, err := Walk(Options{StartDir: root, NumWorkers: 4})
	if err != nil {
		t.Fatal(err)
	}
	if contains(roots, "inner/keep.txt") {
		t.Errorf("keep.txt should not be ignored inside the nested repo, got %v", paths(roots))
	}
	if contains(roots, ".git/HEAD") || contains(roots, "HEAD") {
		t.Errorf(".git contents should never be visited, got %v", paths(roots))
	}
}

// Scenario 5: size aggregation sums a directory's direct file children
// plus every nested subtree's own contribution under one group.
func TestWalk_SizeAggregationSumsWholeSubtree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "ignored/\n")
	if err := os.WriteFile(filepath.Join(mustMkdir(t, filepath.Join(root, "ignored")), "a"), make([]byte, 100), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(mustMkdir(t, filepath.Join(root, "ignored", "sub")), "b"), make([]byte, 50), 0o644); err != nil {
		t.Fatal(err)
	}

	roots, err := Walk(Options{StartDir: root, NumWorkers: 4, ComputeSizes: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(roots) != 1 {
		t.Fatalf("expected exactly one ignored root, got %v", roots)
	}
	if roots[0].Bytes != 150 {
		t.Errorf("expected 150 aggregated bytes, got %d", roots[0].Bytes)
	}
}

func mustMkdir(t *testing.T, path string) string {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestWalk_MinBytesFiltersSmallRoots(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "small/\nbig/\n")
	writeFile(t, filepath.Join(root, "small", "f"), "x")
	if err := os.WriteFile(filepath.Join(mustMkdir(t, filepath.Join(root, "big")), "f"), make([]byte, 1000), 0o644); err != nil {
		t.Fatal(err)
	}

	roots, err := Walk(Options{StartDir: root, NumWorkers: 2, ComputeSizes: true, MinBytes: 500})
	if err != nil {
		t.Fatal(err)
	}
	if len(roots) != 1 || filepath.Base(roots[0].Path) != "big" {
		t.Errorf("expected only big/ to survive the MinBytes filter, got %v", roots)
	}
}

func TestWalk_MissingStartDirIsStartupError(t *testing.T) {
	_, err := Walk(Options{StartDir: filepath.Join(t.TempDir(), "nope")})
	if err == nil {
		t.Fatal("expected an error")
	}
	if _, ok := err.(*StartupError); !ok {
		t.Errorf("expected *StartupError, got %T: %v", err, err)
	}
}
