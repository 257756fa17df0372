// Package ignore compiles .gitignore-format text into an immutable,
// thread-safe RuleSet and classifies candidate paths as ignored,
// whitelisted, or unmatched. This is the glob-matching external
// collaborator spec.md §6 calls for; pattern compilation and matching
// are delegated to github.com/sabhiram/go-gitignore (the same library
// the teacher's internal/walker uses for its own .gitignore layers),
// and RuleSet is a thin adapter that turns its {matched, *IgnorePattern}
// result into the tri-state Ignore/Whitelist/None the walker's
// whitelist-stops-recursion rule and --print-glob-matches flag need.
package ignore

import (
	"os"
	"path/filepath"
	"strings"

	gi "github.com/sabhiram/go-gitignore"
)

// Kind classifies the outcome of matching a path against a RuleSet.
type Kind int

const (
	// None means no rule in the set matched the path.
	None Kind = iota
	// Ignore means the path should be treated as ignored/hidden.
	Ignore
	// Whitelist means a negated rule re-included the path.
	Whitelist
)

func (k Kind) String() string {
	switch k {
	case Ignore:
		return "ignore"
	case Whitelist:
		return "whitelist"
	default:
		return "none"
	}
}

// Origin identifies the source of a match for diagnostics
// (--print-glob-matches).
type Origin struct {
	File    string // the .gitignore/.gitnuke file the rule came from
	Pattern string // the raw pattern text, as written
}

// Match is the result of querying a RuleSet.
type Match struct {
	Kind   Kind
	Origin Origin
}

// RuleSet is the compiled, immutable form of a .gitignore-format file
// (or inline lines). Safe for concurrent use by any number of goroutines
// once constructed.
type RuleSet struct {
	baseDir string
	source  string
	matcher *gi.GitIgnore
	negated []string // pattern text (post '!' strip) of every negated line, for HasException
	nrules  int      // count of effective (non-comment/blank) lines, for Empty

	// exceptions is the negated patterns compiled without their '!', so
	// Match can tell a path a negation re-included from one no rule touched.
	exceptions *gi.GitIgnore
}

// CompileFile reads path (a .gitignore or .gitnuke file) and compiles it
// relative to its containing directory. Returns an error if the file
// cannot be read; callers should treat that as the spec's "ignore-file
// compile error" case — log and treat as absent, never fatal.
func CompileFile(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(data), "\n")
	return Compile(filepath.Dir(path), lines, path)
}

// Compile builds a RuleSet from raw lines relative to baseDir. sourceName
// is recorded on every rule's Origin for diagnostics (typically the file
// path lines came from, or a synthetic name for inline rules).
func Compile(baseDir string, lines []string, sourceName string) (*RuleSet, error) {
	rs := &RuleSet{baseDir: baseDir, source: sourceName}

	var cleaned []string
	for _, raw := range lines {
		line, pattern, negate, skip := parseLine(raw)
		if skip {
			continue
		}
		cleaned = append(cleaned, line)
		rs.nrules++
		if negate {
			rs.negated = append(rs.negated, pattern)
		}
	}
	if len(cleaned) == 0 {
		return rs, nil
	}

	m, err := gi.CompileIgnoreLines(cleaned...)
	if err != nil {
		return nil, err
	}
	rs.matcher = m
	if len(rs.negated) > 0 {
		ex, err := gi.CompileIgnoreLines(rs.negated...)
		if err != nil {
			return nil, err
		}
		rs.exceptions = ex
	}
	return rs, nil
}

// Match classifies path (which must live under baseDir) against the
// set, deferring to go-gitignore's own last-line-wins semantics.
// isDir is signalled to the matcher the same way the teacher's
// internal/walker does: a trailing "/" appended to the relative path,
// so directory-only patterns (a trailing "/" in the source file) don't
// match plain files. go-gitignore reports a path that a negation
// re-included as not matched, the same as a path no rule touched; the
// separately compiled negated patterns tell the two apart, yielding
// Whitelist for the former.
func (rs *RuleSet) Match(path string, isDir bool) Match {
	if rs == nil || rs.matcher == nil {
		return Match{Kind: None}
	}
	rel, err := filepath.Rel(rs.baseDir, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return Match{Kind: None}
	}
	rel = filepath.ToSlash(rel)
	if isDir {
		rel += "/"
	}

	matched, pat := rs.matcher.MatchesPathHow(rel)
	if matched && pat != nil {
		return Match{Kind: Ignore, Origin: Origin{File: rs.source, Pattern: pat.Line}}
	}
	if rs.exceptions != nil {
		if ok, ex := rs.exceptions.MatchesPathHow(rel); ok && ex != nil {
			return Match{Kind: Whitelist, Origin: Origin{File: rs.source, Pattern: "!" + ex.Line}}
		}
	}
	return Match{Kind: None}
}

// Empty reports whether the set has no effective rules (e.g. the file
// was absent or contained only comments/blank lines).
func (rs *RuleSet) Empty() bool {
	return rs == nil || rs.nrules == 0
}

// HasException reports whether the set contains a whitelist rule whose
// pattern lies strictly beneath dirPath — a negated file rule inside a
// directory this same set otherwise matches Ignore. Plain gitignore
// tooling can't resurrect a path once its parent directory is pruned;
// the walker uses HasException to recognize when it must recurse
// through an Ignore-matched directory instead of treating it as a
// terminal root, specifically to find that exception.
func (rs *RuleSet) HasException(dirPath string) bool {
	if rs == nil || len(rs.negated) == 0 {
		return false
	}
	rel, err := filepath.Rel(rs.baseDir, dirPath)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return false
	}
	prefix := filepath.ToSlash(rel) + "/"
	for _, p := range rs.negated {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// parseLine strips trailing whitespace and comments from one line of a
// .gitignore file. line is the cleaned text, still carrying any leading
// '!' or '\' escape, suitable for feeding straight to
// gi.CompileIgnoreLines; pattern is the same line with a leading '!'
// negation marker removed, used only for HasException's prefix search.
// skip is true for blank lines and comments, which contribute no rule.
func parseLine(raw string) (line string, pattern string, negate bool, skip bool) {
	trimmed := strings.TrimRight(raw, "\r\n")
	trimmed = strings.TrimRight(trimmed, " \t")
	if trimmed == "" {
		return "", "", false, true
	}
	if strings.HasPrefix(trimmed, "#") {
		return "", "", false, true
	}

	pattern = trimmed
	switch {
	case strings.HasPrefix(trimmed, "\\#"), strings.HasPrefix(trimmed, "\\!"):
		pattern = trimmed[1:]
	case strings.HasPrefix(trimmed, "!"):
		negate = true
		pattern = trimmed[1:]
	}
	if pattern == "" {
		return "", "", false, true
	}
	return trimmed, pattern, negate, false
}
