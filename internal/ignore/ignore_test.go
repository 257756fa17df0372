package ignore

import (
	"path/filepath"
	"testing"
)

func TestMatch_BasicGlob(t *testing.T) {
	rs, err := Compile("/root", []string{"*.log", "build/", "!important.log"}, ".gitignore")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		path  string
		isDir bool
		want  Kind
	}{
		{"matches glob", "/root/app.log", false, Ignore},
		{"no match", "/root/app.txt", false, None},
		{"dir pattern matches dir", "/root/build", true, Ignore},
		{"dir pattern skips file", "/root/build", false, None},
		{"negation", "/root/important.log", false, Whitelist},
		{"nested file matches basename glob", "/root/sub/app.log", false, Ignore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rs.Match(filepath.FromSlash(tt.path), tt.isDir)
			if got.Kind != tt.want {
				t.Errorf("Match(%q, isDir=%v).Kind = %v, want %v", tt.path, tt.isDir, got.Kind, tt.want)
			}
		})
	}
}

func TestMatch_AnchoredVsUnanchored(t *testing.T) {
	rs, err := Compile("/root", []string{"/only-root.txt", "anywhere.txt"}, ".gitignore")
	if err != nil {
		t.Fatal(err)
	}

	if rs.Match("/root/only-root.txt", false).Kind != Ignore {
		t.Error("anchored pattern should match at root")
	}
	if rs.Match("/root/sub/only-root.txt", false).Kind != None {
		t.Error("anchored pattern must not match in a subdirectory")
	}
	if rs.Match("/root/anywhere.txt", false).Kind != Ignore {
		t.Error("unanchored pattern should match at root")
	}
	if rs.Match("/root/sub/deep/anywhere.txt", false).Kind != Ignore {
		t.Error("unanchored pattern should match at any depth")
	}
}

func TestMatch_DoubleStar(t *testing.T) {
	rs, err := Compile("/root", []string{"a/**/b"}, ".gitignore")
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{"/root/a/b", "/root/a/x/b", "/root/a/x/y/b"} {
		if rs.Match(p, false).Kind != Ignore {
			t.Errorf("expected %q to match a/**/b", p)
		}
	}
	if rs.Match("/root/a/c", false).Kind == Ignore {
		t.Error("a/c must not match a/**/b")
	}
}

func TestMatch_LastPatternWinsWithinFile(t *testing.T) {
	rs, err := Compile("/root", []string{"*.tmp", "!keep.tmp", "keep.tmp"}, ".gitignore")
	if err != nil {
		t.Fatal(err)
	}
	m := rs.Match("/root/keep.tmp", false)
	if m.Kind != Ignore {
		t.Errorf("expected the later re-ignoring rule to win, got %v", m.Kind)
	}
}

func TestMatch_OutsideBaseDirIsNone(t *testing.T) {
	rs, err := Compile("/root/sub", []string{"*.tmp"}, ".gitignore")
	if err != nil {
		t.Fatal(err)
	}
	if rs.Match("/root/other/a.tmp", false).Kind != None {
		t.Error("a path outside baseDir must never match")
	}
}

func TestMatch_OriginReported(t *testing.T) {
	rs, err := Compile("/root", []string{"*.log"}, "/root/.gitignore")
	if err != nil {
		t.Fatal(err)
	}
	m := rs.Match("/root/a.log", false)
	if m.Origin.File != "/root/.gitignore" || m.Origin.Pattern != "*.log" {
		t.Errorf("unexpected origin: %+v", m.Origin)
	}
}

func TestHasException_FindsNestedNegation(t *testing.T) {
	rs, err := Compile("/root", []string{"build/", "!build/keep.me"}, ".gitignore")
	if err != nil {
		t.Fatal(err)
	}
	if !rs.HasException("/root/build") {
		t.Error("expected an exception beneath /root/build")
	}
	if rs.HasException("/root/other") {
		t.Error("did not expect an exception beneath /root/other")
	}
}

func TestHasException_NoNegationRules(t *testing.T) {
	rs, err := Compile("/root", []string{"ignored/"}, ".gitignore")
	if err != nil {
		t.Fatal(err)
	}
	if rs.HasException("/root/ignored") {
		t.Error("a rule set with no negation should never report an exception")
	}
}

func TestCompile_CommentsAndBlankLines(t *testing.T) {
	rs, err := Compile("/root", []string{"", "# comment", "*.log"}, ".gitignore")
	if err != nil {
		t.Fatal(err)
	}
	if rs.nrules != 1 {
		t.Fatalf("expected exactly one compiled rule, got %d", rs.nrules)
	}
	if rs.Empty() {
		t.Fatal("a set with one effective rule must not report Empty")
	}
}
