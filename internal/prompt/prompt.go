// Package prompt asks the one question gitnuke must never get wrong by
// default: whether to actually delete what the walk found. Styling
// follows the teacher's internal/output/color.go palette approach
// (lipgloss styles built once, reused per render); terminal detection
// reuses internal/fsdir's raw ioctl probe rather than re-implementing it.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dl/gitnuke/internal/humanize"
)

// Styles holds the lipgloss styles used when rendering the confirmation
// prompt. Mirrors the teacher's output.Styles/NewStyles/NoStyles split.
type Styles struct {
	Warning lipgloss.Style
	Total   lipgloss.Style
	Prompt  lipgloss.Style
}

// NewStyles returns the default colored prompt styles.
func NewStyles() Styles {
	return Styles{
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		Total:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		Prompt:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

// NoStyles returns styles with no coloring, for --no-color or a
// non-terminal stdout.
func NoStyles() Styles {
	return Styles{
		Warning: lipgloss.NewStyle(),
		Total:   lipgloss.NewStyle(),
		Prompt:  lipgloss.NewStyle(),
	}
}

// Confirm prints a summary of what will be deleted and asks the user to
// type NUKE to proceed or anything else (including a bare Enter) to
// abort. count is the number of roots queued for removal; totalBytes is
// their aggregated size, or -1 if sizes were not computed.
func Confirm(w io.Writer, r io.Reader, styles Styles, count int, totalBytes int64) (bool, error) {
	fmt.Fprintln(w, styles.Warning.Render(fmt.Sprintf("about to permanently delete %d ignored root(s)", count)))
	if totalBytes >= 0 {
		fmt.Fprintln(w, styles.Total.Render(fmt.Sprintf("reclaiming %s", humanize.Bytes(totalBytes))))
	}
	fmt.Fprint(w, styles.Prompt.Render("type NUKE to proceed, anything else to abort: "))

	reader := bufio.NewReader(r)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return false, nil
		}
		return false, err
	}
	return strings.TrimSpace(line) == "NUKE", nil
}
