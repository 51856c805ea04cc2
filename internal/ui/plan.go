package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/example/sanename/internal/rename"
	"github.com/example/sanename/pkg/ui"
)

// PrintPlan writes every pending rename, then one warning per skipped file.
func PrintPlan(plan *rename.Plan) {
	width := 0
	unchanged := 0
	for _, e := range plan.Entries {
		switch e.Action {
		case rename.ActionRename:
			width = max(width, lipgloss.Width(e.From))
		case rename.ActionUnchanged:
			unchanged++
		}
	}

	for _, e := range plan.Entries {
		if e.Action == rename.ActionRename {
			fmt.Fprintln(ui.Output(), "  "+ui.Arrow(e.From, e.To, width))
		}
	}
	for _, e := range plan.Skipped() {
		ui.Warn("Skipping %q: %s", e.From, e.Reason)
	}
	if unchanged > 0 {
		ui.Info("%d files already have sane names", unchanged)
	}
}

// PromptConfirm asks on a single line. Only "y" or "yes" counts as consent.
func PromptConfirm(pending int, in io.Reader) bool {
	fmt.Fprintf(ui.Output(), "About to rename %d files. Continue? (y/n) ", pending)

	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
