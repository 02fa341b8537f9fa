package formatting

import (
	"fmt"
	"strings"

	"slash-sync-bot/internal/snapshot"

	"github.com/fatih/color"
)

// Colors are created explicitly enabled: output goes into Discord ```ansi
// blocks or is piped, where fatih/color's TTY detection would strip the
// escape codes.
var (
	ansiGreen  = enabled(color.New(color.FgGreen))
	ansiRed    = enabled(color.New(color.FgRed))
	ansiYellow = enabled(color.New(color.FgYellow))
	ansiCyan   = enabled(color.New(color.FgCyan, color.Bold))
)

func enabled(c *color.Color) *color.Color {
	c.EnableColor()
	return c
}

// DiffTable renders the changed commands of a diff as a colored table:
// green for added, red for removed, yellow for updated. Columns are padded
// before coloring so the escape codes do not skew alignment.
func DiffTable(diff snapshot.Diff) string {
	changes := diff.Changes()
	if len(changes) == 0 {
		return "no changes"
	}

	nameWidth := len("NAME")
	for _, c := range changes {
		if len(c.Command.Name) > nameWidth {
			nameWidth = len(c.Command.Name)
		}
	}

	var sb strings.Builder
	sb.WriteString(ansiCyan.Sprintf("%-*s  %-8s  %s", nameWidth, "NAME", "TYPE", "CHANGE"))
	for _, c := range changes {
		row := fmt.Sprintf("%-*s  %-8s  %s", nameWidth, c.Command.Name, snapshot.TypeName(c.Command.Type), c.Kind)
		switch c.Kind {
		case snapshot.ChangeAdded:
			row = ansiGreen.Sprint(row)
		case snapshot.ChangeRemoved:
			row = ansiRed.Sprint(row)
		case snapshot.ChangeUpdated:
			row = ansiYellow.Sprint(row)
		}
		sb.WriteString("\n")
		sb.WriteString(row)
	}
	return sb.String()
}

// AnsiDiffBlock wraps the colored diff table in a Discord ansi code block.
func AnsiDiffBlock(diff snapshot.Diff) string {
	return CodeBlock("ansi", DiffTable(diff))
}
