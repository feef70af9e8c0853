package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/existflow/notejar/internal/history"
	"github.com/existflow/notejar/internal/model"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"ls", "gallery"},
	Short:   "List opened notes",
	Long: `List the notes you have opened, newest first.

Examples:
  notejar history
  notejar history --reveal-order
  notejar history --json`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var (
	historyJSON        bool
	historyRevealOrder bool
)

func init() {
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Print the stored JSON")
	historyCmd.Flags().BoolVar(&historyRevealOrder, "reveal-order", false, "Oldest first")
}

func runHistory(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	return printHistory(cmd.OutOrStdout(), env.History(), historyJSON, historyRevealOrder)
}

// printHistory writes notes newest first unless revealOrder is set
func printHistory(w io.Writer, notes []model.OpenedNote, asJSON, revealOrder bool) error {
	ordered := make([]model.OpenedNote, len(notes))
	for i, n := range notes {
		if revealOrder {
			ordered[i] = n
		} else {
			ordered[len(notes)-1-i] = n
		}
	}

	if asJSON {
		data, err := history.Encode(ordered)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	if len(ordered) == 0 {
		fmt.Fprintln(w, "No notes opened yet. Run 'notejar' and shake the jar!")
		return nil
	}

	fmt.Fprintf(w, "\n📝 Opened notes (%d)\n", len(ordered))
	fmt.Fprintln(w, strings.Repeat("─", 60))
	for _, n := range ordered {
		printNoteLine(w, n)
	}
	fmt.Fprintln(w)
	return nil
}

func printNoteLine(w io.Writer, n model.OpenedNote) {
	title := n.Title
	if title == "" {
		title = firstWords(n.Text, 36)
	}
	author := ""
	if n.Author != "" {
		author = "— " + n.Author
	}
	opened := n.OpenedTime().Format("Jan 2 15:04")
	fmt.Fprintf(w, "  %-10s  %-7s  %-38s  %-12s  %s\n", n.ID, n.Color, title, opened, author)
}

// firstWords truncates s to at most max bytes on a rune boundary
func firstWords(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := 0
	for i := range s {
		if i > max-3 {
			break
		}
		cut = i
	}
	return strings.TrimRight(s[:cut], " ") + "..."
}
