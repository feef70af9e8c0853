package cli

import (
	"fmt"
	"io"

	"github.com/existflow/notejar/internal/model"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [note-id]",
	Short: "Print an opened note",
	Long: `Print the full text of a note you have already opened.

Examples:
  notejar show note-1`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	for _, n := range env.History() {
		if n.ID == args[0] {
			printNote(cmd.OutOrStdout(), n, cfg.ImagePath(n.ImagePath))
			return nil
		}
	}

	if env.Catalog.Contains(args[0]) {
		return fmt.Errorf("note %q is still in the jar", args[0])
	}
	return fmt.Errorf("no note with id %q", args[0])
}

func printNote(w io.Writer, n model.OpenedNote, image string) {
	fmt.Fprintln(w)
	if image != "" {
		fmt.Fprintf(w, "  [image: %s]\n\n", image)
	}
	if n.Title != "" {
		fmt.Fprintf(w, "  %s\n\n", n.Title)
	}
	fmt.Fprintf(w, "  %s\n", n.Text)
	if n.Author != "" {
		fmt.Fprintf(w, "\n  — %s\n", n.Author)
	}
	fmt.Fprintf(w, "\n  opened %s\n\n", n.OpenedTime().Format("Jan 2, 2006 15:04"))
}
