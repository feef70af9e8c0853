package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/existflow/notejar/internal/catalog"
	"github.com/existflow/notejar/internal/model"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the notes in the jar",
	Long: `List every note in the catalog and whether it has been opened.

Use --check to validate a catalog file without opening the database.

Examples:
  notejar catalog
  notejar catalog --check notes.yaml`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

var catalogCheck string

func init() {
	catalogCmd.Flags().StringVar(&catalogCheck, "check", "", "Validate a YAML catalog file")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	if catalogCheck != "" {
		cat, err := catalog.LoadFile(catalogCheck)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d notes\n", catalogCheck, cat.Len())
		return nil
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	opened := make(map[string]bool)
	for _, n := range env.History() {
		opened[n.ID] = true
	}
	printCatalog(cmd.OutOrStdout(), env.Catalog, opened)
	return nil
}

func printCatalog(w io.Writer, cat *catalog.Catalog, opened map[string]bool) {
	entries := cat.Entries()
	count := 0
	for _, e := range entries {
		if opened[e.ID] {
			count++
		}
	}

	fmt.Fprintf(w, "\n🫙 Catalog (%d of %d opened)\n", count, len(entries))
	fmt.Fprintln(w, strings.Repeat("─", 60))
	for _, e := range entries {
		icon := "[ ]"
		if opened[e.ID] {
			icon = "[x]"
		}
		fmt.Fprintf(w, "  %s  %-10s  %-7s  %s\n", icon, e.ID, e.Color, entryLabel(e))
	}
	fmt.Fprintln(w)
}

func entryLabel(e model.CatalogEntry) string {
	if e.Title != "" {
		return e.Title
	}
	return firstWords(e.Text, 36)
}
