package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/notejar/internal/logger"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every opened note",
	Long: `Delete the stored history so every note goes back into the jar.
This cannot be undone.`,
	Args: cobra.NoArgs,
	RunE: runClear,
}

func init() {
	clearCmd.Flags().Bool("force", false, "Do not ask for confirmation")
}

func runClear(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	if !force {
		fmt.Fprint(cmd.OutOrStdout(), "Put every note back in the jar? (y/N): ")
		var response string
		_, _ = fmt.Fscanln(cmd.InOrStdin(), &response)
		if strings.ToLower(response) != "y" {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	count := len(env.History())
	if err := env.Storage.Delete(env.Key); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	logger.Info("History cleared", logger.F("notes", count))
	fmt.Fprintf(cmd.OutOrStdout(), "🧹 Cleared %d opened note(s).\n", count)
	return nil
}
