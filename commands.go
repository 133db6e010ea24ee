package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rampantspark/genpass/internal/config"
	"github.com/rampantspark/genpass/internal/ui"
)

const defaultHistoryLimit = 20

func newHistoryCmd(c *cli) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded generations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !c.history {
				return fmt.Errorf("history is disabled (set --history or [storage] history = true)")
			}
			if limit <= 0 {
				return fmt.Errorf("--limit must be > 0")
			}

			mgr, err := c.openStats(false)
			if err != nil {
				return err
			}
			defer c.closeStats(mgr)

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.SummaryLine(mgr.GetSummary(ctx)))
			fmt.Fprintln(out, ui.CategoryCountsTable(mgr.GetCategoryCounts(ctx)))
			fmt.Fprintln(out, ui.HistoryTable(mgr.GetRecent(ctx, limit)))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", defaultHistoryLimit, "number of recent generations")
	return cmd
}

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories and their character sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), ui.CategoriesTable()); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		},
	}
}

func newConfigCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create the config file and print its path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			created, err := writeConfigTemplate(c.configPath, c.defaults())
			if err != nil {
				return err
			}
			if created {
				c.logger.Info("Wrote config template", "path", c.configPath)
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.configPath)
			return nil
		},
	}
}

// writeConfigTemplate writes the commented template to path unless a file
// already exists there. Reports whether a file was written.
func writeConfigTemplate(path string, defaults config.Defaults) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat config: %w", err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(path), "config-*.toml")
	if err != nil {
		return false, fmt.Errorf("failed to create temp config: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.WriteString(config.Template(defaults)); err != nil {
		return false, fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return false, fmt.Errorf("failed to close config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return false, fmt.Errorf("failed to write config: %w", err)
	}
	return true, nil
}
