package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rampantspark/genpass/internal/category"
	"github.com/rampantspark/genpass/internal/engine"
	"github.com/rampantspark/genpass/internal/export"
	"github.com/rampantspark/genpass/internal/stats"
	"github.com/rampantspark/genpass/internal/ui"
)

type generateOptions struct {
	category     string
	count        int
	previewLimit int
	save         bool
	outputDir    string
	preview      bool
	quiet        bool
}

func newGenerateCmd(c *cli) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate [category]",
		Short: "Generate items and print them",
		Long: "Generate items of one category and print them one per line.\n\n" +
			"Categories: " + categoryNames() + ".",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, c, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.category, "category", "c", defaultCategory, "category to generate")
	cmd.Flags().IntVarP(&opts.count, "count", "n", defaultCount, "number of items")
	cmd.Flags().IntVar(&opts.previewLimit, "preview-limit", engine.DefaultPreviewLimit, "items kept in the preview")
	cmd.Flags().BoolVar(&opts.save, "save", false, "save all items to a file")
	cmd.Flags().StringVarP(&opts.outputDir, "out", "o", defaultOutputDir, "directory for saved files")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "print only the preview")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "do not print items")

	return cmd
}

func runGenerate(cmd *cobra.Command, c *cli, opts *generateOptions, args []string) error {
	gen := c.file.Generate
	applyStringConfig(cmd, "category", &opts.category, gen.Category)
	applyIntConfig(cmd, "count", &opts.count, gen.Count)
	applyIntConfig(cmd, "preview-limit", &opts.previewLimit, gen.PreviewLimit)
	applyStringConfig(cmd, "out", &opts.outputDir, gen.OutputDir)

	name := opts.category
	if len(args) == 1 {
		name = args[0]
	}
	cat, err := category.Parse(name)
	if err != nil {
		return err
	}
	if opts.count < 0 {
		return fmt.Errorf("--count must be >= 0")
	}
	if opts.previewLimit < 0 {
		return fmt.Errorf("--preview-limit must be >= 0")
	}

	eng := engine.New(
		engine.WithPreviewLimit(opts.previewLimit),
		engine.WithLogger(c.logger),
	)
	res, err := eng.Generate(cat, uint(opts.count))
	if err != nil {
		return err
	}

	if !opts.quiet {
		if err := writeItems(cmd.OutOrStdout(), res, opts.preview); err != nil {
			return err
		}
	}

	var savedPath string
	if opts.save {
		savedPath, err = export.Save(opts.outputDir, res)
		switch {
		case errors.Is(err, export.ErrNothingToSave):
			c.logger.Warn("Nothing to save", "category", res.Category.String(), "count", res.Count)
		case err != nil:
			return err
		}
	}

	fmt.Fprintln(cmd.ErrOrStderr(), ui.GenerateSummary(res, savedPath))
	if opts.preview && res.PreviewItems < int(res.Count) {
		fmt.Fprintf(cmd.ErrOrStderr(), "showing the first %d of %d items\n", res.PreviewItems, res.Count)
	}

	if c.history {
		c.recordGeneration(cmd.Context(), res)
	}
	return nil
}

// writeItems prints the raw buffer, or the preview with its break markers
// turned back into plain newlines.
func writeItems(w io.Writer, res *engine.Result, preview bool) error {
	out := res.Raw
	if preview {
		out = strings.ReplaceAll(res.Preview, engine.PreviewBreak, "\n")
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// recordGeneration stores run metadata. Failures are logged only; the
// items were already delivered.
func (c *cli) recordGeneration(ctx context.Context, res *engine.Result) {
	if ctx == nil {
		ctx = context.Background()
	}
	mgr, err := c.openStats(false)
	if err != nil {
		c.logger.Warn("History not recorded", "error", err)
		return
	}
	defer c.closeStats(mgr)

	if err := mgr.RecordGeneration(ctx, stats.FromResult(res, stats.ClientCLI)); err != nil {
		c.logger.Warn("History not recorded", "error", err)
	}
}

func categoryNames() string {
	all := category.All()
	names := make([]string, len(all))
	for i, cat := range all {
		names[i] = cat.String()
	}
	return strings.Join(names, ", ")
}
