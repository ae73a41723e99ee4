package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"office-pump/internal/catalog"
	"office-pump/internal/dialect"
	"office-pump/internal/estimate"
	"office-pump/internal/report"
	"office-pump/internal/schema"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	sizesTop    int
	sizesDryRun bool
)

var sizesCmd = &cobra.Command{
	Use:   "sizes [name-fragment]",
	Short: "Estimate the storage footprint of every local table",
	Long: `Attaches to a database, ranks its local user tables by estimated size and
writes <db>_table_sizes_<timestamp>.csv. System and linked tables are skipped.
The optional name fragment only warns when the attached database does not match.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := runLogger("sizes")

		src, strategy, err := catalog.Discover(ctx, log, dbProviders()...)
		if err != nil {
			return err
		}
		defer src.Close()

		label := src.Label()
		if len(args) == 1 && !strings.Contains(strings.ToLower(label), strings.ToLower(args[0])) {
			log.Warnf("attached database %q does not match %q, proceeding with it", label, args[0])
		}

		d := dialect.GetDialect(src.cfg.Driver)
		cat := schema.NewCatalog(src.db, d, src.schema)
		fmt.Printf("Attached via %s | %s (%s) schema %s\n", strategy, label, src.cfg.Driver, cat.Schema())

		// Dry Run
		if sizesDryRun {
			tables, err := schema.Analyze(ctx, src.db, d, src.schema)
			if err != nil {
				return err
			}
			fmt.Println("Analysis Results:")
			for i, t := range tables {
				kind := "local"
				if t.IsLinked() {
					kind = "linked"
				}
				if !estimate.IsUserLocal(t.Table, d.SystemTablePrefix()) && !t.IsLinked() {
					kind = "system"
				}
				if t.Err != nil {
					fmt.Printf("[%02d] %-30s %-6s columns unreadable: %v\n", i+1, t.Name, kind, t.Err)
					continue
				}
				fmt.Printf("[%02d] %-30s %-6s %d column(s)\n", i+1, t.Name, kind, len(t.Columns))
			}
			return nil
		}

		cfg := loadEstimateConfig(d)
		est := estimate.New(cfg, log)

		candidates, _, err := est.Candidates(ctx, cat)
		if err != nil {
			return err
		}
		log.WithField("tables", len(candidates)).Info("estimating table sizes")
		start := time.Now()

		// Setup Progress Bar
		uiprogress.Start()
		bar := uiprogress.AddBar(max(len(candidates), 1)).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return "Estimating: "
		})

		results, sum, err := est.Estimate(ctx, cat, func() {
			bar.Incr()
		})
		uiprogress.Stop()
		if err != nil {
			return err
		}

		outDir := viper.GetString("estimate.out")
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return err
		}
		path := filepath.Join(outDir, report.SizesFileName(label, time.Now()))
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := report.WriteSizesCSV(f, results); err != nil {
			f.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}

		fmt.Println()
		report.PrintSizes(os.Stdout, results, sizesTop)
		report.PrintSizesSummary(os.Stdout, sum)
		fmt.Printf("\nSaved: %s\n", path)
		log.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Info("sizes done")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(sizesCmd)

	sizesCmd.Flags().IntVar(&sizesTop, "top", 0, "print only the N largest tables (CSV always has all)")
	sizesCmd.Flags().BoolVar(&sizesDryRun, "dry-run", false, "list tables and column counts without counting rows")
	sizesCmd.Flags().Int("avg-memo-chars", estimate.DefaultAvgLongTextChars, "assumed average characters of a long text value")
	sizesCmd.Flags().Float64("text-fill", estimate.DefaultTextFill, "assumed fill ratio of declared text columns")
	sizesCmd.Flags().String("out", ".", "directory for the CSV report")

	viper.BindPFlag("estimate.avg_long_text_chars", sizesCmd.Flags().Lookup("avg-memo-chars"))
	viper.BindPFlag("estimate.text_fill", sizesCmd.Flags().Lookup("text-fill"))
	viper.BindPFlag("estimate.out", sizesCmd.Flags().Lookup("out"))
}
