package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"office-pump/internal/ledger"
	"office-pump/internal/report"
	"office-pump/internal/workbook"

	"github.com/spf13/cobra"
)

var (
	exportPaths []string
	mtdPath     string
	mappingPath string
	ledgerOut   string
)

var consolidateCmd = &cobra.Command{
	Use:   "consolidate",
	Short: "Reconcile the P&L exports against the account mapping and aggregate per entity",
	Long: `Loads the daily P&L exports (ledger.export_glob, or --export), the optional
MTD adjustment workbook and the account mapping, assigns each line to one
entity and writes per-entity daily totals to a summary workbook.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := runLogger("consolidate")

		cfg, err := loadLedgerConfig()
		if err != nil {
			return err
		}
		// Flag > Config > Default
		if mtdPath != "" {
			cfg.MTD.Path = mtdPath
		}
		if mappingPath != "" {
			cfg.Mapping.Path = mappingPath
		}
		if ledgerOut != "" {
			cfg.Output = ledgerOut
		}

		exports, err := workbook.ResolveExports(cfg.ExportGlob, exportPaths)
		if err != nil {
			return err
		}
		log.WithField("files", len(exports)).Info("exports selected")

		res, err := ledger.NewConsolidator(cfg, log).Run(ledger.Inputs{
			Exports: exports,
			MTD:     cfg.MTD.Path,
			Mapping: cfg.Mapping.Path,
		})
		if err != nil {
			return err
		}

		if dir := filepath.Dir(cfg.Output); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		if err := report.WriteLedgerWorkbook(cfg.Output, res, cfg); err != nil {
			return err
		}

		report.PrintLedgerSummary(os.Stdout, res)
		fmt.Printf("\nSaved: %s\n", cfg.Output)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(consolidateCmd)

	consolidateCmd.Flags().StringSliceVar(&exportPaths, "export", nil, "export workbook(s), overriding ledger.export_glob")
	consolidateCmd.Flags().StringVar(&mtdPath, "mtd", "", "MTD adjustment workbook")
	consolidateCmd.Flags().StringVar(&mappingPath, "mapping", "", "account mapping workbook")
	consolidateCmd.Flags().StringVarP(&ledgerOut, "out", "o", "", "output workbook")
}
