package cmd

import (
	"fmt"
	"strings"
	"time"

	"office-pump/internal/catalog"
	"office-pump/internal/dialect"
	"office-pump/internal/sample"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	sampleSeed int64

	sampleDir      string
	sampleDays     int
	sampleAccounts int

	count  int
	clean  bool
	dryRun bool
	tables []string
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Generate demo inputs for the other commands",
}

var sampleLedgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Write demo P&L exports, an MTD workbook and an account mapping",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := runLogger("sample ledger")

		cfg, err := loadLedgerConfig()
		if err != nil {
			return err
		}
		files, err := sample.GenerateLedger(sample.LedgerOptions{
			Dir:      sampleDir,
			Days:     sampleDays,
			Accounts: sampleAccounts,
			Seed:     sampleSeed,
		}, cfg)
		if err != nil {
			return err
		}

		log.WithField("exports", len(files.Exports)).Info("demo ledger written")
		for _, p := range files.Exports {
			fmt.Printf("Saved: %s\n", p)
		}
		fmt.Printf("Saved: %s\nSaved: %s\n", files.MTD, files.Mapping)
		fmt.Printf("\nTry: office-pump consolidate --export %s/PnL_*.xlsx --mtd %s --mapping %s\n", sampleDir, files.MTD, files.Mapping)
		return nil
	},
}

var sampleDBCmd = &cobra.Command{
	Use:   "db",
	Short: "Create demo tables and fill them with random data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := runLogger("sample db")

		src, strategy, err := catalog.Discover(ctx, log, dbProviders()...)
		if err != nil {
			return err
		}
		defer src.Close()
		fmt.Printf("Connected via %s | %s (%s)\n", strategy, src.Label(), src.cfg.Driver)

		// Fetch count from Viper (Flag > Config > Default)
		targetCount := viper.GetInt("sample.rows")

		// Filter tables strategy: flag, then all demo tables
		targetTables := sample.DemoTables()
		if len(tables) > 0 {
			reqTables := make(map[string]bool)
			for _, t := range tables {
				reqTables[strings.ToLower(t)] = true
			}
			var filtered []sample.Table
			for _, t := range targetTables {
				if reqTables[strings.ToLower(t.Name)] {
					filtered = append(filtered, t)
				}
			}
			if len(filtered) == 0 {
				return fmt.Errorf("no matching tables found for inputs: %v", tables)
			}
			targetTables = filtered
		}

		d := dialect.GetDialect(src.cfg.Driver)

		// Dry Run
		if dryRun {
			log.Info("dry-run: nothing will be written")
			for i, t := range targetTables {
				defs := make([]string, 0, len(t.Columns))
				for _, c := range t.Columns {
					defs = append(defs, c.Name+" "+d.ColumnType(c.Type, c.Size))
				}
				fmt.Printf("[%02d] %s (%s)\n", i+1, t.Name, strings.Join(defs, ", "))
			}
			return nil
		}

		seeder := sample.NewSeeder(src.db, d, src.schema, sample.NewValues(sampleSeed), log)
		if err := seeder.CreateTables(ctx, targetTables, clean); err != nil {
			return err
		}

		empty := map[string]bool{"Archive": true}
		total := 0
		for _, t := range targetTables {
			if !empty[t.Name] {
				total += targetCount
			}
		}

		log.Infof("starting pump with count=%d per table", targetCount)
		start := time.Now()

		// Setup Progress Bar
		uiprogress.Start()
		bar := uiprogress.AddBar(max(total, 1)).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return "Processing: "
		})

		results, err := seeder.Pump(ctx, targetTables, targetCount, empty, func() {
			bar.Incr()
		})
		uiprogress.Stop()
		if err != nil {
			return err
		}

		// Final Report
		fmt.Println("\nSummary Report:")
		inserted := 0
		for i, r := range results {
			icon := "✓"
			if r.Status != "OK" {
				icon = "!"
			}
			fmt.Printf("[%s] [%02d/%02d] %-20s : %d rows (Target: %d) - %s\n",
				icon, i+1, len(results), r.TableName, r.Actual, r.Target, r.Status)
			if r.ErrorMsg != "" {
				fmt.Printf("    └ Error: %s\n", r.ErrorMsg)
			}
			inserted += r.Actual
		}
		fmt.Println("--------------------------------------------------")
		fmt.Printf("Total Rows: %d\n", inserted)
		log.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Info("pump done")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(sampleCmd)
	sampleCmd.AddCommand(sampleLedgerCmd, sampleDBCmd)

	sampleCmd.PersistentFlags().Int64Var(&sampleSeed, "seed", 0, "random seed (0 picks one)")

	sampleLedgerCmd.Flags().StringVar(&sampleDir, "dir", "exports", "output directory")
	sampleLedgerCmd.Flags().IntVar(&sampleDays, "days", 5, "business days of exports")
	sampleLedgerCmd.Flags().IntVar(&sampleAccounts, "accounts", 40, "number of accounts")

	// CLI Flags
	sampleDBCmd.Flags().IntVar(&count, "count", 0, "Number of records to generate per table (overrides config)")
	sampleDBCmd.Flags().BoolVar(&clean, "clean", false, "Drop demo tables before creating them")
	sampleDBCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the table definitions without writing to DB")
	sampleDBCmd.Flags().StringSliceVarP(&tables, "tables", "t", []string{}, "Specific demo tables to create (comma-separated)")

	viper.BindPFlag("sample.rows", sampleDBCmd.Flags().Lookup("count"))
	viper.SetDefault("sample.rows", 100)
}
