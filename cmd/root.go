package cmd

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"office-pump/internal/logging"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile    string
	dsn        string
	driverName string
	runID      string
)

var RootCmd = &cobra.Command{
	Use:   "office-pump",
	Short: "Office data tooling: table sizing and ledger consolidation",
	Long: `
  ___  _____ _____ ___ ____ _____   ____  _   _ __  __ ____
 / _ \|  ___|  ___|_ _/ ___| ____| |  _ \| | | |  \/  |  _ \
| | | | |_  | |_   | | |   |  _|   | |_) | | | | |\/| | |_) |
| |_| |  _| |  _|  | | |___| |___  |  __/| |_| | |  | |  __/
 \___/|_|   |_|   |___\____|_____| |_|    \___/|_|  |_|_|

OFFICE PUMP - table size estimates and P&L ledger consolidation
`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.SetLevel(viper.GetString("log.level"))
		runID = uuid.NewString()
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		logging.GetLogger().WithField("run", runID).Error(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Define flags
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./office-pump.yaml)")
	RootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "Database Source Name (DSN), overrides the databases list")
	RootCmd.PersistentFlags().StringVar(&driverName, "driver", "", "database driver for --dsn (mysql, postgres, sqlserver, oracle, sqlite)")
	RootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	viper.BindPFlag("log.level", RootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logging.GetLogger().WithError(err).Warn("failed to load .env")
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			exePath := filepath.Dir(ex)
			viper.AddConfigPath(exePath)
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("office-pump")
		viper.SetConfigType("yaml")
	}

	// LOG_LEVEL -> log.level, DATABASE_DSN -> database.dsn
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		logging.GetLogger().WithField("file", viper.ConfigFileUsed()).Info("using config file")
	}
}

// runLogger is the logger of one command run.
func runLogger(command string) *logrus.Entry {
	if runID == "" {
		runID = uuid.NewString()
	}
	return logging.GetLogger().WithFields(logrus.Fields{"run": runID, "cmd": command})
}
