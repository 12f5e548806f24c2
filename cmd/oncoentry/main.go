package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"oncoentry/cmd/oncoentry/session"
	"oncoentry/internal/config"
	"oncoentry/internal/districts"
	"oncoentry/internal/record"
	"oncoentry/internal/store"
)

// version is set at build time via -ldflags
var version = "dev"

var (
	cfgFile       string
	dataDir       string
	districtsFile string
	logFile       string
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "oncoentry",
		Short:   "Digitize breast-cancer case-report forms",
		Long:    "Interactive entry of paper case-report forms: baseline visit, treatment cycles and final follow-up, saved as one JSON record per patient.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, closeLog, err := setup()
			if err != nil {
				return err
			}
			defer closeLog()

			log.Info().Str("version", version).Str("data_dir", cfg.DataDir).
				Msg("session starting")

			st := store.New(cfg.DataDir, log)
			list := districts.LoadOrFallback(cfg.DistrictsFile)

			err = session.Run(st, list, log)
			if err != nil {
				log.Error().Err(err).Msg("session ended with error")
				return err
			}
			log.Info().Msg("session ended")
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory for patient records")
	rootCmd.PersistentFlags().StringVar(&districtsFile, "districts", "", "district list file")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file, relative to the data directory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded patients",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, closeLog, err := setup()
			if err != nil {
				return err
			}
			defer closeLog()

			st := store.New(cfg.DataDir, zerolog.Nop())
			ids, err := st.Patients()
			if err != nil {
				return err
			}
			for _, id := range ids {
				rec, err := st.Load(id)
				if err != nil {
					return err
				}
				status := "open"
				if rec.FinalFollowup != nil {
					status = "closed"
				} else if rec.Baseline != nil && rec.Baseline.TreatmentStarted == record.No {
					status = "closed"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tcycles: %d\t%s\n", id, len(rec.Cycles), status)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d patient(s) recorded\n", len(ids))
			return nil
		},
	}
	rootCmd.AddCommand(listCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup resolves configuration, validates the data directory and opens the
// session log. The TUI owns the terminal, so the log goes to a file only.
func setup() (*config.Config, zerolog.Logger, func(), error) {
	cfg, err := config.Load(cfgFile, map[string]string{
		"data_dir":       dataDir,
		"districts_file": districtsFile,
		"log_file":       logFile,
	})
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, zerolog.Nop(), nil, err
	}

	f, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, zerolog.Nop(), nil, fmt.Errorf("opening log file %s: %w", cfg.LogPath(), err)
	}

	log := zerolog.New(f).With().
		Timestamp().
		Str("session_id", uuid.NewString()).
		Logger()

	return cfg, log, func() { _ = f.Close() }, nil
}
