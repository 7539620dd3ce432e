package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/kdelaney/ghostline/internal/config"
	"github.com/kdelaney/ghostline/internal/store"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Snapshot database management commands",
	}

	cmd.AddCommand(newDBInitCmd())
	cmd.AddCommand(newDBResetCmd())
	return cmd
}

func newDBInitCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the snapshot database",
		Long:  "Creates the SQLite snapshot database and migrates all tables.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBInit(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to Ghostline config file")
	return cmd
}

func runDBInit(cmd *cobra.Command, configPath string) error {
	out := cmd.OutOrStdout()

	cfg, db, err := openStore(configPath)
	if err != nil {
		return err
	}

	if err := store.AutoMigrate(db); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated %d tables in %s\n", len(store.AllModels()), cfg.Database.Path)
	fmt.Fprintln(out, "Snapshot database initialized successfully.")
	return nil
}

func newDBResetCmd() *cobra.Command {
	var (
		configPath string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop and re-create the snapshot database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBReset(cmd, configPath, yes)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to Ghostline config file")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

func runDBReset(cmd *cobra.Command, configPath string, skipConfirm bool) error {
	out := cmd.OutOrStdout()

	cfg, db, err := openStore(configPath)
	if err != nil {
		return err
	}

	if !skipConfirm && !confirmReset(cmd, cfg.Database.Path) {
		fmt.Fprintln(out, "Aborted.")
		return nil
	}

	if err := store.Reset(db); err != nil {
		return err
	}
	fmt.Fprintf(out, "Snapshot database %s reset successfully.\n", cfg.Database.Path)
	return nil
}

// openStore loads the config and opens the snapshot database it names.
func openStore(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func confirmReset(cmd *cobra.Command, path string) bool {
	out := cmd.OutOrStdout()
	in := cmd.InOrStdin()

	fmt.Fprintf(out, "WARNING: This will permanently delete all snapshots in %q.\n", path)
	fmt.Fprint(out, "Type \"yes\" to confirm: ")

	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()) == "yes"
	}
	return false
}
