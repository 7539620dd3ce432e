package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kdelaney/ghostline/internal/config"
	"github.com/kdelaney/ghostline/internal/store"
)

func newImportCmd() *cobra.Command {
	var (
		configPath   string
		includeMedia bool
		label        string
	)

	cmd := &cobra.Command{
		Use:   "import <chat.txt>",
		Short: "Analyze a chat export and store the result as a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], configPath, includeMedia,
				cmd.Flags().Changed("include-media"), label)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to Ghostline config file")
	cmd.Flags().BoolVar(&includeMedia, "include-media", false, "keep media placeholder messages")
	cmd.Flags().StringVarP(&label, "label", "l", "", "label for the stored snapshot")
	return cmd
}

func runImport(cmd *cobra.Command, path, configPath string, includeMedia, includeMediaSet bool, label string) error {
	out := cmd.OutOrStdout()

	cfg, db, err := openStore(configPath)
	if err != nil {
		return err
	}
	if err := store.AutoMigrate(db); err != nil {
		return err
	}
	if !includeMediaSet {
		includeMedia = cfg.IncludeMedia
	}

	analytics, err := parseFile(path, configPath, includeMedia, true)
	if err != nil {
		return err
	}

	snap, err := store.SaveSnapshot(db, label, path, includeMedia, analytics)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Snapshot %d saved: %s messages, %d participants, %s to %s\n",
		snap.ID,
		formatCount(snap.TotalMessages),
		snap.Participants,
		snap.RangeStart.Format("Jan 2, 2006"),
		snap.RangeEnd.Format("Jan 2, 2006"))
	return nil
}

func newHistoryCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored analysis snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to Ghostline config file")
	return cmd
}

func runHistory(cmd *cobra.Command, configPath string) error {
	out := cmd.OutOrStdout()

	_, db, err := openStore(configPath)
	if err != nil {
		return err
	}
	if err := store.AutoMigrate(db); err != nil {
		return err
	}

	snaps, err := store.ListSnapshots(db)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Fprintln(out, "No snapshots stored. Import one with \"gl import chat.txt\".")
		return nil
	}

	for _, s := range snaps {
		label := s.Label
		if label == "" {
			label = s.SourceFile
		}
		fmt.Fprintf(out, "  #%-4d %s  %-32s %s msgs  %d participants\n",
			s.ID,
			s.CreatedAt.Format("2006-01-02 15:04"),
			truncate(label, 32),
			formatCount(s.TotalMessages),
			s.Participants)
	}
	return nil
}
