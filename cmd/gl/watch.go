package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/kdelaney/ghostline/internal/config"
	"github.com/kdelaney/ghostline/internal/store"
)

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

func newWatchCmd() *cobra.Command {
	var (
		configPath   string
		includeMedia bool
		every        string
		save         bool
	)

	cmd := &cobra.Command{
		Use:   "watch <chat.txt>",
		Short: "Re-analyze a chat export on a schedule",
		Long:  "Re-runs the full analysis pipeline on a cron schedule, printing a summary each run. Each run re-parses the whole file; nothing is patched incrementally.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatchFile(cmd, args[0], configPath, includeMedia,
				cmd.Flags().Changed("include-media"), every, save)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to Ghostline config file")
	cmd.Flags().BoolVar(&includeMedia, "include-media", false, "keep media placeholder messages")
	cmd.Flags().StringVar(&every, "every", "0 * * * *", "5-field cron schedule for re-analysis")
	cmd.Flags().BoolVar(&save, "save", false, "store a snapshot after each run")
	return cmd
}

func runWatchFile(cmd *cobra.Command, path, configPath string, includeMedia, includeMediaSet bool, every string, save bool) error {
	out := cmd.OutOrStdout()

	sched, err := cronParser.Parse(every)
	if err != nil {
		return fmt.Errorf("parse --every %q: %w", every, err)
	}

	var db *gorm.DB
	if save {
		_, db, err = openStore(configPath)
		if err != nil {
			return err
		}
		if err := store.AutoMigrate(db); err != nil {
			return err
		}
	}

	runOnce := func() {
		analytics, err := parseFile(path, configPath, includeMedia, includeMediaSet)
		if err != nil {
			fmt.Fprintf(out, "[%s] analysis failed: %v\n", time.Now().Format("15:04:05"), err)
			return
		}
		fmt.Fprintf(out, "[%s] %s: %s messages, %d participants\n",
			time.Now().Format("15:04:05"), path,
			formatCount(analytics.TotalMessages), len(analytics.Participants))

		if db != nil {
			snap, err := store.SaveSnapshot(db, "", path, includeMedia, analytics)
			if err != nil {
				fmt.Fprintf(out, "  snapshot failed: %v\n", err)
				return
			}
			fmt.Fprintf(out, "  snapshot %d saved\n", snap.ID)
		}
	}

	fmt.Fprintf(out, "Watching %s on schedule %q... (Ctrl+C to stop)\n", path, every)
	runOnce()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	for {
		next := sched.Next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
			runOnce()
		}
	}
}
