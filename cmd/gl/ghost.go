package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/kdelaney/ghostline/internal/config"
	"github.com/kdelaney/ghostline/internal/ghosting"
)

func newGhostCmd() *cobra.Command {
	var (
		configPath   string
		includeMedia bool
		target       string
		nowStr       string
	)

	cmd := &cobra.Command{
		Use:   "ghost <chat.txt>",
		Short: "Score each participant's disengagement risk",
		Long:  "Compares the last 30 days against the 30 days before them and estimates, per participant, how likely it is that they are ghosting the chat.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGhost(cmd, args[0], configPath, includeMedia,
				cmd.Flags().Changed("include-media"), target, nowStr)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to Ghostline config file")
	cmd.Flags().BoolVar(&includeMedia, "include-media", false, "keep media placeholder messages")
	cmd.Flags().StringVar(&target, "target", "", "score only this participant")
	cmd.Flags().StringVar(&nowStr, "now", "", "reference instant as RFC 3339 (default: wall clock)")
	return cmd
}

func runGhost(cmd *cobra.Command, path, configPath string, includeMedia, includeMediaSet bool, target, nowStr string) error {
	out := cmd.OutOrStdout()

	now := time.Now()
	if nowStr != "" {
		parsed, err := time.Parse(time.RFC3339, nowStr)
		if err != nil {
			return fmt.Errorf("parse --now: %w", err)
		}
		now = parsed
	}

	analytics, err := parseFile(path, configPath, includeMedia, includeMediaSet)
	if err != nil {
		return err
	}

	names := make([]string, len(analytics.Participants))
	for i, p := range analytics.Participants {
		names[i] = p.Name
	}

	if target != "" {
		found := false
		for _, n := range names {
			if n == target {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("participant %q not found in chat", target)
		}

		others := make([]string, 0, len(names)-1)
		for _, n := range names {
			if n != target {
				others = append(others, n)
			}
		}
		printScore(out, ghosting.Compute(analytics.Messages, target, others, now))
		return nil
	}

	for _, score := range ghosting.ComputeAll(analytics.Messages, names, now) {
		printScore(out, score)
	}
	return nil
}

func printScore(out io.Writer, s ghosting.Score) {
	fmt.Fprintf(out, "%s: %d/100 (%s risk)\n", s.Participant, s.Overall, s.Risk)
	fmt.Fprintf(out, "  frequency drop %d  response slowdown %d  gap increase %d",
		s.Factors.FrequencyDrop, s.Factors.ResponseTimeIncrease, s.Factors.GapIncrease)
	fmt.Fprintf(out, "  starter imbalance %d\n", s.Factors.StarterImbalance)
	fmt.Fprintf(out, "  messages: %d recent vs %d previous\n", s.Raw.RecentCount, s.Raw.PreviousCount)
	for _, insight := range s.Insights {
		fmt.Fprintf(out, "  - %s\n", insight)
	}
	fmt.Fprintln(out)
}
