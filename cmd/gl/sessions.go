package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/kdelaney/ghostline/internal/config"
	"github.com/kdelaney/ghostline/internal/sessions"
)

func newSessionsCmd() *cobra.Command {
	var (
		configPath   string
		includeMedia bool
		deadGap      float64
	)

	cmd := &cobra.Command{
		Use:   "sessions <chat.txt>",
		Short: "List conversation sessions and starter statistics",
		Long:  "Segments the chat into conversational sessions separated by inactivity gaps and shows who starts conversations.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessions(cmd, args[0], configPath, includeMedia,
				cmd.Flags().Changed("include-media"), deadGap,
				cmd.Flags().Changed("dead-gap"))
		},
		Args: cobra.ExactArgs(1),
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to Ghostline config file")
	cmd.Flags().BoolVar(&includeMedia, "include-media", false, "keep media placeholder messages")
	cmd.Flags().Float64Var(&deadGap, "dead-gap", sessions.DefaultDeadGapMinutes, "inactivity threshold in minutes that splits sessions")
	return cmd
}

func runSessions(cmd *cobra.Command, path, configPath string, includeMedia, includeMediaSet bool, deadGap float64, deadGapSet bool) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if !deadGapSet {
		deadGap = float64(cfg.DeadGapMinutes)
	}

	analytics, err := parseFile(path, configPath, includeMedia, includeMediaSet)
	if err != nil {
		return err
	}

	sess, _ := sessions.Build(analytics.Messages, deadGap)
	fmt.Fprintf(out, "%d sessions (dead gap %s)\n\n", len(sess), formatMinutes(deadGap))

	for _, s := range sess {
		gap := "start of chat"
		if s.PrecedingGapMinutes != nil {
			gap = fmt.Sprintf("after %s quiet", formatMinutes(*s.PrecedingGapMinutes))
		}
		fmt.Fprintf(out, "  #%-4d %s  %-24s %4d msgs  %s\n",
			s.ID,
			s.StartedAt.Format("2006-01-02 15:04"),
			truncate(s.Starter, 24),
			s.EndIndex-s.StartIndex+1,
			gap)
	}

	starts := sessions.StartsBySender(sess)
	names := make([]string, 0, len(starts))
	for name := range starts {
		names = append(names, name)
	}
	sort.Slice(names, func(a, b int) bool {
		if starts[names[a]] != starts[names[b]] {
			return starts[names[a]] > starts[names[b]]
		}
		return names[a] < names[b]
	})

	fmt.Fprintf(out, "\nConversation starters\n")
	for _, name := range names {
		share := float64(starts[name]) / float64(len(sess)) * 100
		fmt.Fprintf(out, "  %-24s %4d (%.0f%%)\n", name, starts[name], share)
	}

	return nil
}
