package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/kdelaney/ghostline/internal/chatparse"
	"github.com/kdelaney/ghostline/internal/config"
	"github.com/kdelaney/ghostline/internal/metrics"
	"github.com/kdelaney/ghostline/internal/models"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		configPath   string
		includeMedia bool
		month        string
		jsonOut      string
		totals       bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <chat.txt>",
		Short: "Parse a chat export and print monthly metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args[0], analyzeOpts{
				configPath:      configPath,
				includeMedia:    includeMedia,
				includeMediaSet: cmd.Flags().Changed("include-media"),
				month:           month,
				jsonOut:         jsonOut,
				totals:          totals,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to Ghostline config file")
	cmd.Flags().BoolVar(&includeMedia, "include-media", false, "keep media placeholder messages")
	cmd.Flags().StringVar(&month, "month", "", `limit output to one month, e.g. "Oct 2025"`)
	cmd.Flags().StringVar(&jsonOut, "json", "", "also write the full analytics object to a JSON file")
	cmd.Flags().BoolVar(&totals, "totals", false, "print all-time totals instead of monthly buckets")
	return cmd
}

type analyzeOpts struct {
	configPath      string
	includeMedia    bool
	includeMediaSet bool
	month           string
	jsonOut         string
	totals          bool
}

func runAnalyze(cmd *cobra.Command, path string, opts analyzeOpts) error {
	out := cmd.OutOrStdout()

	analytics, err := parseFile(path, opts.configPath, opts.includeMedia, opts.includeMediaSet)
	if err != nil {
		return err
	}

	printSummary(out, path, analytics)

	if opts.totals {
		printTotals(out, metrics.Totals(analytics.Messages))
	} else {
		for _, ms := range analytics.MonthStats {
			if opts.month != "" && ms.MonthYear != opts.month {
				continue
			}
			printMonth(out, ms)
		}
	}

	if opts.jsonOut != "" {
		data, err := json.MarshalIndent(analytics, "", "  ")
		if err != nil {
			return fmt.Errorf("encode analytics: %w", err)
		}
		if err := os.WriteFile(opts.jsonOut, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", opts.jsonOut, err)
		}
		fmt.Fprintf(out, "\nAnalytics written to %s\n", opts.jsonOut)
	}

	return nil
}

// parseFile loads the config, reads the export, and runs the parse
// pipeline. The --include-media flag wins over the config value only
// when it was set explicitly.
func parseFile(path, configPath string, includeMedia, includeMediaSet bool) (*models.Analytics, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if !includeMediaSet {
		includeMedia = cfg.IncludeMedia
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return chatparse.Parse(string(data), includeMedia)
}

func printSummary(out io.Writer, path string, a *models.Analytics) {
	fmt.Fprintf(out, "%s: %s messages, %d participants, %s to %s\n",
		path,
		formatCount(a.TotalMessages),
		len(a.Participants),
		a.DateRange.Start.Format("Jan 2, 2006"),
		a.DateRange.End.Format("Jan 2, 2006"))
	if a.MediaMessages > 0 {
		fmt.Fprintf(out, "Media messages: %s\n", formatCount(a.MediaMessages))
	}
	if len(a.LineErrors) > 0 {
		fmt.Fprintf(out, "Skipped %d lines with unparseable dates\n", len(a.LineErrors))
	}
	fmt.Fprintln(out)
	for _, p := range a.Participants {
		fmt.Fprintf(out, "  %-24s %s messages\n", p.Name, formatCount(p.MessageCount))
	}
}

func printMonth(out io.Writer, ms models.MonthStats) {
	fmt.Fprintf(out, "\n%s\n", ms.MonthYear)

	for _, sender := range sortedKeys(ms.MessageFrequency) {
		line := fmt.Sprintf("  %-24s %4d msgs", sender, ms.MessageFrequency[sender])
		if avg, ok := ms.AverageResponseTime[sender]; ok {
			line += fmt.Sprintf("  avg reply %s", formatMinutes(avg))
		}
		if gap, ok := ms.LongestUnanswered[sender]; ok {
			line += fmt.Sprintf("  longest silence %s", formatMinutes(gap))
		}
		fmt.Fprintln(out, truncate(line, terminalWidth()))
	}

	if hour, count := peakHour(ms.ActiveHours); count > 0 {
		fmt.Fprintf(out, "  busiest hour: %02d:00 (%d messages)\n", hour, count)
	}
}

func printTotals(out io.Writer, t models.Totals) {
	fmt.Fprintf(out, "\nAll-time totals\n")
	for _, sender := range sortedKeys(t.Frequency) {
		line := fmt.Sprintf("  %-24s %s msgs", sender, formatCount(t.Frequency[sender]))
		if avg, ok := t.AverageResponseTime[sender]; ok {
			line += fmt.Sprintf("  avg reply %s", formatMinutes(avg))
		}
		if gap, ok := t.LongestUnanswered[sender]; ok {
			line += fmt.Sprintf("  longest silence %s", formatMinutes(gap))
		}
		fmt.Fprintln(out, truncate(line, terminalWidth()))
	}
	if hour, count := peakHour(t.ActiveHours); count > 0 {
		fmt.Fprintf(out, "  busiest hour: %02d:00 (%d messages)\n", hour, count)
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// peakHour returns the busiest hour and its count, preferring the
// earlier hour on ties.
func peakHour(hours map[int]int) (int, int) {
	bestHour, bestCount := 0, 0
	for h := 0; h < 24; h++ {
		if hours[h] > bestCount {
			bestHour, bestCount = h, hours[h]
		}
	}
	return bestHour, bestCount
}
