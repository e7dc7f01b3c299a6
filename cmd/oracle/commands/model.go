package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.trai.ch/oracle/internal/core/domain"
	"go.trai.ch/oracle/internal/engine/modelcache"
)

var headingStyle = lipgloss.NewStyle().Bold(true)

// modelReport is the JSON form of a derived model.
type modelReport struct {
	Project     string                   `json:"project"`
	Root        string                   `json:"root"`
	Fingerprint string                   `json:"fingerprint,omitempty"`
	BuiltAt     time.Time                `json:"builtAt"`
	Packages    []string                 `json:"packages"`
	Types       []domain.TypeEntry       `json:"types"`
	Stats       *modelcache.Stats        `json:"stats,omitempty"`
	Telemetry   *domain.TelemetrySummary `json:"telemetry,omitempty"`
}

type cacheCounters struct {
	stats     modelcache.Stats
	telemetry domain.TelemetrySummary
}

type modelOptions struct {
	json         bool
	events       bool
	dependencies bool
	stats        bool
}

func (c *CLI) newModelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model [path]",
		Short: "Print the derived type model of the project containing path",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}

			var opts modelOptions
			opts.json, _ = cmd.Flags().GetBool("json")
			opts.events, _ = cmd.Flags().GetBool("events")
			opts.dependencies, _ = cmd.Flags().GetBool("dependencies")
			opts.stats, _ = cmd.Flags().GetBool("stats")

			model, err := c.app.Model(cmd.Context(), path)
			if err != nil {
				return err
			}

			var counters *cacheCounters
			if opts.stats {
				counters = &cacheCounters{stats: c.app.Stats(), telemetry: c.app.Telemetry()}
			}

			if opts.json {
				return writeModelJSON(cmd.OutOrStdout(), model, selectTypes(model, opts), counters)
			}
			return writeModelText(cmd.OutOrStdout(), model, selectTypes(model, opts), counters)
		},
	}
	cmd.Flags().Bool("json", false, "Print the model as JSON")
	cmd.Flags().BoolP("events", "e", false, "Only list event types")
	cmd.Flags().BoolP("dependencies", "d", false, "Only list types that come from dependencies")
	cmd.Flags().Bool("stats", false, "Include model cache counters")
	return cmd
}

func selectTypes(model *domain.DerivedModel, opts modelOptions) []domain.TypeEntry {
	types := model.Types()
	if opts.events {
		types = model.EventTypes()
	}
	if !opts.dependencies {
		return types
	}
	out := types[:0:0]
	for _, t := range types {
		if t.Origin == domain.OriginDependency {
			out = append(out, t)
		}
	}
	return out
}

func writeModelJSON(w io.Writer, model *domain.DerivedModel, types []domain.TypeEntry, counters *cacheCounters) error {
	if types == nil {
		types = []domain.TypeEntry{}
	}
	report := modelReport{
		Project:     model.Project().Name(),
		Root:        model.Project().Root(),
		Fingerprint: model.Fingerprint(),
		BuiltAt:     model.BuiltAt(),
		Packages:    model.Packages(),
		Types:       types,
	}
	if counters != nil {
		report.Stats = &counters.stats
		report.Telemetry = &counters.telemetry
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func writeModelText(w io.Writer, model *domain.DerivedModel, types []domain.TypeEntry, counters *cacheCounters) error {
	_, _ = fmt.Fprintln(w, headingStyle.Render(model.Project().Name()))
	_, _ = fmt.Fprintf(w, "root: %s\n", model.Project().Root())
	_, _ = fmt.Fprintf(w, "packages: %d  types: %d\n\n", len(model.Packages()), len(types))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tKIND\tORIGIN\tEVENT")
	for _, t := range types {
		kind := t.Kind
		if kind == "" {
			kind = "-"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.Name, kind, t.Origin, strconv.FormatBool(t.Event))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if counters != nil {
		stats := counters.stats
		_, _ = fmt.Fprintf(w, "\ncache: %d hits, %d misses, %d builds, %d evictions, %d invalidations\n",
			stats.Hits, stats.Misses, stats.Builds, stats.Evictions, stats.Invalidations)
		writeTelemetry(w, counters.telemetry)
	}
	return nil
}

func writeTelemetry(w io.Writer, summary domain.TelemetrySummary) {
	_, _ = fmt.Fprintf(w, "lookups: %d started, %d cached, %d failed, %d completed\n",
		summary.Started, summary.Cached, summary.Failed, summary.Completed)
}
