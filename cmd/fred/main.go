// Command fred provides a CLI for the St. Louis Fed FRED API.
package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/henrybloomingdale/fred-cli/internal/fred"
	"github.com/henrybloomingdale/fred-cli/internal/output"
	"github.com/henrybloomingdale/fred-cli/internal/stlouisfed"
)

var (
	flagJSON     bool
	flagHuman    bool
	flagXML      bool
	flagThrottle bool
	flagVerbose  bool
	flagAPIKey   string
	flagRPS      float64
	flagParams   []string
	flagID       string
	flagStart    string
	flagEnd      string
	flagSort     string
	flagSearch   string
	flagLimit    int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fred",
	Short: "FRED economic data CLI",
	Long:  `A command-line interface for retrieving economic data series, releases, categories, sources, and tags from the St. Louis Fed FRED API.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as indented JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagHuman, "human", "H", false, "Rich colorful terminal output")
	rootCmd.PersistentFlags().BoolVar(&flagXML, "xml", false, "Request and print the raw XML reply")
	rootCmd.PersistentFlags().BoolVar(&flagThrottle, "throttle", false, "Pace requests to stay under the FRED rate limit")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug-level logging")
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "FRED API key (or set FRED_API_KEY env var)")
	rootCmd.PersistentFlags().Float64Var(&flagRPS, "rps", 0, "Hard requests-per-second ceiling (0 disables)")
	rootCmd.PersistentFlags().StringArrayVar(&flagParams, "param", nil, "Extra API parameter as key=value (repeatable)")
	rootCmd.PersistentFlags().StringVar(&flagID, "id", "", "Resource ID (renamed to the endpoint's <resource>_id)")
	rootCmd.PersistentFlags().StringVar(&flagStart, "start", "", "Real-time period start (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&flagEnd, "end", "", "Real-time period end (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&flagSort, "sort", "", "Sort order: asc or desc")
	rootCmd.PersistentFlags().StringVar(&flagSearch, "search-text", "", "Search text (search sub-paths)")
	rootCmd.PersistentFlags().IntVar(&flagLimit, "limit", 0, "Maximum number of results")

	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(releaseCmd)
	rootCmd.AddCommand(releasesCmd)
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(sourceCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(tagsCmd)
}

// newLogger creates the diagnostics logger, debug-level with --verbose.
func newLogger() *charmlog.Logger {
	level := charmlog.WarnLevel
	if flagVerbose {
		level = charmlog.DebugLevel
	}
	return charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func outputCfg() output.OutputConfig {
	return output.OutputConfig{
		JSON:  flagJSON,
		Human: flagHuman,
	}
}

func newClient() *fred.Client {
	opts := []fred.Option{fred.WithLogger(newLogger())}
	if flagAPIKey != "" {
		opts = append(opts, fred.WithAPIKey(flagAPIKey))
	}
	if flagXML {
		opts = append(opts, fred.WithXMLOutput())
	}
	if flagRPS > 0 {
		opts = append(opts, fred.WithRateLimit(flagRPS))
	}
	return fred.NewClient(opts...)
}

// buildParams assembles the outgoing parameters from the shorthand flags and
// any --param pairs. Renaming (id, start, end, sort) happens in the client.
func buildParams() (url.Values, error) {
	p := url.Values{}
	for _, kv := range flagParams {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --param %q, expected key=value", kv)
		}
		p.Set(key, value)
	}
	if flagID != "" {
		p.Set("id", flagID)
	}
	if flagStart != "" {
		p.Set("start", flagStart)
	}
	if flagEnd != "" {
		p.Set("end", flagEnd)
	}
	if flagSort != "" {
		p.Set("sort", flagSort)
	}
	if flagSearch != "" {
		p.Set("search_text", flagSearch)
	}
	if flagLimit > 0 {
		p.Set("limit", strconv.Itoa(flagLimit))
	}
	return p, nil
}

// endpointFunc is the shared shape of the fred.Client resource methods.
type endpointFunc func(context.Context, string, url.Values, ...fred.CallOption) (*stlouisfed.Outcome, error)

func runResource(cmd *cobra.Command, args []string, call endpointFunc) error {
	params, err := buildParams()
	if err != nil {
		return err
	}

	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	var callOpts []fred.CallOption
	if flagThrottle {
		callOpts = append(callOpts, fred.WithThrottle())
	}
	if flagXML {
		callOpts = append(callOpts, fred.AsXML())
	}

	out, err := call(cmd.Context(), path, params, callOpts...)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	return output.FormatOutcome(os.Stdout, out, outputCfg())
}

// categoryCmd implements the category subcommand.
var categoryCmd = &cobra.Command{
	Use:   "category [path]",
	Short: "Get a specific category",
	Long:  `Get a category of economic data, or one of its sub-resources (children, series, related).`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResource(cmd, args, newClient().Category)
	},
}

// releaseCmd implements the release subcommand.
var releaseCmd = &cobra.Command{
	Use:   "release [path]",
	Short: "Get a release of economic data",
	Long:  `Get a single release of economic data, or one of its sub-resources (dates, series, sources).`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResource(cmd, args, newClient().Release)
	},
}

// releasesCmd implements the releases subcommand.
var releasesCmd = &cobra.Command{
	Use:   "releases [path]",
	Short: "Get all releases of economic data",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResource(cmd, args, newClient().Releases)
	},
}

// seriesCmd implements the series subcommand.
var seriesCmd = &cobra.Command{
	Use:   "series [path]",
	Short: "Get economic series of data",
	Long:  `Get an economic data series, or one of its sub-resources (search, observations, categories, updates).`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResource(cmd, args, newClient().Series)
	},
}

// sourceCmd implements the source subcommand.
var sourceCmd = &cobra.Command{
	Use:   "source [path]",
	Short: "Get a single source of economic data",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResource(cmd, args, newClient().Source)
	},
}

// sourcesCmd implements the sources subcommand.
var sourcesCmd = &cobra.Command{
	Use:   "sources [path]",
	Short: "Get all of FRED's sources of economic data",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResource(cmd, args, newClient().Sources)
	},
}

// tagsCmd implements the tags subcommand.
var tagsCmd = &cobra.Command{
	Use:   "tags [path]",
	Short: "Get all FRED tags, or search for tags by name",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResource(cmd, args, newClient().Tags)
	},
}
