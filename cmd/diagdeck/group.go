package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"diagdeck/internal/diag"
	"diagdeck/internal/diagfmt"
	"diagdeck/internal/diagio"
	"diagdeck/internal/observ"
	"diagdeck/internal/trace"
	"diagdeck/internal/ui"
	"diagdeck/internal/version"
)

var groupCmd = &cobra.Command{
	Use:   "group [flags] [inputs...]",
	Short: "Classify diagnostics into filter groups and render them",
	Long: `Load diagnostics from files, directories, ** globs or stdin ("-", the default),
classify them into errors, warnings & info, and review, and render the result.
Inputs may be JSON, YAML, msgpack or LSP publishDiagnostics streams.`,
	RunE: runGroup,
}

func init() {
	groupCmd.Flags().String("format", "pretty", "output format (pretty|short|json|yaml|sarif)")
	groupCmd.Flags().String("groups", "all", "comma-separated groups to show (errors,warnings,review|all)")
	groupCmd.Flags().String("fail-on", "errors", "comma-separated groups that make the command exit 1 when non-empty")
	groupCmd.Flags().String("input-format", "auto", "input encoding (auto|json|yaml|msgpack|lsp)")
	groupCmd.Flags().Int("jobs", 0, "max parallel decoders (0=auto)")
	groupCmd.Flags().Bool("no-cache", false, "disable the decoded snapshot cache")
	groupCmd.Flags().Bool("no-dedup", false, "keep duplicate messages")
	groupCmd.Flags().String("path-mode", "auto", "path display (auto|absolute|relative|basename)")
	groupCmd.Flags().Int("width", 0, "truncate message text to this width in pretty output (0=unlimited)")
	groupCmd.Flags().Bool("show-empty", false, "print groups without messages")
	groupCmd.Flags().Bool("show-provider", false, "print the provider name after each message")
	groupCmd.Flags().String("filter-bar", "off", "print the group filter bar above pretty output (auto|on|off)")
}

// groupOptions holds the resolved flags and config of the group command.
type groupOptions struct {
	format       string
	groups       diag.GroupSet
	failOn       diag.GroupSet
	inputFormat  diagio.Format
	jobs         int
	cache        bool
	dedup        bool
	pathMode     diagfmt.PathMode
	width        int
	showEmpty    bool
	showProvider bool
	filterBar    bool
	max          int
	color        bool
	quiet        bool
	timings      bool
}

func readGroupOptions(cmd *cobra.Command) (groupOptions, error) {
	var opts groupOptions
	var err error

	if opts.format, err = stringSetting(cmd, "format", settings.Display.Format); err != nil {
		return opts, err
	}
	switch opts.format {
	case "pretty", "short", "json", "yaml", "sarif":
	default:
		return opts, fmt.Errorf("unknown format %q (expected pretty|short|json|yaml|sarif)", opts.format)
	}

	groupsStr, err := stringSetting(cmd, "groups", strings.Join(settings.Filter.Groups, ","))
	if err != nil {
		return opts, err
	}
	if opts.groups, err = diag.ParseGroupSet(groupsStr); err != nil {
		return opts, fmt.Errorf("invalid --groups: %w", err)
	}

	failOnStr, err := stringSetting(cmd, "fail-on", strings.Join(settings.Filter.FailOn, ","))
	if err != nil {
		return opts, err
	}
	if strings.TrimSpace(failOnStr) == "none" || strings.TrimSpace(failOnStr) == "" {
		opts.failOn = diag.NewGroupSet()
	} else if opts.failOn, err = diag.ParseGroupSet(failOnStr); err != nil {
		return opts, fmt.Errorf("invalid --fail-on: %w", err)
	}

	inputFormatStr, err := stringSetting(cmd, "input-format", settings.Load.Format)
	if err != nil {
		return opts, err
	}
	if opts.inputFormat, err = diagio.ParseFormat(inputFormatStr); err != nil {
		return opts, err
	}

	if opts.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return opts, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if !cmd.Flags().Changed("jobs") {
		opts.jobs = settings.Load.Jobs
	}

	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return opts, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	opts.cache = settings.Load.Cache && !noCache

	noDedup, err := cmd.Flags().GetBool("no-dedup")
	if err != nil {
		return opts, fmt.Errorf("failed to get no-dedup flag: %w", err)
	}
	opts.dedup = !noDedup

	pathModeStr, err := stringSetting(cmd, "path-mode", settings.Display.PathMode)
	if err != nil {
		return opts, err
	}
	if opts.pathMode, err = parsePathMode(pathModeStr); err != nil {
		return opts, err
	}

	if opts.width, err = cmd.Flags().GetInt("width"); err != nil {
		return opts, fmt.Errorf("failed to get width flag: %w", err)
	}
	if !cmd.Flags().Changed("width") {
		opts.width = settings.Display.Width
	}

	if opts.showEmpty, err = cmd.Flags().GetBool("show-empty"); err != nil {
		return opts, fmt.Errorf("failed to get show-empty flag: %w", err)
	}
	opts.showEmpty = opts.showEmpty || settings.Display.ShowEmpty

	if opts.showProvider, err = cmd.Flags().GetBool("show-provider"); err != nil {
		return opts, fmt.Errorf("failed to get show-provider flag: %w", err)
	}
	opts.showProvider = opts.showProvider || settings.Display.Provider

	barFlag, err := cmd.Flags().GetString("filter-bar")
	if err != nil {
		return opts, fmt.Errorf("failed to get filter-bar flag: %w", err)
	}
	barMode, err := readUIMode("filter-bar", barFlag)
	if err != nil {
		return opts, err
	}
	opts.filterBar = barMode.enabled(os.Stdout)

	if opts.max, err = maxDiagnostics(cmd); err != nil {
		return opts, err
	}
	if opts.color, err = useColor(cmd); err != nil {
		return opts, err
	}
	if opts.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return opts, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if opts.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return opts, nil
}

func parsePathMode(s string) (diagfmt.PathMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return diagfmt.PathModeAuto, nil
	case "absolute":
		return diagfmt.PathModeAbsolute, nil
	case "relative":
		return diagfmt.PathModeRelative, nil
	case "basename":
		return diagfmt.PathModeBasename, nil
	}
	return diagfmt.PathModeAuto, fmt.Errorf("invalid --path-mode value %q (expected auto|absolute|relative|basename)", s)
}

// runGroup executes the "group" command: load, classify, filter, render.
// It exits 1 (silently, output already printed) when a --fail-on group is
// non-empty after filtering.
func runGroup(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	opts, err := readGroupOptions(cmd)
	if err != nil {
		return err
	}

	ctx, span := trace.BeginCtx(cmd.Context(), trace.ScopeDriver, "group")
	defer span.End("")

	timer := observ.NewTimer()

	inputs := args
	if len(inputs) == 0 {
		inputs = []string{diagio.Stdin}
	}
	idx := timer.Begin("expand")
	paths, err := diagio.Expand(inputs)
	timer.End(idx, strconv.Itoa(len(paths))+" inputs")
	if err != nil {
		return err
	}

	loader := &diagio.Loader{
		Format: opts.inputFormat,
		Jobs:   opts.jobs,
		Stdin:  cmd.InOrStdin(),
	}
	if opts.cache {
		cache, cacheErr := diagio.OpenDiskCache("diagdeck")
		if cacheErr != nil {
			trace.Point(ctx, trace.ScopeDriver, "cache-disabled", cacheErr.Error())
		} else {
			loader.Cache = cache
		}
	}

	idx = timer.Begin("load")
	results, err := loader.Load(ctx, paths)
	timer.End(idx, "")
	if err != nil {
		return err
	}

	idx = timer.Begin("classify")
	all, err := diagio.Collect(results, 0)
	if err != nil {
		timer.End(idx, "")
		return err
	}
	shown := all.Filter(opts.groups)
	shown.Sort()
	if opts.dedup {
		shown.Dedup()
	}
	exitCode := 0
	for _, g := range opts.failOn.Members() {
		if shown.Has(g) {
			exitCode = 1
			break
		}
	}
	shown.Truncate(opts.max)
	timer.End(idx, strconv.Itoa(all.Len())+" messages")

	idx = timer.Begin("render")
	err = renderGroups(cmd.OutOrStdout(), all, shown, opts, args)
	timer.End(idx, opts.format)
	if err != nil {
		return err
	}

	if opts.timings {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	if exitCode != 0 {
		return errSilent
	}
	return nil
}

func renderGroups(out io.Writer, all, shown *diag.Bag, opts groupOptions, args []string) error {
	baseDir, err := os.Getwd()
	if err != nil {
		baseDir = ""
	}
	switch opts.format {
	case "short":
		return diagfmt.Short(out, shown)
	case "json", "yaml":
		jsonOpts := diagfmt.JSONOpts{
			PathMode:  opts.pathMode,
			BaseDir:   baseDir,
			ShowEmpty: opts.showEmpty,
		}
		if opts.format == "yaml" {
			return diagfmt.YAML(out, shown, jsonOpts)
		}
		return diagfmt.JSON(out, shown, jsonOpts)
	case "sarif":
		return diagfmt.Sarif(out, shown, diagfmt.SarifRunMeta{
			ToolName:       "diagdeck",
			ToolVersion:    version.Plain(),
			InvocationArgs: append([]string{"group"}, args...),
			PathMode:       opts.pathMode,
			BaseDir:        baseDir,
		})
	}

	if opts.filterBar && !opts.quiet {
		bar, err := ui.RenderFilterBar(all.Tally(), opts.groups, terminalWidth(os.Stdout))
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(out, "%s\n\n", bar); err != nil {
			return err
		}
	}
	if err := diagfmt.Pretty(out, shown, diagfmt.PrettyOpts{
		Color:        opts.color,
		PathMode:     opts.pathMode,
		BaseDir:      baseDir,
		Width:        opts.width,
		ShowEmpty:    opts.showEmpty,
		ShowProvider: opts.showProvider,
	}); err != nil {
		return err
	}
	if shown.Len() == 0 && !opts.showEmpty && !opts.quiet {
		_, err := fmt.Fprintln(out, "no diagnostics")
		return err
	}
	return nil
}

func terminalWidth(f *os.File) int {
	if !isTerminal(f) {
		return 0
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return w
}
