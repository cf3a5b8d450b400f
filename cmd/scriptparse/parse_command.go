package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"scriptparse/internal/api"
	"scriptparse/internal/archive"
	"scriptparse/internal/config"
	"scriptparse/internal/daemon"
	"scriptparse/internal/fixture"
)

type outputOptions struct {
	format  string
	indent  bool
	archive bool
}

func (o *outputOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", "json", "Output format: json or table")
	cmd.Flags().BoolVar(&o.indent, "indent", false, "Indent JSON output")
	cmd.Flags().BoolVar(&o.archive, "archive", false, "Record the run in the local archive")
}

func (o *outputOptions) validate() error {
	switch strings.ToLower(strings.TrimSpace(o.format)) {
	case "json", "table":
		return nil
	default:
		return fmt.Errorf("unsupported format %q (use json or table)", o.format)
	}
}

func newParseCommand(ctx *commandContext) *cobra.Command {
	var opts outputOptions

	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse a script from a file or stdin",
		Long: "Parse a script given as a JSON array of strings or as plain text with one line per entry.\n" +
			"Reads stdin when no file is given or the file is \"-\".",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			source := "-"
			if len(args) == 1 {
				source = args[0]
			}
			lines, err := readLines(cmd.InOrStdin(), source)
			if err != nil {
				return err
			}
			return runParse(cmd, ctx, opts, archive.SourceCLI, lines)
		},
	}
	opts.register(cmd)
	return cmd
}

func newFixtureCommand(ctx *commandContext) *cobra.Command {
	var opts outputOptions

	cmd := &cobra.Command{
		Use:   "fixture",
		Short: "Parse the configured fixture, as served at GET /test/",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			lines, err := fixture.Load(cfg.Paths.FixturePath)
			if errors.Is(err, fixture.ErrNotFound) {
				return fmt.Errorf("fixture not found at %s (set paths.fixture_path)", cfg.Paths.FixturePath)
			}
			if err != nil {
				return err
			}
			return runParse(cmd, ctx, opts, archive.SourceFixture, lines)
		},
	}
	opts.register(cmd)
	return cmd
}

func readLines(stdin io.Reader, source string) ([]string, error) {
	var (
		data []byte
		err  error
	)
	if source == "-" {
		data, err = io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
	} else {
		path, expandErr := config.ExpandPath(source)
		if expandErr != nil {
			return nil, expandErr
		}
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	return fixture.Decode(data)
}

func runParse(cmd *cobra.Command, ctx *commandContext, opts outputOptions, source archive.Source, lines []string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	var store *archive.Store
	if opts.archive {
		if !cfg.Archive.Enabled {
			return errors.New("archive is disabled in configuration")
		}
		store, err = archive.Open(cfg)
		if err != nil {
			return fmt.Errorf("open archive: %w", err)
		}
		defer store.Close()
	}

	processor, err := daemon.NewProcessor(cfg, store, nil, ctx.logger())
	if err != nil {
		return err
	}
	result, err := processor.Process(cmd.Context(), source, lines)
	if err != nil {
		return err
	}
	if opts.archive && result.RunID == "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "warn: run was not archived")
	}

	if strings.EqualFold(strings.TrimSpace(opts.format), "table") {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, renderScriptTable(result.Response))
		fmt.Fprintf(out, "Languages: %s\n", formatLanguages(result.Response.Languages))
		if result.RunID != "" {
			fmt.Fprintf(out, "Run: %s\n", result.RunID)
		}
		return nil
	}
	return writeRawJSON(cmd, result.Body, opts.indent)
}

func renderScriptTable(resp api.ScriptResponse) string {
	var rows [][]string
	for i, blk := range resp.Script {
		number := strconv.Itoa(i + 1)
		for _, meta := range blk.Meta {
			rows = append(rows, []string{number, "meta", meta})
		}
		for _, lang := range blk.Languages {
			rows = append(rows, []string{number, lang, blk.Text[lang]})
		}
		if len(blk.Meta) == 0 && len(blk.Languages) == 0 {
			rows = append(rows, []string{number, "", ""})
		}
	}
	return renderTable([]string{"Block", "Key", "Text"}, rows, []columnAlignment{alignRight, alignLeft, alignLeft})
}

func formatLanguages(languages []string) string {
	if len(languages) == 0 {
		return "none"
	}
	return strings.Join(languages, ", ")
}
