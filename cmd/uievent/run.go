package uievent

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/uievent/internal/version"
	"github.com/arthur-debert/uievent/pkg/errors"
	"github.com/arthur-debert/uievent/pkg/report"
	"github.com/arthur-debert/uievent/pkg/scenario"
	"github.com/arthur-debert/uievent/pkg/tracing"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var scenarioExtensions = []string{".yaml", ".yml", ".toml"}

// resolveScenario loads arg as a file, then as a name in each of dirs,
// then as a builtin scenario name
func resolveScenario(arg string, dirs []string) (*scenario.Scenario, error) {
	if _, err := os.Stat(arg); err == nil {
		return scenario.Load(arg)
	}

	for _, dir := range dirs {
		for _, ext := range scenarioExtensions {
			path := filepath.Join(dir, arg+ext)
			if _, err := os.Stat(path); err == nil {
				log.Debug().Str("name", arg).Str("path", path).Msg("Resolved scenario from search path")
				return scenario.Load(path)
			}
		}
	}

	if b, err := scenario.LookupBuiltin(arg); err == nil {
		return b.Scenario, nil
	}

	return nil, errors.Newf(errors.ErrNotFound, MsgErrScenarioFound, arg).
		WithDetail("paths", dirs).
		WithDetail("builtins", scenario.BuiltinNames())
}

// collectScenarios resolves every argument, appending the builtin suite
// when there are none or when withBuiltin is set. Each source appears once.
func collectScenarios(args []string, withBuiltin bool, dirs []string) ([]*scenario.Scenario, error) {
	var out []*scenario.Scenario
	seen := map[string]bool{}
	add := func(sc *scenario.Scenario) {
		if seen[sc.Source] {
			log.Debug().Str("name", sc.Name).Str("source", sc.Source).Msg("Skipping repeated scenario")
			return
		}
		seen[sc.Source] = true
		out = append(out, sc)
	}

	for _, arg := range args {
		sc, err := resolveScenario(arg, dirs)
		if err != nil {
			return nil, err
		}
		add(sc)
	}
	if len(args) == 0 || withBuiltin {
		for _, sc := range scenario.Builtins() {
			add(sc)
		}
	}
	return out, nil
}

// closeOutput closes the report file at path
func closeOutput(file *os.File, path string) error {
	if err := file.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, MsgErrCloseOutput, path).
			WithDetail("path", path)
	}
	return nil
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	var (
		builtin       bool
		format        string
		output        string
		stopOnFailure bool
	)

	cmd := &cobra.Command{
		Use:               "run [scenarios...]",
		Short:             MsgRunShort,
		Long:              MsgRunLong,
		Example:           MsgRunExample,
		GroupID:           "core",
		ValidArgsFunction: builtinNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg

			if !cmd.Flags().Changed("format") {
				format = cfg.Output.Format
			}
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("stop-on-failure") {
				stopOnFailure = cfg.Scenarios.StopOnFailure
			}

			scenarios, err := collectScenarios(args, builtin, cfg.Scenarios.Paths)
			if err != nil {
				return err
			}

			shutdown, err := tracing.Setup(cmd.Context(), tracing.Options{
				Enabled:     cfg.Tracing.Enabled,
				Endpoint:    cfg.Tracing.Endpoint,
				ServiceName: cfg.Tracing.ServiceName,
				Version:     version.Version,
			})
			if err != nil {
				return err
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), cfg.Tracing.ShutdownTimeout)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Warn().Err(err).Msg("Failed to flush traces")
				}
			}()

			log.Info().Int("scenarios", len(scenarios)).Bool("stop_on_failure", stopOnFailure).Msg("Running scenarios")
			runner := scenario.NewRunner(scenario.Options{StopOnFailure: stopOnFailure})
			results, err := runner.RunAll(cmd.Context(), scenarios)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			dest, _ := w.(*os.File)
			var file *os.File
			if output != "" {
				file, err = os.Create(output)
				if err != nil {
					return errors.Wrapf(err, errors.ErrFileAccess, MsgErrOpenOutput, output).
						WithDetail("path", output)
				}
				w, dest = file, file
			}

			err = report.Render(w, results, report.Options{
				Format: report.Resolve(f, dest, cfg.Output.NoColor),
				Width:  cfg.Output.Width,
			})
			if file != nil {
				if cerr := closeOutput(file, output); err == nil {
					err = cerr
				}
			}
			if err != nil {
				return err
			}

			summary := scenario.Summarize(results)
			if !summary.Passed() {
				return errors.Newf(errors.ErrScenarioFailed, MsgErrRunFailed, summary.FailedScenarios, summary.Scenarios).
					WithDetail("summary", summary)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&builtin, "builtin", false, MsgFlagBuiltin)
	cmd.Flags().StringVarP(&format, "format", "f", "auto", MsgFlagFormat)
	cmd.Flags().StringVarP(&output, "output", "o", "", MsgFlagOutput)
	cmd.Flags().BoolVar(&stopOnFailure, "stop-on-failure", false, MsgFlagStopOnFailure)
	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return report.Formats(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "check <scenarios...>",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		Example: MsgCheckExample,
		Args:    cobra.MinimumNArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			invalid := 0
			for _, arg := range args {
				sc, err := resolveScenario(arg, opts.cfg.Scenarios.Paths)
				if err != nil {
					invalid++
					fmt.Fprintf(out, MsgCheckFailed, arg)
					problems, ok := errors.GetErrorDetails(err)["problems"].([]string)
					if !ok {
						problems = []string{err.Error()}
					}
					for _, p := range problems {
						fmt.Fprintf(out, MsgCheckProblem, p)
					}
					continue
				}
				fmt.Fprintf(out, MsgCheckOK, sc.Name, sc.Source)
			}
			if invalid > 0 {
				return errors.Newf(errors.ErrScenarioInvalid, MsgErrCheckFailed, invalid, len(args))
			}
			return nil
		},
	}
}
