package uievent

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Run and check event dispatch scenarios"
	MsgRunShort        = "Run scenarios and report the results"
	MsgListShort       = "List the builtin scenarios"
	MsgListLong        = "List displays the builtin scenarios with their descriptions, or the step operations with --ops."
	MsgCheckShort      = "Validate scenarios without running them"
	MsgShowShort       = "Print the source of a builtin scenario"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort = "Generate shell completion script"

	// Output
	MsgListItem      = "  %-*s  %s\n"
	MsgBuiltinHeader = "Builtin scenarios:"
	MsgOpsHeader     = "Step operations:"
	MsgCheckOK       = "ok    %s (%s)\n"
	MsgCheckFailed   = "FAIL  %s\n"
	MsgCheckProblem  = "      %s\n"
	MsgConfigSource  = "# loaded from %s\n"
	MsgVersionFormat = "uievent %s (commit %s, built %s)\n"

	// Error messages
	MsgErrNoCommand     = "no command specified"
	MsgErrLoadConfig    = "failed to load configuration: %w"
	MsgErrOpenOutput    = "failed to create output file %s"
	MsgErrCloseOutput   = "failed to close output file %s"
	MsgErrScenarioFound = "no scenario file or builtin named %q"
	MsgErrRunFailed     = "%d of %d scenario(s) failed"
	MsgErrCheckFailed   = "%d of %d scenario(s) are invalid"
	MsgErrHelpNotFound  = "help command not found"

	// Flag descriptions
	MsgFlagVerbose       = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagNoColor       = "Disable styled output"
	MsgFlagConfig        = "Config file (default $XDG_CONFIG_HOME/uievent/config.toml)"
	MsgFlagBuiltin       = "Also run the builtin suite (the default without arguments)"
	MsgFlagFormat        = "Report format: auto, term, text, json or junit"
	MsgFlagOutput        = "Write the report to a file instead of stdout"
	MsgFlagStopOnFailure = "Stop a variant at its first failing step"
	MsgFlagOps           = "List step operations instead of scenarios"
	MsgFlagDefaults      = "Print the builtin defaults instead of the effective configuration"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/run-long.txt
	msgRunLongRaw string
	MsgRunLong    = strings.TrimSpace(msgRunLongRaw)

	//go:embed msgs/run-example.txt
	msgRunExampleRaw string
	MsgRunExample    = strings.TrimRight(msgRunExampleRaw, "\n")

	//go:embed msgs/check-long.txt
	msgCheckLongRaw string
	MsgCheckLong    = strings.TrimSpace(msgCheckLongRaw)

	//go:embed msgs/check-example.txt
	msgCheckExampleRaw string
	MsgCheckExample    = strings.TrimRight(msgCheckExampleRaw, "\n")

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
