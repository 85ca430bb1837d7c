package main

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Address and drive a loaded animation's controls from the command line"
	MsgListShort       = "List the controls of a scene"
	MsgListLong        = "List builds the control registry for a scene and prints every addressable path with its kind and current value."
	MsgGetShort        = "Print the current value of one control"
	MsgSetShort        = "Dispatch a value to one control"
	MsgSetLong         = "Set parses the value, dispatches it to the control at the given path and prints the outcome. A rejected dispatch exits non-zero; the runtime keeps its prior state."
	MsgFireShort       = "Fire a trigger input"
	MsgApplyShort      = "Apply a snapshot of control values"
	MsgApplyLong       = "Apply dispatches every entry of a snapshot file independently and prints a per-path report. Rejected paths never block the rest; there is no rollback."
	MsgWatchShort      = "Apply a snapshot and stream the runtime events it causes"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgDispatched   = "dispatched"
	MsgImageErrors  = "image substitution errors:"
	MsgWatchWaiting = "watching for events"

	// Error messages
	MsgErrLoadScene    = "failed to load scene: %w"
	MsgErrLoadSnapshot = "failed to load snapshot: %w"
	MsgErrLoadConfig   = "failed to load configuration: %w"
	MsgErrDispatch     = "dispatch rejected: %w"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat   = "Output format (text, json, xml)"
	MsgFlagDuration = "How long to keep streaming events after the snapshot is applied"
)
