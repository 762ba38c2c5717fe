package ir

// Version constants for the IR schema and the tool.
const (
	// IRVersion is the serialized IR schema version.
	IRVersion = "1"

	// ToolVersion is the sharpj version. Cached outputs are keyed by it.
	ToolVersion = "0.1.0"
)
