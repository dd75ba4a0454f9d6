package config

// Version is the tool version reported by funvec --version.
// Can be set at build time using:
// -ldflags "-X github.com/funvibe/funvec/internal/config.Version=v0.3.0"
var Version = "dev"

// Subcommand names recognized by the CLI dispatcher.
const (
	ResolveCommand = "resolve"
	CastCommand    = "cast"
	CombineCommand = "combine"
	HelpCommand    = "help"
)
