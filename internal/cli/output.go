package cli

import (
	"github.com/rshade/trustboard/internal/config"
	"github.com/rshade/trustboard/internal/engine"
)

// resolveOutputFormat returns the --output value, or the configured
// default when the flag is empty.
func resolveOutputFormat(flagValue string) (engine.OutputFormat, error) {
	if flagValue == "" {
		flagValue = config.GetDefaultOutputFormat()
	}
	return engine.ParseOutputFormat(flagValue)
}
