package cli

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

// EnvLogLevel overrides the level chosen by --verbose and --quiet.
const EnvLogLevel = "PAIRTONE_LOG_LEVEL"

// newLogger builds the command logger. Logs go to w, normally stderr, so
// they never mix with palette output.
func newLogger(w io.Writer, verbose, quiet bool) hclog.Logger {
	level := hclog.Info
	switch {
	case verbose:
		level = hclog.Debug
	case quiet:
		level = hclog.Error
	}
	if env := os.Getenv(EnvLogLevel); env != "" {
		if l := hclog.LevelFromString(env); l != hclog.NoLevel {
			level = l
		}
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "pairtone",
		Output: w,
		Level:  level,
	})
}

// loggerFor returns a logger configured from cmd's persistent flags.
func loggerFor(cmd *cobra.Command) hclog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")
	return newLogger(cmd.ErrOrStderr(), verbose, quiet)
}
