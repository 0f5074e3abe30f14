package cli

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"lifeline/internal/common/fsutil"
	"lifeline/internal/config"
	"lifeline/internal/logging"
)

// configDirs are searched when --config is not given.
var configDirs = []string{".", "~/.config/lifeline"}

// env is what every action needs: resolved config, logger and output.
type env struct {
	cfg config.Config
	log zerolog.Logger
	out io.Writer
}

func newEnv(opts *Options, cmd *cobra.Command) (env, error) {
	cfg, err := resolveConfig(opts.ConfigPath)
	if err != nil {
		return env{}, err
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.LogFormat != "" {
		cfg.LogFormat = opts.LogFormat
	}
	return env{
		cfg: cfg,
		log: logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr()),
		out: cmd.OutOrStdout(),
	}, nil
}

// resolveConfig loads path, or the first discovered config file, over the
// defaults.
func resolveConfig(path string) (config.Config, error) {
	if path == "" {
		path = fsutil.FindConfig(configDirs...)
	}
	if path == "" {
		return config.Default(), nil
	}
	fileCfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return fileCfg.Merge(config.Default()), nil
}
