package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// Register adds every subcommand to root and makes browsing its default
// action.
func Register(root *cli.Command, flags *Flags) *cli.Command {
	browseCmd := NewBrowseCmd(flags)

	root = browseCmd.Register(root)
	root = NewKeysCmd(flags).Register(root)
	root = NewMessagesCmd(flags).Register(root)
	root = NewDoctorCmd(flags).Register(root)
	root = NewConfigValidateCmd(flags).Register(root)

	root.Flags = append(root.Flags, browseCmd.Flags()...)
	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 1 {
			return fmt.Errorf("unexpected arguments %v. Run 'codeview --help' for usage", c.Args().Slice()[1:])
		}
		return browseCmd.Run(ctx, c)
	}
	return root
}

// GlobalFlags returns the flags shared by every command.
func GlobalFlags(flags *Flags) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error, fatal, panic)",
			Sources:     cli.EnvVars("CODEVIEW_LOG_LEVEL"),
			Value:       "info",
			Destination: &flags.LogLevel,
		},
		&cli.StringFlag{
			Name:        "log-file",
			Usage:       "path to log file (defaults to <data-dir>/codeview.log)",
			Sources:     cli.EnvVars("CODEVIEW_LOG_FILE"),
			Destination: &flags.LogFile,
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "path to config file",
			Sources:     cli.EnvVars("CODEVIEW_CONFIG"),
			Value:       DefaultConfigPath(),
			Destination: &flags.ConfigPath,
		},
		&cli.StringFlag{
			Name:        "data-dir",
			Usage:       "path to data directory",
			Sources:     cli.EnvVars("CODEVIEW_DATA_DIR"),
			Value:       DefaultDataDir(),
			Destination: &flags.DataDir,
		},
	}
}

const (
	AppName        = "codeview"
	AppUsage       = "Browse a repository version with keyboard navigation"
	AppUsageText   = "codeview [global options] [command [command options]] [dir]"
	AppDescription = `codeview opens a terminal code browser on a git ref of a repository.

Move between files, changes against a base ref and linter messages with single
keys. Run 'codeview keys' for the key table.

Run 'codeview' with no arguments to browse the current directory at HEAD.`
)
