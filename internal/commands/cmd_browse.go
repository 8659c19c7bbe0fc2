package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/codeview/internal/core/nav"
	"github.com/colonyops/codeview/internal/tui/browse"
	"github.com/colonyops/codeview/pkg/profiler"
)

// ErrNotATerminal is returned when browse is started without a TTY.
var ErrNotATerminal = errors.New("browse needs an interactive terminal")

type BrowseCmd struct {
	flags        *Flags
	ref          string
	compare      string
	mergeBase    bool
	lint         string
	at           string
	profilerPort int
}

// NewBrowseCmd creates a new browse command
func NewBrowseCmd(flags *Flags) *BrowseCmd {
	return &BrowseCmd{flags: flags}
}

// Flags returns the browse flags. They are also registered on the root
// command, which browses when no subcommand is given.
func (cmd *BrowseCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "ref",
			Usage:       "git ref to browse",
			Value:       "HEAD",
			Destination: &cmd.ref,
		},
		&cli.StringFlag{
			Name:        "compare",
			Usage:       "base ref to compare against; enables n/p change navigation",
			Destination: &cmd.compare,
		},
		&cli.BoolFlag{
			Name:        "merge-base",
			Usage:       "compare against the merge base of --compare and --ref",
			Destination: &cmd.mergeBase,
		},
		&cli.StringFlag{
			Name:        "lint",
			Usage:       "addons-linter JSON result file (overrides linter config)",
			Destination: &cmd.lint,
		},
		&cli.StringFlag{
			Name:        "at",
			Usage:       "start location, e.g. '/browse/1/?path=lib/a.js#L10'",
			Destination: &cmd.at,
		},
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("CODEVIEW_PROFILER_PORT"),
			Destination: &cmd.profilerPort,
		},
	}
}

func (cmd *BrowseCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "browse",
		Usage:     "Browse a repository version with keyboard navigation",
		UsageText: "codeview browse [options] [dir]",
		Description: `Opens the code browser on dir (defaults to the current directory).

Navigation keys: j/k next/previous file, n/p next/previous change (with
--compare), z/a next/previous linter message, e/o expand and c collapse the
file tree, h toggle the side panel.`,
		Flags:  cmd.Flags(),
		Action: cmd.Run,
	})
	return app
}

// Run executes the browser. Exported for use as default command.
func (cmd *BrowseCmd) Run(ctx context.Context, c *cli.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotATerminal
	}

	opts, err := cmd.options(c.Args().First())
	if err != nil {
		return err
	}

	if cmd.profilerPort > 0 {
		profServer := profiler.New(cmd.profilerPort)
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
		log.Info().
			Str("url", fmt.Sprintf("http://%s/debug/pprof/", profServer.Addr())).
			Msg("profiler endpoint available")
	}

	log.Info().
		Str("dir", opts.Dir).
		Str("ref", opts.Ref).
		Str("compare", opts.Compare).
		Bool("merge_base", opts.MergeBase).
		Msg("starting browser")

	p := tea.NewProgram(browse.New(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run browser: %w", err)
	}
	return nil
}

func (cmd *BrowseCmd) options(dirArg string) (browse.Options, error) {
	dir, err := repoDir(dirArg)
	if err != nil {
		return browse.Options{}, fmt.Errorf("resolve dir: %w", err)
	}

	loc, err := nav.ParseLocation(cmd.at)
	if err != nil {
		return browse.Options{}, fmt.Errorf("parse --at: %w", err)
	}

	return browse.Options{
		Config:   cmd.flags.Config,
		Dir:      dir,
		Ref:      cmd.ref,
		Compare:  cmd.compare,
		Lint:     cmd.lintSource(),
		Location: loc,
		Git:      cmd.flags.git(),
		Exec:     executor,

		MergeBase: cmd.mergeBase,
	}, nil
}

// lintSource picks the --lint file, then the configured result file, then
// the configured command.
func (cmd *BrowseCmd) lintSource() browse.LintSource {
	if cmd.lint != "" {
		return browse.LintSource{File: cmd.lint}
	}
	if f := cmd.flags.resultFile(); f != "" {
		return browse.LintSource{File: f}
	}
	return browse.LintSource{Command: cmd.flags.Config.Linter.Command}
}
