package browse

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/codeview/internal/core/compare"
	"github.com/colonyops/codeview/internal/core/git"
	"github.com/colonyops/codeview/internal/core/linter"
	"github.com/colonyops/codeview/internal/core/logging"
	"github.com/colonyops/codeview/internal/core/version"
	"github.com/colonyops/codeview/pkg/executil"
)

type versionLoadedMsg struct {
	version *version.Version
	err     error
}

type fileLoadedMsg struct {
	versionID int
	path      string
	content   []byte
	err       error
}

type comparisonLoadedMsg struct {
	comparison *compare.Comparison
	err        error
}

type lintLoadedMsg struct {
	result *linter.Result
	err    error
}

func loadVersionCmd(ctx context.Context, loader *version.Loader, dir, ref string) tea.Cmd {
	return func() tea.Msg {
		v, err := loader.Load(ctx, dir, ref)
		return versionLoadedMsg{version: v, err: err}
	}
}

func fetchFileCmd(ctx context.Context, g git.Git, dir, ref string, versionID int, path string) tea.Cmd {
	ctx = logging.WithPath(logging.WithVersionID(ctx, versionID), path)
	return func() tea.Msg {
		content, err := g.ShowFile(ctx, dir, ref, path)
		if err != nil {
			log.Warn().Ctx(ctx).Err(err).Str("ref", ref).Msg("fetch file")
		} else {
			log.Debug().Ctx(ctx).Int("bytes", len(content)).Msg("file fetched")
		}
		return fileLoadedMsg{versionID: versionID, path: path, content: content, err: err}
	}
}

func loadComparisonCmd(ctx context.Context, g git.Git, dir string, opts git.DiffOptions) tea.Cmd {
	return func() tea.Msg {
		diff, err := g.GetDiff(ctx, dir, opts)
		if err != nil {
			return comparisonLoadedMsg{err: err}
		}
		c, err := compare.Parse(opts.Base, opts.Ref, diff)
		return comparisonLoadedMsg{comparison: c, err: err}
	}
}

// LintSource says where linter results come from. File wins over Command.
type LintSource struct {
	File    string
	Command string
}

func (s LintSource) empty() bool {
	return s.File == "" && s.Command == ""
}

func loadLintCmd(ctx context.Context, exec executil.Executor, dir string, src LintSource) tea.Cmd {
	return func() tea.Msg {
		if src.File != "" {
			f, err := os.Open(src.File)
			if err != nil {
				return lintLoadedMsg{err: fmt.Errorf("open linter result: %w", err)}
			}
			defer func() { _ = f.Close() }()

			res, err := linter.Load(f, src.File)
			return lintLoadedMsg{result: res, err: err}
		}

		res, err := linter.RunCommand(ctx, exec, dir, src.Command)
		return lintLoadedMsg{result: res, err: err}
	}
}
