package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/codeview/internal/core/linter"
	"github.com/colonyops/codeview/internal/core/nav"
	"github.com/colonyops/codeview/internal/core/styles"
	"github.com/colonyops/codeview/pkg/iojson"
)

// ErrNoLintSource is returned when no linter result is given or configured.
var ErrNoLintSource = errors.New("no linter result: use -f, pipe JSON, or set linter.result_file or linter.command")

type MessagesCmd struct {
	flags  *Flags
	reader iojson.FileReader
	ref    string
	format string
}

func NewMessagesCmd(flags *Flags) *MessagesCmd {
	return &MessagesCmd{flags: flags}
}

func (cmd *MessagesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "messages",
		Usage:     "List linter messages in z/a order",
		UsageText: "codeview messages [options] [dir]",
		Description: `Prints the linter messages of a version in the order the z and a keys
visit them: files in tree order, lines ascending. Messages without a file or
line are listed separately.

The linter result is read from --file, from stdin when piped, or from the
linter section of the config.`,
		Flags: []cli.Flag{
			cmd.reader.Flag(),
			&cli.StringFlag{
				Name:        "ref",
				Usage:       "git ref whose file tree orders the messages",
				Value:       "HEAD",
				Destination: &cmd.ref,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})
	return app
}

type messageJSON struct {
	UID     string `json:"uid"`
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

func toMessageJSON(m linter.Message) messageJSON {
	return messageJSON{UID: m.UID, Type: m.Type, Code: m.Code, File: m.File, Line: m.Line, Message: m.Message}
}

func (cmd *MessagesCmd) run(ctx context.Context, c *cli.Command) error {
	dir, err := repoDir(c.Args().First())
	if err != nil {
		return fmt.Errorf("resolve dir: %w", err)
	}

	res, err := cmd.loadResult(ctx, dir)
	if err != nil {
		return err
	}

	v, err := cmd.flags.loader().Load(ctx, dir, cmd.ref)
	if err != nil {
		return fmt.Errorf("load version: %w", err)
	}

	ring, global := orderMessages(res, v.Paths)

	if cmd.format == "json" {
		out := struct {
			Ring   []messageJSON `json:"ring"`
			Global []messageJSON `json:"global"`
		}{Ring: []messageJSON{}, Global: []messageJSON{}}
		for _, m := range ring {
			out.Ring = append(out.Ring, toMessageJSON(m))
		}
		for _, m := range global {
			out.Global = append(out.Global, toMessageJSON(m))
		}
		return iojson.WriteWith(c.Root().Writer, os.Stderr, out)
	}

	return writeMessages(c.Root().Writer, ring, global)
}

func (cmd *MessagesCmd) loadResult(ctx context.Context, dir string) (*linter.Result, error) {
	if cmd.reader.Path() != "" || cmd.reader.Piped() {
		r, source, err := cmd.reader.Open()
		if err != nil {
			return nil, err
		}
		defer func() { _ = r.Close() }()
		return linter.Load(r, source)
	}

	if f := cmd.flags.resultFile(); f != "" {
		r, err := os.Open(f)
		if err != nil {
			return nil, fmt.Errorf("open linter result: %w", err)
		}
		defer func() { _ = r.Close() }()
		return linter.Load(r, f)
	}

	if command := cmd.flags.Config.Linter.Command; command != "" {
		return linter.RunCommand(ctx, executor, dir, command)
	}

	return nil, ErrNoLintSource
}

// orderMessages returns the located messages in ring order and the rest.
// Located messages on files outside paths are not reachable and dropped.
func orderMessages(res *linter.Result, paths []string) (ring, global []linter.Message) {
	for _, m := range nav.FlattenMessages(paths, res.MessageMap()) {
		if full, ok := res.ByUID(m.UID); ok {
			ring = append(ring, full)
		}
	}
	return ring, res.Global
}

func writeMessages(w io.Writer, ring, global []linter.Message) error {
	for _, m := range ring {
		loc := styles.TextMutedStyle.Render(fmt.Sprintf("%s:%d", m.File, m.Line))
		if _, err := fmt.Fprintf(w, "%s %s %s %s\n", loc, typeLabel(m.Type), styles.KeyStyle.Render(m.Code), m.Message); err != nil {
			return err
		}
	}

	if len(global) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, styles.CommandHeaderStyle.Render("Not tied to a line"))
		for _, m := range global {
			if _, err := fmt.Fprintf(w, "  %s %s %s\n", typeLabel(m.Type), styles.KeyStyle.Render(m.Code), m.Message); err != nil {
				return err
			}
		}
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, styles.TextMutedStyle.Render(fmt.Sprintf("%d in navigation order, %d not tied to a line", len(ring), len(global))))
	return nil
}

func typeLabel(kind string) string {
	return styles.MessageStyle(kind).Render(strings.ToUpper(kind))
}
