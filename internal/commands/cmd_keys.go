package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/codeview/internal/core/nav"
	"github.com/colonyops/codeview/internal/core/styles"
	"github.com/colonyops/codeview/pkg/iojson"
)

type KeysCmd struct {
	flags  *Flags
	format string
}

func NewKeysCmd(flags *Flags) *KeysCmd {
	return &KeysCmd{flags: flags}
}

func (cmd *KeysCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "keys",
		Usage:       "List the navigation keys",
		UsageText:   "codeview keys [options]",
		Description: "Prints the key binding table. Alias keys are listed with the key they duplicate.",
		Flags: []cli.Flag{
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

type keyJSON struct {
	Key         string   `json:"key"`
	Aliases     []string `json:"aliases,omitempty"`
	Intent      string   `json:"intent"`
	Description string   `json:"description"`
}

func keyTable() []keyJSON {
	shortcuts := nav.Shortcuts()
	out := make([]keyJSON, 0, len(shortcuts))
	for _, b := range shortcuts {
		out = append(out, keyJSON{
			Key:         b.Key,
			Aliases:     nav.AliasesOf(b.Key),
			Intent:      string(b.Intent),
			Description: b.Description,
		})
	}
	return out
}

func (cmd *KeysCmd) run(_ context.Context, c *cli.Command) error {
	if cmd.format == "json" {
		return iojson.WriteWith(c.Root().Writer, os.Stderr, keyTable())
	}
	return writeKeys(c.Root().Writer, keyTable())
}

func writeKeys(w io.Writer, keys []keyJSON) error {
	const keyWidth = 8

	_, _ = fmt.Fprintln(w, styles.CommandHeaderStyle.Render("Keyboard shortcuts"))
	for _, k := range keys {
		label := strings.Join(append([]string{k.Key}, k.Aliases...), ", ")
		pad := strings.Repeat(" ", max(keyWidth-len(label), 1))
		if _, err := fmt.Fprintf(w, "  %s%s%s\n", styles.KeyStyle.Render(label), pad, k.Description); err != nil {
			return err
		}
	}
	return nil
}
