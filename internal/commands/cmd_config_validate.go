package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/codeview/internal/core/styles"
	"github.com/colonyops/codeview/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "codeview config validate [options]",
				Description: "Validates the configuration file, checking the theme, ignore globs, the git binary and linter paths.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

type fieldErrorJSON struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// fieldErrors flattens a validation error into per-field entries.
func fieldErrors(err error) []fieldErrorJSON {
	if err == nil {
		return nil
	}

	var fe criterio.FieldErrors
	if !errors.As(err, &fe) {
		return []fieldErrorJSON{{Message: err.Error()}}
	}

	out := make([]fieldErrorJSON, 0, len(fe))
	for _, e := range fe {
		out = append(out, fieldErrorJSON{Field: e.Field, Message: e.Err.Error()})
	}
	return out
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	errs := fieldErrors(cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath))

	if cmd.format == "json" {
		out := struct {
			Valid  bool             `json:"valid"`
			Errors []fieldErrorJSON `json:"errors,omitempty"`
		}{
			Valid:  len(errs) == 0,
			Errors: errs,
		}
		if err := iojson.WriteWith(c.Root().Writer, os.Stderr, out); err != nil {
			return err
		}
	} else {
		writeValidation(c.Root().Writer, cmd.flags.ConfigPath, errs)
	}

	if len(errs) > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func writeValidation(w io.Writer, configPath string, errs []fieldErrorJSON) {
	if len(errs) == 0 {
		_, _ = fmt.Fprintln(w, styles.TextSuccessStyle.Render("✔ ")+"Configuration is valid "+styles.TextMutedStyle.Render(configPath))
		return
	}

	for _, e := range errs {
		field := e.Field
		if field == "" {
			field = "config"
		}
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", styles.TextErrorStyle.Render("✘"), styles.KeyStyle.Render(field), e.Message)
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, styles.TextErrorStyle.Render(fmt.Sprintf("%d error(s) found", len(errs))))
}
