package linter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonrepair"

	"github.com/colonyops/codeview/internal/core/logging"
	"github.com/colonyops/codeview/pkg/executil"
)

// RunCommand runs a shell command in dir and parses its stdout as a linter
// result. Output is trimmed to the outermost JSON object so banners printed by
// wrappers such as npx are tolerated; truncated output is repaired when
// possible.
func RunCommand(ctx context.Context, exec executil.Executor, dir, command string) (*Result, error) {
	cmd, args := executil.Sh(command)
	out, err := exec.RunDir(ctx, dir, cmd, args...)
	// addons-linter exits non-zero when it reports errors; only give up when
	// there is nothing to parse.
	if err != nil && len(bytes.TrimSpace(out)) == 0 {
		return nil, fmt.Errorf("run linter: %w", err)
	}

	return Parse(extractJSON(ctx, out), command)
}

func extractJSON(ctx context.Context, out []byte) []byte {
	if start := bytes.IndexByte(out, '{'); start > 0 {
		out = out[start:]
	}
	if end := bytes.LastIndexByte(out, '}'); end >= 0 && end < len(out)-1 {
		out = out[:end+1]
	}

	if json.Valid(out) {
		return out
	}

	repaired, err := jsonrepair.JSONRepair(string(out))
	if err != nil {
		return out
	}

	log := logging.Component("linter")
	log.Debug().Ctx(ctx).Int("bytes", len(out)).Msg("repaired linter output")
	return []byte(repaired)
}
