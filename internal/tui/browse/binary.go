package browse

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/h2non/filetype"
)

// binaryLabel describes content that cannot be shown as text, such as the
// images shipped with an add-on. ok is false for text.
func binaryLabel(content []byte) (label string, ok bool) {
	if utf8.Valid(content) && bytes.IndexByte(content, 0) < 0 {
		return "", false
	}

	mime := "application/octet-stream"
	if kind, err := filetype.Match(content); err == nil && kind != filetype.Unknown {
		mime = kind.MIME.Value
	}
	return fmt.Sprintf("Binary file (%s, %s)", mime, humanize.Bytes(uint64(len(content)))), true
}
