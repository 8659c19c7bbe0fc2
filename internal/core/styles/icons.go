package styles

import (
	"path/filepath"
	"strings"
)

// Tip: To find icons use https://github.com/loichyan/nerdfix

// Directory icons
var (
	IconFolderOpen   = "\uf07c"
	IconFolderClosed = "\uf07b"
)

// Linter message icons
var (
	IconError   = "\uf057"
	IconWarning = "\uf071"
	IconNotice  = "\uf05a"
)

// File type icons
var (
	IconFileDefault  = "\uf15b "
	IconFileJS       = "\U000F031E "
	IconFileTS       = "\U000F06E6 "
	IconFileJSON     = "\ue60b "
	IconFileHTML     = "\uf13b "
	IconFileCSS      = "\ue749 "
	IconFileMarkdown = "\uf48a "
	IconFileImage    = "\uf1c5 "
	IconFileYAML     = "\ue6a8 "
	IconFileXML      = "\U000F05C0 "
	IconFileShell    = "\uf489 "
	IconFileGo       = "\ue627 "
	IconFileLock     = "\uf023 "
)

var iconsByExt = map[string]string{
	".js":   IconFileJS,
	".mjs":  IconFileJS,
	".cjs":  IconFileJS,
	".jsx":  IconFileJS,
	".ts":   IconFileTS,
	".tsx":  IconFileTS,
	".json": IconFileJSON,
	".html": IconFileHTML,
	".htm":  IconFileHTML,
	".css":  IconFileCSS,
	".md":   IconFileMarkdown,
	".png":  IconFileImage,
	".jpg":  IconFileImage,
	".jpeg": IconFileImage,
	".gif":  IconFileImage,
	".svg":  IconFileImage,
	".yml":  IconFileYAML,
	".yaml": IconFileYAML,
	".xml":  IconFileXML,
	".xul":  IconFileXML,
	".rdf":  IconFileXML,
	".sh":   IconFileShell,
	".go":   IconFileGo,
	".lock": IconFileLock,
}

// FileIcon returns the nerd-font icon for a file name.
func FileIcon(name string) string {
	if icon, ok := iconsByExt[strings.ToLower(filepath.Ext(name))]; ok {
		return icon
	}
	return IconFileDefault
}

// MessageIcon returns the icon for a linter message type.
func MessageIcon(kind string) string {
	switch kind {
	case "error":
		return IconError
	case "warning":
		return IconWarning
	default:
		return IconNotice
	}
}
