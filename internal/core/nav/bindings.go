package nav

import "slices"

// Binding maps a physical key to an intent. Aliases have an empty Description.
type Binding struct {
	Key         string
	Intent      Intent
	Description string
}

// IsAlias reports whether the binding duplicates another key's intent.
func (b Binding) IsAlias() bool {
	return b.Description == ""
}

// SupportedKeys is the fixed binding table in display order.
var SupportedKeys = []Binding{
	{Key: "k", Intent: IntentPreviousFile, Description: "Up file"},
	{Key: "j", Intent: IntentNextFile, Description: "Down file"},
	{Key: "e", Intent: IntentExpandTree, Description: "Expand all folders"},
	{Key: "o", Intent: IntentExpandTree},
	{Key: "c", Intent: IntentCollapseTree, Description: "Collapse all folders"},
	{Key: "n", Intent: IntentNextDiff, Description: "Next change"},
	{Key: "p", Intent: IntentPreviousDiff, Description: "Previous change"},
	{Key: "z", Intent: IntentNextMessage, Description: "Next linter message"},
	{Key: "a", Intent: IntentPreviousMessage, Description: "Previous linter message"},
	{Key: "h", Intent: IntentToggleSidePanel, Description: "Toggle main side panel"},
}

// LookupKey returns the binding for key, if the key is supported.
func LookupKey(key string) (Binding, bool) {
	i := slices.IndexFunc(SupportedKeys, func(b Binding) bool { return b.Key == key })
	if i < 0 {
		return Binding{}, false
	}
	return SupportedKeys[i], true
}

// Shortcuts returns the bindings shown to the user, without aliases.
func Shortcuts() []Binding {
	out := make([]Binding, 0, len(SupportedKeys))
	for _, b := range SupportedKeys {
		if !b.IsAlias() {
			out = append(out, b)
		}
	}
	return out
}

// AliasesOf returns the alias keys that resolve to the same intent as key.
func AliasesOf(key string) []string {
	b, ok := LookupKey(key)
	if !ok {
		return nil
	}
	var aliases []string
	for _, other := range SupportedKeys {
		if other.Intent == b.Intent && other.IsAlias() {
			aliases = append(aliases, other.Key)
		}
	}
	return aliases
}

// IsDiffIntent reports whether the intent needs an active comparison.
func IsDiffIntent(i Intent) bool {
	return i == IntentNextDiff || i == IntentPreviousDiff
}
