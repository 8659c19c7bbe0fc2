package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatch(t *testing.T) {
	tests := []struct {
		name   string
		intent Intent
		target Target
		want   Request
	}{
		{
			name:   "file target",
			intent: IntentNextFile,
			target: Target{Kind: TargetFile, Path: "a.js"},
			want:   GoToFile{Path: "a.js", VersionID: 7},
		},
		{
			name:   "diff target keeps preserve hash",
			intent: IntentPreviousDiff,
			target: Target{Kind: TargetDiff, Path: "a.js", Anchor: "D2", PreserveHash: true},
			want:   GoToDiffAnchor{Path: "a.js", Anchor: "D2", VersionID: 7, PreserveHash: true},
		},
		{
			name:   "message target",
			intent: IntentNextMessage,
			target: Target{Kind: TargetMessage, Path: "a.js", Anchor: "L3", MessageUID: "u1"},
			want:   GoToMessage{Path: "a.js", Anchor: "L3", UID: "u1", VersionID: 7},
		},
		{
			name:   "expand ignores target",
			intent: IntentExpandTree,
			target: Target{Kind: TargetFile, Path: "ignored"},
			want:   ExpandTree{VersionID: 7},
		},
		{
			name:   "collapse",
			intent: IntentCollapseTree,
			want:   CollapseTree{VersionID: 7},
		},
		{
			name:   "toggle side panel",
			intent: IntentToggleSidePanel,
			want:   ToggleSidePanel{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []Request
			err := Dispatch(EmitterFunc(func(r Request) { got = append(got, r) }), 7, tt.intent, tt.target)
			require.NoError(t, err)
			assert.Equal(t, []Request{tt.want}, got)
		})
	}
}

func TestDispatch_UnknownTargetKind(t *testing.T) {
	var got []Request
	err := Dispatch(EmitterFunc(func(r Request) { got = append(got, r) }), 1, IntentNextFile, Target{Kind: TargetKind(42)})

	require.Error(t, err)
	assert.Empty(t, got)
}

func TestIntent_Direction(t *testing.T) {
	dir, ok := IntentNextDiff.Direction()
	assert.True(t, ok)
	assert.Equal(t, Next, dir)

	dir, ok = IntentPreviousMessage.Direction()
	assert.True(t, ok)
	assert.Equal(t, Previous, dir)

	_, ok = IntentToggleSidePanel.Direction()
	assert.False(t, ok)
}
