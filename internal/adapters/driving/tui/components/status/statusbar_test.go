package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, 80, bar.Width())
	assert.Nil(t, bar.Init())
}

func TestBar_Update_IsPassive(t *testing.T) {
	bar := NewBar(nil, nil)

	updated, cmd := bar.Update(nil)

	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
}

func TestBar_View_NoDocument(t *testing.T) {
	bar := NewBar(nil, nil)

	view := bar.View()

	assert.Contains(t, view, "No document")
	assert.Contains(t, view, "q: quit")
}

func TestBar_View_Layers(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(160)
	bar.SetState(StateLayers)
	bar.SetDocument("poster.psd")
	bar.SetCounts(2, 4)

	view := bar.View()

	assert.Contains(t, view, "poster.psd  2/4 selected")
	assert.Contains(t, view, "space: toggle")
	assert.Contains(t, view, "e: export")
}

func TestBar_View_States(t *testing.T) {
	tests := []struct {
		state   State
		message string
		want    string
	}{
		{StateLoading, "", "Loading..."},
		{StateExporting, "", "Exporting..."},
		{StateError, "", "Error"},
		{StateError, "bad file", "Error: bad file"},
	}

	for _, tt := range tests {
		t.Run(string(tt.state)+tt.message, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetState(tt.state)
			bar.SetMessage(tt.message)

			assert.Contains(t, bar.View(), tt.want)
			assert.Equal(t, tt.message, bar.Message())
		})
	}
}

func TestBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("boom")
	bar.SetDocument("a.psd")
	bar.SetCounts(1, 2)

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
	selected, total := bar.Counts()
	assert.Zero(t, selected)
	assert.Zero(t, total)
}
