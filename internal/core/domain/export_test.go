package domain

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportMode_IsValid(t *testing.T) {
	for _, m := range AllExportModes() {
		assert.True(t, m.IsValid(), m.String())
	}
	assert.False(t, ExportMode("zip").IsValid())
	assert.False(t, ExportMode("").IsValid())
}

func TestExportMode_Description(t *testing.T) {
	assert.Contains(t, ExportIndividual.Description(), "Individual")
	assert.Contains(t, ExportMerged.Description(), "Merged")
	assert.Equal(t, unknownDescription, ExportMode("other").Description())
}

func TestPlacement_String(t *testing.T) {
	assert.Equal(t, "full_canvas", PlacementFullCanvas.String())
	assert.Equal(t, "native", PlacementNative.String())
}

func TestProgressFunc_Report(t *testing.T) {
	var got []Progress
	f := ProgressFunc(func(p Progress) { got = append(got, p) })

	f.Report(50, "halfway")

	require.Len(t, got, 1)
	assert.Equal(t, Progress{Percent: 50, Status: "halfway"}, got[0])

	var nilFunc ProgressFunc
	assert.NotPanics(t, func() { nilFunc.Report(10, "ignored") })
}

func TestRenderBatch_SucceededAndFailures(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	batch := RenderBatch{Items: []RenderItem{
		{Index: 1, Entry: FlatEntry{DisplayName: "A"}, Image: img},
		{Index: 2, Entry: FlatEntry{DisplayName: "B"}, Err: errors.New("broken")},
		{Index: 3, Entry: FlatEntry{DisplayName: "C"}},
	}}

	ok := batch.Succeeded()
	require.Len(t, ok, 1)
	assert.Equal(t, 1, ok[0].Index)

	failures := batch.Failures()
	require.Len(t, failures, 2)
	assert.Equal(t, ItemFailure{Index: 2, Name: "B", Reason: "broken"}, failures[0])
	assert.Equal(t, "no image produced", failures[1].Reason)
}

func TestExportResult_Partial(t *testing.T) {
	r := &ExportResult{}
	assert.False(t, r.Partial())

	r.Failures = append(r.Failures, ItemFailure{Index: 1})
	assert.True(t, r.Partial())
}

func TestSessionState_String(t *testing.T) {
	assert.Equal(t, "empty", StateEmpty.String())
	assert.Equal(t, "loaded", StateLoaded.String())
	assert.Equal(t, "exporting", StateExporting.String())
	assert.Equal(t, "unknown", SessionState(99).String())
}

func TestNewExportRecord(t *testing.T) {
	result := &ExportResult{
		ID:       "run-1",
		Mode:     ExportIndividual,
		Document: "poster.psd",
		Files:    []string{"001：a.png", "002：b.png"},
		Saved:    []string{"out/poster_layers.zip"},
		Failures: []ItemFailure{{Index: 4}},
	}

	rec := NewExportRecord(result)

	assert.Equal(t, "run-1", rec.ID)
	assert.Equal(t, ExportIndividual, rec.Mode)
	assert.Equal(t, 2, rec.FileCount)
	assert.Equal(t, 1, rec.FailureCount)
	assert.Equal(t, []string{"out/poster_layers.zip"}, rec.Saved)
}
