package domain

import "errors"

// Domain errors represent failures of the load, selection and export flow.
// These are distinct from infrastructure errors, which adapters wrap with
// one of these sentinels so callers can test with errors.Is.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Load Errors.

	// ErrUnsupportedInput indicates the file type is not handled by any decoder.
	// It is detected from the file name before any bytes are decoded.
	ErrUnsupportedInput = errors.New("unsupported input")

	// ErrDecodeFailure indicates the document bytes could not be decoded.
	ErrDecodeFailure = errors.New("decode failure")

	// Session Errors.

	// ErrNoDocument indicates an operation needs a loaded document.
	ErrNoDocument = errors.New("no document loaded")

	// ErrExportInProgress indicates the session is exporting and cannot be replaced.
	ErrExportInProgress = errors.New("export in progress")

	// ErrIndexOutOfRange indicates a flat entry index outside the entry list.
	ErrIndexOutOfRange = errors.New("entry index out of range")

	// ErrNotSelectable indicates the entry is a group and cannot be selected.
	ErrNotSelectable = errors.New("entry is not selectable")

	// ErrEmptySelection indicates an image export was requested with nothing selected.
	ErrEmptySelection = errors.New("no layers selected")

	// Export Errors.

	// ErrRenderFailure indicates a single layer could not be rendered or encoded.
	// Exports skip the layer and continue with the rest of the selection.
	ErrRenderFailure = errors.New("layer render failed")

	// ErrEncodeOrSave indicates packaging or saving the final artifact failed.
	// This aborts the remainder of the export.
	ErrEncodeOrSave = errors.New("encode or save failed")

	// ErrUnsupportedFormat indicates an unknown output image format.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)
