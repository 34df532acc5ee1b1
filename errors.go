package studio

import "errors"

// Sentinel errors returned by Session operations. Collaborators wrap these
// so callers can classify failures with errors.Is.
var (
	// ErrMissingCredential is returned when an AI edit is requested but no
	// editor (API key) is configured.
	ErrMissingCredential = errors.New("studio: no API key configured")

	// ErrNoImageResult is returned when the remote call succeeded but did
	// not produce an image, e.g. a text-only model.
	ErrNoImageResult = errors.New("studio: model returned no image")

	// ErrBusy is returned when an edit is requested while another one is
	// still in flight.
	ErrBusy = errors.New("studio: an edit is already in progress")

	// ErrNoImage is returned by operations that need an uploaded image.
	ErrNoImage = errors.New("studio: no image uploaded")

	// ErrNotFound is returned when an element id does not exist.
	ErrNotFound = errors.New("studio: element not found")

	// ErrWrongMode is returned when an operation is not available in the
	// current edit mode.
	ErrWrongMode = errors.New("studio: operation not available in current mode")

	// ErrNotSelected is returned when resizing an element that is not
	// selected.
	ErrNotSelected = errors.New("studio: element is not selected")

	// ErrUnknownFormat is returned for unsupported export formats.
	ErrUnknownFormat = errors.New("studio: unknown export format")

	// ErrInvalidDataURI is returned when a data URI cannot be parsed.
	ErrInvalidDataURI = errors.New("studio: invalid data URI")

	// ErrStalePending is returned by Finish for a pending edit that does not
	// belong to the session's current in-flight request.
	ErrStalePending = errors.New("studio: pending edit is not current")
)
