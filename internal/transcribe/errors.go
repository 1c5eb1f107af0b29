package transcribe

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest is returned for malformed transcription input,
	// such as a missing or undecodable audio payload.
	ErrInvalidRequest = errors.New("invalid transcription request")

	// ErrSessionNotFound is returned when finalize names an unknown or
	// already-swept upload session.
	ErrSessionNotFound = errors.New("session not found")

	// ErrIncompleteUpload is returned when a session is finalized before
	// any chunk was written to it.
	ErrIncompleteUpload = errors.New("no audio content in session")

	// ErrUnsupportedEncoding is returned for encodings outside the
	// allow-list (LINEAR16, MP3, AMR).
	ErrUnsupportedEncoding = errors.New("invalid encoding format")

	// ErrNoResults is returned when the recognizer call succeeded but
	// produced no usable transcript.
	ErrNoResults = errors.New("no transcription results")
)

// ServiceError wraps a transport or processing failure from the speech
// collaborator, preserving its code and detail opaquely for diagnostics.
type ServiceError struct {
	Code   string
	Detail string
}

func (e *ServiceError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("transcription service error: %s", e.Detail)
	}
	return fmt.Sprintf("transcription service error (%s): %s", e.Code, e.Detail)
}
