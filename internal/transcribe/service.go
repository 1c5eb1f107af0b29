package transcribe

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Recognizer is the external speech-to-text collaborator. It returns the
// recognized transcript segments in the order the service produced them, or
// a *ServiceError on transport/processing failure.
type Recognizer interface {
	Recognize(ctx context.Context, req Request) ([]string, error)
}

// SessionStore is the slice of the upload store the pipeline needs: read the
// reassembled payload, and free the session once it has been transcribed.
type SessionStore interface {
	Payload(sessionID string) (string, bool)
	Delete(sessionID string)
}

// Service turns buffered upload sessions (or direct payloads) into validated
// transcription requests and dispatches them to the recognizer.
type Service struct {
	store   SessionStore
	rec     Recognizer
	timeout time.Duration
}

const defaultRecognizeTimeout = 90 * time.Second

func NewService(store SessionStore, rec Recognizer, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = defaultRecognizeTimeout
	}
	return &Service{store: store, rec: rec, timeout: timeout}
}

// Finalize reassembles the named session's chunks in index order, validates
// the decoding config, and transcribes the result. The session is deleted
// only on success; a failed call leaves it in place for a retry (until the
// sweeper reclaims it).
func (s *Service) Finalize(ctx context.Context, sessionID string, cfg DecodingConfig) (string, error) {
	payload, ok := s.store.Payload(sessionID)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	if payload == "" {
		return "", fmt.Errorf("%w: %s", ErrIncompleteUpload, sessionID)
	}

	req, err := buildRequest(payload, cfg)
	if err != nil {
		return "", err
	}

	text, err := s.dispatch(ctx, req)
	if err != nil {
		return "", err
	}

	s.store.Delete(sessionID)
	return text, nil
}

// Direct transcribes a payload supplied in one request, bypassing the
// session store. It shares all validation with Finalize.
func (s *Service) Direct(ctx context.Context, payload string, cfg DecodingConfig) (string, error) {
	req, err := buildRequest(payload, cfg)
	if err != nil {
		return "", err
	}
	return s.dispatch(ctx, req)
}

// dispatch calls the recognizer under a bounded timeout and joins the
// returned segments in collaborator order. Retrying a failed call is the
// caller's concern.
func (s *Service) dispatch(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	segments, err := s.rec.Recognize(ctx, req)
	if err != nil {
		return "", err
	}
	if len(segments) == 0 {
		return "", ErrNoResults
	}

	return strings.Join(segments, "\n"), nil
}
