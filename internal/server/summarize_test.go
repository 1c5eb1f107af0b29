package server

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

type summarizerStub struct {
	summary        string
	err            error
	lastTranscript string
}

func (s *summarizerStub) Summarize(_ context.Context, transcript string) (string, error) {
	s.lastTranscript = transcript
	return s.summary, s.err
}

func TestSummarize(t *testing.T) {
	sum := &summarizerStub{summary: "Patient reports improvement; continue current dosage."}
	h := Handler(NewHub(), Deps{Summarizer: sum})

	rr := postJSON(t, h, "/summarize", `{"transcription":"Doctor: how are you feeling? Patient: much better this week."}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	payload := decodeBody(t, rr)
	if payload["summary"] != "Patient reports improvement; continue current dosage." {
		t.Fatalf("unexpected summary: %#v", payload["summary"])
	}
	if sum.lastTranscript == "" {
		t.Fatal("expected transcript to be passed through")
	}
}

func TestSummarizeMissingTranscription(t *testing.T) {
	sum := &summarizerStub{}
	h := Handler(NewHub(), Deps{Summarizer: sum})

	rr := postJSON(t, h, "/summarize", `{}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
	if sum.lastTranscript != "" {
		t.Fatal("summarizer must not be invoked on validation failure")
	}
}

func TestSummarizeBackendFailure(t *testing.T) {
	sum := &summarizerStub{err: errors.New("model unavailable")}
	h := Handler(NewHub(), Deps{Summarizer: sum})

	rr := postJSON(t, h, "/summarize", `{"transcription":"some transcript"}`)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
	payload := decodeBody(t, rr)
	if payload["error"] != "Failed to summarize transcription" {
		t.Fatalf("unexpected error: %#v", payload["error"])
	}
}
