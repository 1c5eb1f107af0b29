package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
)

type predictorStub struct {
	result       json.RawMessage
	err          error
	lastSymptoms []string
	lastText     string
}

func (s *predictorStub) Predict(_ context.Context, symptoms []string) (json.RawMessage, error) {
	s.lastSymptoms = symptoms
	return s.result, s.err
}

func (s *predictorStub) Analyze(_ context.Context, text string) (json.RawMessage, error) {
	s.lastText = text
	return s.result, s.err
}

func TestPredictForwardsUpstreamJSON(t *testing.T) {
	p := &predictorStub{result: json.RawMessage(`{"disease":"influenza","confidence":0.91}`)}
	h := Handler(NewHub(), Deps{Predictor: p})

	rr := postJSON(t, h, "/predict", `["fever","cough","fatigue"]`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	payload := decodeBody(t, rr)
	if payload["disease"] != "influenza" {
		t.Fatalf("expected upstream body forwarded verbatim, got %s", rr.Body.String())
	}
	if len(p.lastSymptoms) != 3 || p.lastSymptoms[0] != "fever" {
		t.Fatalf("unexpected symptoms: %v", p.lastSymptoms)
	}
}

func TestPredictRejectsEmptySymptoms(t *testing.T) {
	p := &predictorStub{}
	h := Handler(NewHub(), Deps{Predictor: p})

	for _, body := range []string{`[]`, `{}`, `not json`} {
		rr := postJSON(t, h, "/predict", body)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected status 400, got %d", body, rr.Code)
		}
		payload := decodeBody(t, rr)
		if payload["error"] != "No symptoms provided" {
			t.Fatalf("unexpected error: %#v", payload["error"])
		}
	}

	if p.lastSymptoms != nil {
		t.Fatal("upstream must not be called on validation failure")
	}
}

func TestPredictUpstreamFailure(t *testing.T) {
	p := &predictorStub{err: errors.New("connection refused")}
	h := Handler(NewHub(), Deps{Predictor: p})

	rr := postJSON(t, h, "/predict", `["fever"]`)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
	payload := decodeBody(t, rr)
	if payload["error"] != "Failed to contact Flask service" {
		t.Fatalf("unexpected error: %#v", payload["error"])
	}
}

func TestAnalyzeWrapsResult(t *testing.T) {
	p := &predictorStub{result: json.RawMessage(`{"sentiment":"urgent"}`)}
	h := Handler(NewHub(), Deps{Predictor: p})

	rr := postJSON(t, h, "/analyze", `{"text":"sharp chest pain since morning"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	if !strings.Contains(rr.Body.String(), `"flaskResult"`) {
		t.Fatalf("expected flaskResult envelope, got %s", rr.Body.String())
	}
	if p.lastText != "sharp chest pain since morning" {
		t.Fatalf("unexpected text: %q", p.lastText)
	}
}

func TestAnalyzeMissingText(t *testing.T) {
	p := &predictorStub{}
	h := Handler(NewHub(), Deps{Predictor: p})

	rr := postJSON(t, h, "/analyze", `{}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
	payload := decodeBody(t, rr)
	if payload["error"] != "Missing text input" {
		t.Fatalf("unexpected error: %#v", payload["error"])
	}
}
