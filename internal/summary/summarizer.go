package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/medimind/medimind-server/internal/llm"
)

const systemPrompt = "Summarize the following doctor-patient consultation transcript concisely in plain language. Include key symptoms discussed, any diagnosis mentioned, and follow-up actions for the patient."

// minTranscriptWords guards against summarizing fragments that carry no
// signal; such transcripts are returned to the client unchanged.
const minTranscriptWords = 20

// Summarizer condenses a consultation transcript for the app's
// transcription-summary screen.
type Summarizer struct {
	client llm.Client
	sleep  func(time.Duration)
}

func New(client llm.Client) *Summarizer {
	return &Summarizer{client: client, sleep: time.Sleep}
}

// Summarize returns a summary of transcript, retrying transient completion
// failures with backoff. Transcripts below the minimum word count are
// returned as-is.
func (s *Summarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	if len(strings.Fields(transcript)) < minTranscriptWords {
		return strings.TrimSpace(transcript), nil
	}

	messages := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: transcript},
	}

	backoff := []time.Duration{1 * time.Second, 4 * time.Second, 16 * time.Second}
	var lastErr error
	for attempt := range backoff {
		result, err := s.client.Complete(ctx, messages)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if attempt < len(backoff)-1 {
			s.sleep(backoff[attempt])
		}
	}
	return "", fmt.Errorf("summarize failed after retries: %w", lastErr)
}
