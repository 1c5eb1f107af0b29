package transcribe

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	listenapi "github.com/deepgram/deepgram-go-sdk/v3/pkg/api/listen/v1/rest"
	interfaces "github.com/deepgram/deepgram-go-sdk/v3/pkg/client/interfaces"
	client "github.com/deepgram/deepgram-go-sdk/v3/pkg/client/listen"
)

// DeepgramRecognizer implements Recognizer on Deepgram's prerecorded
// transcription REST API. It is selected over Google via configuration.
type DeepgramRecognizer struct {
	dg    *listenapi.Client
	model string
}

func NewDeepgramRecognizer(apiKey, model string) *DeepgramRecognizer {
	client.Init(client.InitLib{LogLevel: client.LogLevelDefault})

	if strings.TrimSpace(model) == "" {
		model = "nova-2"
	}

	c := client.NewREST(apiKey, &interfaces.ClientOptions{})
	return &DeepgramRecognizer{dg: listenapi.New(c), model: model}
}

func (d *DeepgramRecognizer) Recognize(ctx context.Context, req Request) ([]string, error) {
	content, err := base64.StdEncoding.DecodeString(req.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: audio content is not valid base64", ErrInvalidRequest)
	}

	options := &interfaces.PreRecordedTranscriptionOptions{
		Model:       d.model,
		Language:    req.LanguageCode,
		Punctuate:   true,
		SmartFormat: true,
	}
	// Raw PCM has no container to sniff; compressed formats are
	// self-describing and left to Deepgram's detection.
	if req.Encoding == EncodingLinear16 {
		options.Encoding = "linear16"
		options.SampleRate = req.SampleRateHertz
	}

	resp, err := d.dg.FromStream(ctx, bytes.NewReader(content), options)
	if err != nil {
		return nil, &ServiceError{Code: "deepgram_error", Detail: err.Error()}
	}

	var segments []string
	for _, channel := range resp.Results.Channels {
		if len(channel.Alternatives) == 0 {
			continue
		}
		if transcript := channel.Alternatives[0].Transcript; transcript != "" {
			segments = append(segments, transcript)
		}
	}
	return segments, nil
}
