package transcribe

import (
	"context"
	"encoding/base64"
	"fmt"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/grpc/status"
)

// recognizeClient is a local interface wrapping the one method we need from
// speech.Client to enable easier testing.
type recognizeClient interface {
	Recognize(ctx context.Context, req *speechpb.RecognizeRequest, opts ...gax.CallOption) (*speechpb.RecognizeResponse, error)
}

var googleEncodings = map[string]speechpb.RecognitionConfig_AudioEncoding{
	EncodingLinear16: speechpb.RecognitionConfig_LINEAR16,
	EncodingMP3:      speechpb.RecognitionConfig_MP3,
	EncodingAMR:      speechpb.RecognitionConfig_AMR,
}

// GoogleRecognizer implements Recognizer on the Google Cloud Speech-to-Text
// batch recognize API.
type GoogleRecognizer struct {
	client recognizeClient
}

func NewGoogleRecognizer(client *speech.Client) *GoogleRecognizer {
	return &GoogleRecognizer{client: client}
}

func (g *GoogleRecognizer) Recognize(ctx context.Context, req Request) ([]string, error) {
	content, err := base64.StdEncoding.DecodeString(req.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: audio content is not valid base64", ErrInvalidRequest)
	}

	encoding, ok := googleEncodings[req.Encoding]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, req.Encoding)
	}

	resp, err := g.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   encoding,
			SampleRateHertz:            int32(req.SampleRateHertz),
			LanguageCode:               req.LanguageCode,
			EnableAutomaticPunctuation: true,
			Model:                      "default",
			UseEnhanced:                true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: content},
		},
	})
	if err != nil {
		st := status.Convert(err)
		return nil, &ServiceError{Code: st.Code().String(), Detail: st.Message()}
	}

	var segments []string
	for _, result := range resp.GetResults() {
		alts := result.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		segments = append(segments, alts[0].GetTranscript())
	}
	return segments, nil
}
