package transcribe

import "fmt"

// Supported audio encodings and their canonical default sample rates,
// applied when a client omits sampleRateHertz. A caller-supplied rate is
// passed through verbatim, even if it is not the encoding's natural rate.
const (
	EncodingLinear16 = "LINEAR16"
	EncodingMP3      = "MP3"
	EncodingAMR      = "AMR"

	DefaultLanguageCode = "en-US"
)

var defaultSampleRates = map[string]int{
	EncodingLinear16: 16000,
	EncodingMP3:      44100,
	EncodingAMR:      8000, // AMR-NB is 8 kHz only
}

// DecodingConfig is the client-supplied description of how to interpret an
// audio payload. Zero values mean "use the default".
type DecodingConfig struct {
	Encoding        string `json:"encoding"`
	SampleRateHertz int    `json:"sampleRateHertz,omitempty"`
	LanguageCode    string `json:"languageCode,omitempty"`
}

// Request is a fully validated transcription request ready for dispatch.
// Payload is the base64 text of the audio exactly as the client uploaded it.
type Request struct {
	Payload         string
	Encoding        string
	SampleRateHertz int
	LanguageCode    string
}

// buildRequest is the single validation routine shared by the chunked
// finalize path and the direct single-shot path, so the two entry points
// cannot drift apart.
func buildRequest(payload string, cfg DecodingConfig) (Request, error) {
	if payload == "" {
		return Request{}, fmt.Errorf("%w: empty audio content", ErrInvalidRequest)
	}

	rate, ok := defaultSampleRates[cfg.Encoding]
	if !ok {
		return Request{}, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, cfg.Encoding)
	}
	if cfg.SampleRateHertz != 0 {
		rate = cfg.SampleRateHertz
	}

	lang := cfg.LanguageCode
	if lang == "" {
		lang = DefaultLanguageCode
	}

	return Request{
		Payload:         payload,
		Encoding:        cfg.Encoding,
		SampleRateHertz: rate,
		LanguageCode:    lang,
	}, nil
}
