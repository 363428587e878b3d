package speech

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	gcpspeech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// WhisperTranscriber uses the OpenAI transcription endpoint.
type WhisperTranscriber struct {
	client   *openai.Client
	language string
}

// NewWhisperTranscriber creates a Whisper client. language is a BCP-47
// tag such as "zh-CN"; Whisper only takes the primary subtag.
func NewWhisperTranscriber(apiKey, language string) *WhisperTranscriber {
	lang, _, _ := strings.Cut(language, "-")
	return &WhisperTranscriber{client: openai.NewClient(apiKey), language: strings.ToLower(lang)}
}

func (w *WhisperTranscriber) Transcribe(ctx context.Context, path string) (string, error) {
	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: path,
		Language: w.language,
	})
	if err != nil {
		return "", fmt.Errorf("whisper: %w", err)
	}
	return resp.Text, nil
}

// GCPTranscriber uses Google Cloud Speech-to-Text synchronous recognition.
type GCPTranscriber struct {
	client     *gcpspeech.Client
	language   string
	maxRetries int
}

// NewGCPTranscriber creates a Cloud Speech client. credentials is a
// service-account file path or inline JSON; empty uses the ambient
// application default credentials.
func NewGCPTranscriber(ctx context.Context, credentials, language string) (*GCPTranscriber, error) {
	var opts []option.ClientOption
	switch {
	case strings.HasPrefix(credentials, "{"):
		opts = append(opts, option.WithCredentialsJSON([]byte(credentials)))
	case credentials != "":
		opts = append(opts, option.WithCredentialsFile(credentials))
	}

	c, err := gcpspeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("speech client: %w", err)
	}
	return &GCPTranscriber{client: c, language: language, maxRetries: 2}, nil
}

// Close releases the gRPC connection.
func (g *GCPTranscriber) Close() error {
	if g == nil || g.client == nil {
		return nil
	}
	return g.client.Close()
}

func (g *GCPTranscriber) Transcribe(ctx context.Context, path string) (string, error) {
	audio, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read recording: %w", err)
	}

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:            16000,
			AudioChannelCount:          1,
			LanguageCode:               g.language,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}

	resp, err := g.recognize(ctx, req)
	if err != nil {
		return "", fmt.Errorf("speech recognize: %w", err)
	}

	var b strings.Builder
	for _, r := range resp.GetResults() {
		if alts := r.GetAlternatives(); len(alts) > 0 {
			b.WriteString(alts[0].GetTranscript())
		}
	}
	return b.String(), nil
}

// recognize retries transient gRPC failures with exponential backoff.
func (g *GCPTranscriber) recognize(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
	backoff := 500 * time.Millisecond
	var last error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		resp, err := g.client.Recognize(ctx, req)
		if err == nil {
			return resp, nil
		}
		last = err

		code := status.Code(err)
		if code != codes.Unavailable && code != codes.ResourceExhausted && code != codes.DeadlineExceeded {
			return nil, err
		}
		if attempt == g.maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return nil, last
}
