package speech

import (
	"context"
	"errors"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// Synthesizer turns text into WAV audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}

// GeminiSynthesizer uses Gemini's native audio output.
type GeminiSynthesizer struct {
	client *genai.Client
	model  string
}

// NewGeminiSynthesizer creates a Gemini TTS client.
func NewGeminiSynthesizer(ctx context.Context, apiKey, model string) (*GeminiSynthesizer, error) {
	if model == "" {
		model = "gemini-2.5-flash-preview-tts"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiSynthesizer{client: client, model: model}, nil
}

// geminiSpeechPrompt pins the language; a lone 一 or 三 is otherwise
// often read as Japanese.
func geminiSpeechPrompt(text string) string {
	return "Say this naturally in Mandarin Chinese: " + text
}

func (g *GeminiSynthesizer) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(geminiSpeechPrompt(text)), &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini tts: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errors.New("gemini tts: empty response")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}
		if isWAV(part.InlineData.Data) {
			return part.InlineData.Data, nil
		}
		return WrapPCM(part.InlineData.Data, geminiSampleRate, geminiChannels, geminiBitDepth), nil
	}
	return nil, errors.New("gemini tts: no audio in response")
}

// openAIVoices maps the Gemini voice names used in config to OpenAI
// voices of a similar character.
var openAIVoices = map[string]openai.SpeechVoice{
	"Kore": openai.VoiceNova,
	"Puck": openai.VoiceEcho,
}

// OpenAISynthesizer uses the OpenAI speech endpoint.
type OpenAISynthesizer struct {
	client *openai.Client
	model  openai.SpeechModel
}

// NewOpenAISynthesizer creates an OpenAI TTS client.
func NewOpenAISynthesizer(apiKey, model string) *OpenAISynthesizer {
	m := openai.TTSModel1
	if model != "" {
		m = openai.SpeechModel(model)
	}
	return &OpenAISynthesizer{client: openai.NewClient(apiKey), model: m}
}

func (o *OpenAISynthesizer) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	v, ok := openAIVoices[voice]
	if !ok {
		v = openai.SpeechVoice(voice)
	}
	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          o.model,
		Input:          text,
		Voice:          v,
		ResponseFormat: openai.SpeechResponseFormatWav,
	})
	if err != nil {
		return nil, fmt.Errorf("openai tts: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read openai tts audio: %w", err)
	}
	return audio, nil
}
