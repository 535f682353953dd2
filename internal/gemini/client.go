package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/BruksfildServices01/mech-ai/internal/metrics"
	"github.com/BruksfildServices01/mech-ai/internal/timezone"
)

var (
	ErrNotConfigured      = errors.New("gemini api key not configured")
	ErrEmptyTranscription = errors.New("empty transcription")
	ErrEmptyResponse      = errors.New("empty model response")
)

// generator is the subset of *genai.Models used here.
type generator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

type Config struct {
	APIKey     string
	Model      string
	AudioModel string
	Timezone   string
}

type Client struct {
	models     generator
	model      string
	audioModel string
	timezone   string
	log        *zap.Logger
	now        func() time.Time
}

func NewClient(ctx context.Context, cfg Config, log *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newClient(gc.Models, cfg, log), nil
}

func newClient(models generator, cfg Config, log *zap.Logger) *Client {
	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	audioModel := cfg.AudioModel
	if audioModel == "" {
		audioModel = model
	}

	return &Client{
		models:     models,
		model:      model,
		audioModel: audioModel,
		timezone:   cfg.Timezone,
		log:        log.Named("gemini"),
		now:        time.Now,
	}
}

// ======================================================
// CLASSIFY
// ======================================================

// ClassifyRaw asks the model for the intent envelope of utterance and
// returns its JSON text.
func (c *Client) ClassifyRaw(ctx context.Context, utterance string) (string, error) {
	defer metrics.ObserveSince("gemini_classify", time.Now())

	today := c.now().In(timezone.Location(c.timezone)).Format(timezone.DateLayout)

	config := &genai.GenerateContentConfig{
		ResponseMIMEType:  "application/json",
		ResponseSchema:    envelopeSchema(),
		Temperature:       ptr[float32](0.1),
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	}

	contents := []*genai.Content{
		genai.NewContentFromText(classifyPrompt(utterance, today), genai.RoleUser),
	}

	resp, err := c.models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	out := stripFences(responseText(resp))
	if out == "" {
		return "", ErrEmptyResponse
	}

	c.log.Debug("classifier response", zap.String("raw", out))
	return out, nil
}

// ======================================================
// TRANSCRIBE
// ======================================================

func (c *Client) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	defer metrics.ObserveSince("gemini_transcribe", time.Now())

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(transcribePrompt),
			genai.NewPartFromBytes(audio, mimeType),
		}, genai.RoleUser),
	}

	resp, err := c.models.GenerateContent(ctx, c.audioModel, contents, nil)
	if err != nil {
		return "", fmt.Errorf("transcribe audio: %w", err)
	}

	text := strings.TrimSpace(responseText(resp))
	if text == "" {
		return "", ErrEmptyTranscription
	}

	c.log.Info("audio transcribed", zap.Int("bytes", len(audio)), zap.Int("chars", len(text)))
	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	return resp.Text()
}

// stripFences remove a cerca markdown que o modelo às vezes devolve.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func ptr[T any](v T) *T { return &v }
