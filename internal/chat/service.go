package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/mech-ai/internal/dto"
	"github.com/BruksfildServices01/mech-ai/internal/gemini"
	"github.com/BruksfildServices01/mech-ai/internal/httperr"
	"github.com/BruksfildServices01/mech-ai/internal/intent"
)

const (
	CodeEmptyMessage       = "empty_message"
	CodeEmptyAudio         = "empty_audio"
	CodeEmptyTranscription = "empty_transcription"
	CodeClassification     = "classification_failed"
	CodeTranscription      = "transcription_failed"
	CodeLLMNotConfigured   = "llm_not_configured"

	msgLLMNotConfigured   = "API Key do Gemini não configurada."
	msgEmptyTranscription = "Transcrição resultou em mensagem vazia."
	msgEmptyMessage       = "A mensagem processada está vazia."
)

type Classifier interface {
	Classify(ctx context.Context, utterance string) (intent.Envelope, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

type Archiver interface {
	Archive(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// Service runs an utterance (text or audio) through classification and
// the intent router. classifier, transcriber and archive may be nil.
type Service struct {
	classifier  Classifier
	transcriber Transcriber
	archive     Archiver
	router      *Router
	log         *zap.Logger
	tracer      trace.Tracer
}

func NewService(
	classifier Classifier,
	transcriber Transcriber,
	archive Archiver,
	router *Router,
	log *zap.Logger,
) *Service {
	return &Service{
		classifier:  classifier,
		transcriber: transcriber,
		archive:     archive,
		router:      router,
		log:         log.Named("chat"),
		tracer:      otel.Tracer("mechai/chat"),
	}
}

func (s *Service) ProcessMessage(ctx context.Context, message string) (*dto.ChatResponse, error) {
	ctx, span := s.tracer.Start(ctx, "chat.ProcessMessage")
	defer span.End()

	resp, err := s.processMessage(ctx, message, span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "process message failed")
	}
	return resp, err
}

func (s *Service) processMessage(ctx context.Context, message string, span trace.Span) (*dto.ChatResponse, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, httperr.NewBusiness(CodeEmptyMessage, msgEmptyMessage)
	}
	if s.classifier == nil {
		return nil, httperr.NewServer(CodeLLMNotConfigured, msgLLMNotConfigured, nil)
	}

	env, err := s.classifier.Classify(ctx, message)
	if err != nil {
		s.log.Error("classification failed", zap.Error(err))
		return nil, httperr.NewServer(
			CodeClassification,
			fmt.Sprintf("Erro ao processar mensagem com IA: %v", err),
			err,
		)
	}

	span.SetAttributes(
		attribute.String("mechai.intent", env.Label),
		attribute.String("mechai.intent_kind", string(env.Kind)),
	)

	return s.router.Handle(ctx, env)
}

func (s *Service) ProcessAudio(ctx context.Context, audio []byte, mimeType string) (*dto.ChatResponse, error) {
	ctx, span := s.tracer.Start(ctx, "chat.ProcessAudio")
	defer span.End()

	resp, err := s.processAudio(ctx, audio, mimeType, span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "process audio failed")
	}
	return resp, err
}

func (s *Service) processAudio(ctx context.Context, audio []byte, mimeType string, span trace.Span) (*dto.ChatResponse, error) {
	if len(audio) == 0 {
		return nil, httperr.NewBusiness(CodeEmptyAudio, "Arquivo de áudio vazio.")
	}
	if s.transcriber == nil {
		return nil, httperr.NewServer(CodeLLMNotConfigured, msgLLMNotConfigured, nil)
	}

	span.SetAttributes(
		attribute.Int("mechai.audio_bytes", len(audio)),
		attribute.String("mechai.audio_mime", mimeType),
	)

	if s.archive != nil {
		// falha no arquivamento não bloqueia o fluxo
		if key, err := s.archive.Archive(ctx, audio, mimeType); err != nil {
			s.log.Warn("audio archive failed", zap.Error(err))
		} else {
			s.log.Info("audio archived", zap.String("key", key))
		}
	}

	text, err := s.transcriber.Transcribe(ctx, audio, mimeType)
	if err != nil {
		if isEmptyTranscription(err) {
			return nil, httperr.NewBusiness(CodeEmptyTranscription, msgEmptyTranscription)
		}
		s.log.Error("transcription failed", zap.Error(err))
		return nil, httperr.NewServer(
			CodeTranscription,
			fmt.Sprintf("Erro ao transcrever áudio: %v", err),
			err,
		)
	}

	if strings.TrimSpace(text) == "" {
		return nil, httperr.NewBusiness(CodeEmptyTranscription, msgEmptyTranscription)
	}

	s.log.Info("processing transcribed audio", zap.String("text", text))
	return s.processMessage(ctx, text, span)
}

func isEmptyTranscription(err error) bool {
	return errors.Is(err, gemini.ErrEmptyTranscription)
}
