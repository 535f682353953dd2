package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/mech-ai/internal/dto"
	"github.com/BruksfildServices01/mech-ai/internal/httperr"
	"github.com/BruksfildServices01/mech-ai/internal/httpresp"
	"github.com/BruksfildServices01/mech-ai/internal/validators"
)

const audioField = "audio_file"

type chatProcessor interface {
	ProcessMessage(ctx context.Context, message string) (*dto.ChatResponse, error)
	ProcessAudio(ctx context.Context, audio []byte, mimeType string) (*dto.ChatResponse, error)
}

type ChatHandler struct {
	svc           chatProcessor
	maxAudioBytes int64
	log           *zap.Logger
}

func NewChatHandler(svc chatProcessor, maxAudioBytes int64, log *zap.Logger) *ChatHandler {
	return &ChatHandler{
		svc:           svc,
		maxAudioBytes: maxAudioBytes,
		log:           log.Named("chat_handler"),
	}
}

// ======================================================
// TEXT
// ======================================================

func (h *ChatHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	resp, err := h.svc.ProcessMessage(c.Request.Context(), req.Message)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, resp)
}

// ======================================================
// AUDIO
// ======================================================

func (h *ChatHandler) Audio(c *gin.Context) {
	// folga para os cabeçalhos do multipart
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxAudioBytes+1<<20)

	fh, err := c.FormFile(audioField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.tooLarge(c)
			return
		}
		httperr.BadRequest(c, "missing_audio_file", "Envie o arquivo de áudio no campo audio_file.")
		return
	}

	if fh.Size > h.maxAudioBytes {
		h.tooLarge(c)
		return
	}

	mimeType := validators.NormalizeAudioMIME(fh.Header.Get("Content-Type"), fh.Filename)
	if mimeType == "" {
		httperr.BadRequest(c, "unsupported_audio_format",
			"Formato de áudio não suportado: "+strings.TrimSpace(fh.Header.Get("Content-Type")))
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.log.Error("open uploaded audio", zap.Error(err))
		httperr.Internal(c, "audio_read_failed", "Erro ao ler o arquivo de áudio.")
		return
	}
	defer f.Close()

	audio, err := io.ReadAll(io.LimitReader(f, h.maxAudioBytes+1))
	if err != nil {
		h.log.Error("read uploaded audio", zap.Error(err))
		httperr.Internal(c, "audio_read_failed", "Erro ao ler o arquivo de áudio.")
		return
	}
	if int64(len(audio)) > h.maxAudioBytes {
		h.tooLarge(c)
		return
	}

	resp, err := h.svc.ProcessAudio(c.Request.Context(), audio, mimeType)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, resp)
}

func (h *ChatHandler) tooLarge(c *gin.Context) {
	httperr.RequestTooLarge(c, "audio_too_large", "Arquivo de áudio excede o tamanho máximo permitido.")
}
