package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/mech-ai/internal/audit"
	"github.com/BruksfildServices01/mech-ai/internal/dto"
	"github.com/BruksfildServices01/mech-ai/internal/httperr"
	infraRepo "github.com/BruksfildServices01/mech-ai/internal/infra/repository"
	"github.com/BruksfildServices01/mech-ai/internal/testutil"
	ucsr "github.com/BruksfildServices01/mech-ai/internal/usecase/servicerecord"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) httperr.HTTPError {
	t.Helper()
	var got httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	return got
}

// ======================================================
// CHAT
// ======================================================

type fakeProcessor struct {
	resp *dto.ChatResponse
	err  error

	message  string
	audio    []byte
	mimeType string
}

func (f *fakeProcessor) ProcessMessage(_ context.Context, message string) (*dto.ChatResponse, error) {
	f.message = message
	return f.resp, f.err
}

func (f *fakeProcessor) ProcessAudio(_ context.Context, audio []byte, mimeType string) (*dto.ChatResponse, error) {
	f.audio = audio
	f.mimeType = mimeType
	return f.resp, f.err
}

func chatRouter(t *testing.T, p *fakeProcessor, maxAudio int64) *gin.Engine {
	h := NewChatHandler(p, maxAudio, zaptest.NewLogger(t))
	r := gin.New()
	r.POST("/api/chat", h.Chat)
	r.POST("/api/chat/audio", h.Audio)
	return r
}

func TestChat(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		resp       *dto.ChatResponse
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "ok",
			body:       `{"message":"listar serviços"}`,
			resp:       &dto.ChatResponse{Success: true, Message: "✅ Serviços encontrados:"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid json",
			body:       `{"message":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_request",
		},
		{
			name:       "business error",
			body:       `{"message":"???"}`,
			err:        httperr.NewBusiness("unknown_intent", "Não entendi."),
			wantStatus: http.StatusBadRequest,
			wantCode:   "unknown_intent",
		},
		{
			name:       "server error",
			body:       `{"message":"oi"}`,
			err:        httperr.NewServer("classification_error", "Erro ao processar mensagem com IA.", errors.New("boom")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "classification_error",
		},
		{
			name:       "unexpected error",
			body:       `{"message":"oi"}`,
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProcessor{resp: tt.resp, err: tt.err}
			w := do(chatRouter(t, p, 1<<20), jsonRequest(http.MethodPost, "/api/chat", tt.body))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode == "" {
				var got dto.ChatResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
				assert.True(t, got.Success)
				assert.Equal(t, tt.resp.Message, got.Message)
				return
			}
			got := decodeError(t, w)
			assert.False(t, got.Success)
			assert.Equal(t, tt.wantCode, got.Code)
		})
	}
}

func audioRequest(t *testing.T, field, filename, contentType string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/chat/audio", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestAudio_OK(t *testing.T) {
	p := &fakeProcessor{resp: &dto.ChatResponse{Success: true, Message: "ok"}}
	r := chatRouter(t, p, 1024)

	w := do(r, audioRequest(t, audioField, "nota.ogg", "application/octet-stream", []byte("OggS-data")))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "audio/ogg", p.mimeType)
	assert.Equal(t, []byte("OggS-data"), p.audio)
}

func TestAudio_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		req        func(t *testing.T) *http.Request
		wantStatus int
		wantCode   string
	}{
		{
			name: "missing field",
			req: func(t *testing.T) *http.Request {
				return audioRequest(t, "file", "nota.wav", "audio/wav", []byte("RIFF"))
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "missing_audio_file",
		},
		{
			name: "unsupported format",
			req: func(t *testing.T) *http.Request {
				return audioRequest(t, audioField, "nota.txt", "text/plain", []byte("hello"))
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "unsupported_audio_format",
		},
		{
			name: "too large",
			req: func(t *testing.T) *http.Request {
				return audioRequest(t, audioField, "nota.wav", "audio/wav", bytes.Repeat([]byte{1}, 64))
			},
			wantStatus: http.StatusRequestEntityTooLarge,
			wantCode:   "audio_too_large",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProcessor{}
			w := do(chatRouter(t, p, 16), tt.req(t))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, w).Code)
			assert.Nil(t, p.audio)
		})
	}
}

// ======================================================
// CRUD
// ======================================================

func crudRouter(t *testing.T) (*gin.Engine, *gorm.DB, *audit.Dispatcher) {
	t.Helper()

	db := testutil.NewTestDB(t)
	log := zaptest.NewLogger(t)
	disp := audit.NewDispatcher(audit.New(db), log, 10)
	t.Cleanup(disp.Close)

	store := infraRepo.NewGormStore(db)
	repos := store.Repositories()

	clients := NewClientHandler(repos, disp)
	cars := NewCarHandler(repos, disp)
	records := NewServiceRecordHandler(
		repos.Records,
		ucsr.NewAddServiceRecord(store, disp, "America/Sao_Paulo"),
		ucsr.NewUpdateServiceRecord(store, disp),
		ucsr.NewDeactivateServiceRecord(store, disp),
	)
	logs := NewAuditLogsHandler(db, "America/Sao_Paulo")

	r := gin.New()
	api := r.Group("/api")
	api.POST("/clients", clients.Create)
	api.GET("/clients", clients.List)
	api.GET("/clients/:id/cars", clients.ListCars)
	api.POST("/cars", cars.Create)
	api.GET("/cars", cars.List)
	api.GET("/cars/:id/service_records", cars.ListServiceRecords)
	api.POST("/services", records.Create)
	api.GET("/services", records.List)
	api.GET("/services/:id", records.Get)
	api.PUT("/services/:id", records.Update)
	api.DELETE("/services/:id", records.Delete)
	api.GET("/audit-logs", logs.List)

	return r, db, disp
}

func TestCRUD_Flow(t *testing.T) {
	r, _, disp := crudRouter(t)

	w := do(r, jsonRequest(http.MethodPost, "/api/clients", `{"name":" João Silva ","phone":"11999990000"}`))
	require.Equal(t, http.StatusCreated, w.Code)
	var client dto.ClientData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &client))
	assert.Equal(t, "João Silva", client.Name)

	w = do(r, jsonRequest(http.MethodPost, "/api/cars", `{"client_id":`+itoa(client.ID)+`,"brand":"Fiat","model":"Uno","year":2010}`))
	require.Equal(t, http.StatusCreated, w.Code)
	var car dto.CarData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &car))

	w = do(r, jsonRequest(http.MethodPost, "/api/services", `{"car_id":`+itoa(car.ID)+`,"servico":"troca de óleo","date":"2024-10-25","valor":150}`))
	require.Equal(t, http.StatusCreated, w.Code)
	var svc dto.ServiceData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &svc))
	assert.Equal(t, "2024-10-25", svc.Date)
	assert.True(t, svc.Active)

	w = do(r, httptest.NewRequest(http.MethodGet, "/api/cars/"+itoa(car.ID)+"/service_records", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "troca de óleo")

	w = do(r, jsonRequest(http.MethodPut, "/api/services/"+itoa(svc.ID), `{"valor":180.5}`))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &svc))
	require.NotNil(t, svc.Valor)
	assert.Equal(t, 180.5, *svc.Valor)
	assert.Equal(t, "troca de óleo", svc.Servico)

	w = do(r, httptest.NewRequest(http.MethodDelete, "/api/services/"+itoa(svc.ID), nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, httptest.NewRequest(http.MethodGet, "/api/services/"+itoa(svc.ID), nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &svc))
	assert.False(t, svc.Active)

	// audit é assíncrono
	disp.Close()

	w = do(r, httptest.NewRequest(http.MethodGet, "/api/audit-logs?entity=service_record", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(3), page.Total)
}

func TestCRUD_NotFound(t *testing.T) {
	r, _, _ := crudRouter(t)

	tests := []struct {
		name     string
		req      *http.Request
		wantCode string
	}{
		{"cars of unknown client", httptest.NewRequest(http.MethodGet, "/api/clients/99/cars", nil), "client_not_found"},
		{"car for unknown client", jsonRequest(http.MethodPost, "/api/cars", `{"client_id":99,"model":"Uno"}`), "client_not_found"},
		{"records of unknown car", httptest.NewRequest(http.MethodGet, "/api/cars/99/service_records", nil), "car_not_found"},
		{"service on unknown car", jsonRequest(http.MethodPost, "/api/services", `{"car_id":99,"servico":"alinhamento"}`), ucsr.CodeCarNotFound},
		{"get unknown service", httptest.NewRequest(http.MethodGet, "/api/services/99", nil), ucsr.CodeServiceRecordNotFound},
		{"update unknown service", jsonRequest(http.MethodPut, "/api/services/99", `{"servico":"x"}`), ucsr.CodeServiceRecordNotFound},
		{"delete unknown service", httptest.NewRequest(http.MethodDelete, "/api/services/99", nil), ucsr.CodeServiceRecordNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.req)
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, w).Code)
		})
	}
}

func TestCRUD_BadInput(t *testing.T) {
	r, _, _ := crudRouter(t)

	w := do(r, httptest.NewRequest(http.MethodGet, "/api/services/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_id", decodeError(t, w).Code)

	w = do(r, jsonRequest(http.MethodPost, "/api/clients", `{"name":"   "}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", decodeError(t, w).Code)
}

func TestList_EmptyIsArray(t *testing.T) {
	r, _, _ := crudRouter(t)

	w := do(r, httptest.NewRequest(http.MethodGet, "/api/services", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[],"total":0}`, w.Body.String())
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
