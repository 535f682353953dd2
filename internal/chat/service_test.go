package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/BruksfildServices01/mech-ai/internal/gemini"
	"github.com/BruksfildServices01/mech-ai/internal/httperr"
	"github.com/BruksfildServices01/mech-ai/internal/infra/repository"
	"github.com/BruksfildServices01/mech-ai/internal/intent"
	"github.com/BruksfildServices01/mech-ai/internal/testutil"
	ucsr "github.com/BruksfildServices01/mech-ai/internal/usecase/servicerecord"
)

type scriptedRaw map[string]string

func (s scriptedRaw) ClassifyRaw(_ context.Context, utterance string) (string, error) {
	out, ok := s[utterance]
	if !ok {
		return "", errors.New("unexpected utterance")
	}
	return out, nil
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f fakeTranscriber) Transcribe(context.Context, []byte, string) (string, error) {
	return f.text, f.err
}

type fakeArchive struct {
	calls int
	err   error
}

func (f *fakeArchive) Archive(context.Context, []byte, string) (string, error) {
	f.calls++
	return "audio/key.wav", f.err
}

func newPipeline(t *testing.T, raw scriptedRaw, tr Transcriber, ar Archiver) *Service {
	t.Helper()
	log := zaptest.NewLogger(t)
	store := repository.NewGormStore(testutil.NewTestDB(t))

	router := NewRouter(
		ucsr.NewCreateServiceRecord(store, nil, log, "UTC"),
		ucsr.NewSearchServiceRecords(store),
		ucsr.NewListActiveServiceRecords(store),
		log,
	)
	return NewService(intent.NewClassifier(raw, log), tr, ar, router, log)
}

func TestService_CreateThenSearch(t *testing.T) {
	ctx := context.Background()
	svc := newPipeline(t, scriptedRaw{
		"registra revisão": `{"intent":"record_service","data":{"client_name":"Maria Santos","car_brand":"Honda","car_model":"Civic","service_description":"Revisão dos 10.000 km","service_valor":450.00}}`,
		"civic da maria":   `{"intent":"search_service","search_params":{"client_name":"maria","car_model":"civic"}}`,
		"tudo ativo":       `{"intent":"list_active_services"}`,
	}, nil, nil)

	created, err := svc.ProcessMessage(ctx, "registra revisão")
	require.NoError(t, err)
	assert.Equal(t, "Serviço registrado com sucesso para Maria Santos - Honda Civic", created.Message)

	found, err := svc.ProcessMessage(ctx, "  civic da maria ")
	require.NoError(t, err)
	require.Len(t, found.ServiceRecords, 1)
	assert.Contains(t, found.Message, "Maria Santos")
	assert.Contains(t, found.Message, "Honda Civic")
	assert.Contains(t, found.Message, "R$ 450.00")
	require.NotNil(t, found.ServiceRecords[0].Car)
	assert.Equal(t, "Maria Santos", found.ServiceRecords[0].Car.Owner.Name)

	listed, err := svc.ProcessMessage(ctx, "tudo ativo")
	require.NoError(t, err)
	assert.Len(t, listed.ServiceRecords, 1)
}

func TestService_EmptyMessage(t *testing.T) {
	_, err := newPipeline(t, scriptedRaw{}, nil, nil).ProcessMessage(context.Background(), "   ")
	assert.True(t, httperr.IsBusiness(err, CodeEmptyMessage))
}

func TestService_ClassificationFailure(t *testing.T) {
	_, err := newPipeline(t, scriptedRaw{}, nil, nil).ProcessMessage(context.Background(), "oi")
	se, ok := httperr.AsServer(err)
	require.True(t, ok)
	assert.Equal(t, CodeClassification, se.Code)
	assert.Contains(t, se.Message, "unexpected utterance")
}

func TestService_NotConfigured(t *testing.T) {
	svc := NewService(nil, nil, nil, newRouter(t, nil, nil, nil), zaptest.NewLogger(t))

	_, err := svc.ProcessMessage(context.Background(), "oi")
	se, ok := httperr.AsServer(err)
	require.True(t, ok)
	assert.Equal(t, CodeLLMNotConfigured, se.Code)

	_, err = svc.ProcessAudio(context.Background(), []byte{1}, "audio/wav")
	se, ok = httperr.AsServer(err)
	require.True(t, ok)
	assert.Equal(t, CodeLLMNotConfigured, se.Code)
}

func TestService_Audio(t *testing.T) {
	ctx := context.Background()
	archive := &fakeArchive{err: errors.New("bucket missing")}
	svc := newPipeline(t,
		scriptedRaw{"liste os serviços ativos": `{"intent":"list_active_services"}`},
		fakeTranscriber{text: " liste os serviços ativos "},
		archive,
	)

	resp, err := svc.ProcessAudio(ctx, []byte("RIFF"), "audio/wav")
	require.NoError(t, err)
	assert.Equal(t, msgNoActiveRecords, resp.Message)
	assert.Equal(t, 1, archive.calls)
}

func TestService_AudioErrors(t *testing.T) {
	ctx := context.Background()

	_, err := newPipeline(t, scriptedRaw{}, fakeTranscriber{}, nil).ProcessAudio(ctx, nil, "audio/wav")
	assert.True(t, httperr.IsBusiness(err, CodeEmptyAudio))

	_, err = newPipeline(t, scriptedRaw{}, fakeTranscriber{err: gemini.ErrEmptyTranscription}, nil).
		ProcessAudio(ctx, []byte{1}, "audio/wav")
	assert.True(t, httperr.IsBusiness(err, CodeEmptyTranscription))

	_, err = newPipeline(t, scriptedRaw{}, fakeTranscriber{text: "   "}, nil).
		ProcessAudio(ctx, []byte{1}, "audio/wav")
	assert.True(t, httperr.IsBusiness(err, CodeEmptyTranscription))

	_, err = newPipeline(t, scriptedRaw{}, fakeTranscriber{err: errors.New("503")}, nil).
		ProcessAudio(ctx, []byte{1}, "audio/wav")
	se, ok := httperr.AsServer(err)
	require.True(t, ok)
	assert.Equal(t, CodeTranscription, se.Code)
}
