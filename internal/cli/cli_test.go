package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/BruksfildServices01/mech-ai/internal/config"
	"github.com/BruksfildServices01/mech-ai/internal/dto"
	"github.com/BruksfildServices01/mech-ai/internal/httperr"
)

type recordingProcessor struct {
	messages []string
	err      error
}

func (p *recordingProcessor) ProcessMessage(_ context.Context, message string) (*dto.ChatResponse, error) {
	p.messages = append(p.messages, message)
	if p.err != nil {
		return nil, p.err
	}
	return &dto.ChatResponse{Success: true, Message: "ok: " + message}, nil
}

func TestREPL_StopsOnExitWord(t *testing.T) {
	p := &recordingProcessor{}
	in := strings.NewReader("troca de óleo\n\n  SAIR \nnão deve chegar\n")
	var out bytes.Buffer

	require.NoError(t, repl(context.Background(), in, &out, p))

	assert.Equal(t, []string{"troca de óleo"}, p.messages)
	assert.Contains(t, out.String(), `"message": "ok: troca de óleo"`)
}

func TestREPL_EOF(t *testing.T) {
	p := &recordingProcessor{}
	var out bytes.Buffer

	require.NoError(t, repl(context.Background(), strings.NewReader("listar serviços"), &out, p))
	assert.Equal(t, []string{"listar serviços"}, p.messages)
}

func TestREPL_ErrorsDoNotEndSession(t *testing.T) {
	p := &recordingProcessor{err: httperr.NewBusiness("empty_search", "Nenhum critério de busca informado.")}
	var out bytes.Buffer

	require.NoError(t, repl(context.Background(), strings.NewReader("a\nb\nsair\n"), &out, p))

	assert.Len(t, p.messages, 2)
	assert.Equal(t, 2, strings.Count(out.String(), `"error_code": "empty_search"`))
}

func TestRender_Error(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, render(&out, nil, httperr.NewServer("create_failed", "Erro ao registrar serviço.", nil)))

	var got httperr.HTTPError
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.False(t, got.Success)
	assert.Equal(t, "create_failed", got.Code)
	assert.Equal(t, "Erro ao registrar serviço.", got.Message)
}

func TestRootCmd_AskRequiresMessage(t *testing.T) {
	cfg := &config.Config{DBDriver: config.DriverSQLite}
	root := NewRootCmd(cfg, zaptest.NewLogger(t))
	root.SetArgs([]string{"ask"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	assert.Error(t, root.Execute())
}

func TestRootCmd_Migrate(t *testing.T) {
	cfg := &config.Config{
		DBDriver:   config.DriverSQLite,
		SQLitePath: t.TempDir() + "/mechai.db",
	}
	root := NewRootCmd(cfg, zaptest.NewLogger(t))
	var out bytes.Buffer
	root.SetArgs([]string{"migrate"})
	root.SetOut(&out)

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Banco de dados inicializado.")
}
