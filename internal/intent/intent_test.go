package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestKindOf(t *testing.T) {
	tests := map[string]Kind{
		"record_service":        KindCreate,
		"create_service":        KindCreate,
		"create_service_record": KindCreate,
		"register_service":      KindCreate,
		" Search_Service ":      KindSearch,
		"search":                KindSearch,
		"list_active_services":  KindList,
		"delete_service":        KindUnknown,
		"":                      KindUnknown,
	}
	for label, want := range tests {
		assert.Equal(t, want, KindOf(label), label)
	}
}

func TestParse_Create(t *testing.T) {
	env, err := Parse([]byte(`{
		"intent": "record_service",
		"data": {
			"client_name": "Maria Santos",
			"client_phone": null,
			"car_brand": "Honda",
			"car_model": "Civic",
			"car_color": "null",
			"car_year": "2019",
			"service_description": "Revisão dos 10.000 km",
			"service_date": "2024-10-25",
			"service_valor": 450.00,
			"service_observations": null
		}
	}`))
	require.NoError(t, err)

	assert.Equal(t, KindCreate, env.Kind)
	p, ok := env.Payload.(CreateServicePayload)
	require.True(t, ok)

	assert.Equal(t, "Maria Santos", p.ClientName)
	assert.Empty(t, p.ClientPhone)
	assert.Empty(t, p.CarColor)
	require.NotNil(t, p.CarYear)
	assert.Equal(t, 2019, *p.CarYear)
	require.NotNil(t, p.ServiceValor)
	assert.InDelta(t, 450.0, *p.ServiceValor, 0.001)
	assert.Empty(t, env.Warnings)
}

func TestParse_TolerantNumbers(t *testing.T) {
	env, err := Parse([]byte(`{"intent":"create_service","data":{
		"client_name":"Ana","car_model":"Gol","service_description":"Freio",
		"car_year":"dois mil","service_valor":"R$ 1.234,50"}}`))
	require.NoError(t, err)

	p := env.Payload.(CreateServicePayload)
	assert.Nil(t, p.CarYear)
	require.NotNil(t, p.ServiceValor)
	assert.InDelta(t, 1234.50, *p.ServiceValor, 0.001)
	assert.Len(t, env.Warnings, 1)
}

func TestParse_Search(t *testing.T) {
	env, err := Parse([]byte(`{"intent":"search","search_params":{"client_name":null,"car_brand":"Toyota"}}`))
	require.NoError(t, err)

	assert.Equal(t, KindSearch, env.Kind)
	assert.Equal(t, SearchParamsPayload{CarBrand: "Toyota"}, env.Payload)
}

func TestParse_MissingSubPayload(t *testing.T) {
	for _, raw := range []string{
		`{"intent":"record_service"}`,
		`{"intent":"record_service","data":null}`,
		`{"intent":"record_service","data":{}}`,
		`{"intent":"search_service","search_params":null}`,
	} {
		env, err := Parse([]byte(raw))
		require.NoError(t, err, raw)
		assert.Nil(t, env.Payload, raw)
	}
}

func TestParse_ListAndUnknown(t *testing.T) {
	env, err := Parse([]byte(`{"intent":"list_active_services"}`))
	require.NoError(t, err)
	assert.Equal(t, ListActivePayload{}, env.Payload)

	env, err = Parse([]byte(`{"intent":"delete_service","data":{"client_name":"Ana"}}`))
	require.NoError(t, err)
	assert.Equal(t, KindUnknown, env.Kind)
	assert.Equal(t, "delete_service", env.Label)
	assert.Nil(t, env.Payload)
}

func TestParse_Malformed(t *testing.T) {
	for _, raw := range []string{
		`not json`,
		`{"data":{}}`,
		`{"intent":""}`,
		`{"intent":"search","search_params":"toyota"}`,
		`{"intent":"record_service","data":{"client_name":["a"]}}`,
	} {
		_, err := Parse([]byte(raw))
		assert.ErrorIs(t, err, ErrMalformedEnvelope, raw)
	}
}

type stubRaw struct {
	out string
	err error
}

func (s stubRaw) ClassifyRaw(context.Context, string) (string, error) {
	return s.out, s.err
}

func TestClassifier(t *testing.T) {
	c := NewClassifier(stubRaw{out: `{"intent":"search","search_params":{"car_model":"Uno"}}`}, zaptest.NewLogger(t))
	env, err := c.Classify(context.Background(), "serviços do uno")
	require.NoError(t, err)
	assert.Equal(t, SearchParamsPayload{CarModel: "Uno"}, env.Payload)

	boom := errors.New("quota exceeded")
	_, err = NewClassifier(stubRaw{err: boom}, zaptest.NewLogger(t)).Classify(context.Background(), "x")
	assert.ErrorIs(t, err, boom)

	_, err = NewClassifier(stubRaw{out: "```"}, zaptest.NewLogger(t)).Classify(context.Background(), "x")
	assert.ErrorIs(t, err, ErrMalformedEnvelope)
}
