package intent

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var ErrMalformedEnvelope = errors.New("malformed intent envelope")

const envelopeSchema = `{
  "type": "object",
  "required": ["intent"],
  "properties": {
    "intent": {"type": "string", "minLength": 1},
    "data": {
      "type": ["object", "null"],
      "properties": {
        "client_name": {"type": ["string", "null"]},
        "client_phone": {"type": ["string", "number", "null"]},
        "car_brand": {"type": ["string", "null"]},
        "car_model": {"type": ["string", "null"]},
        "car_color": {"type": ["string", "null"]},
        "car_year": {"type": ["integer", "number", "string", "null"]},
        "service_description": {"type": ["string", "null"]},
        "service_date": {"type": ["string", "null"]},
        "service_valor": {"type": ["number", "string", "null"]},
        "service_observations": {"type": ["string", "null"]}
      }
    },
    "search_params": {
      "type": ["object", "null"],
      "properties": {
        "client_name": {"type": ["string", "null"]},
        "car_brand": {"type": ["string", "null"]},
        "car_model": {"type": ["string", "null"]},
        "service_description": {"type": ["string", "null"]}
      }
    }
  }
}`

var schema = mustSchema(envelopeSchema)

func mustSchema(s string) *gojsonschema.Schema {
	sc, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(fmt.Sprintf("intent: invalid envelope schema: %v", err))
	}
	return sc
}

// ======================================================
// WIRE
// ======================================================

type wireEnvelope struct {
	Intent       string          `json:"intent"`
	Data         json.RawMessage `json:"data"`
	SearchParams json.RawMessage `json:"search_params"`
}

type wireCreate struct {
	ClientName          text      `json:"client_name"`
	ClientPhone         text      `json:"client_phone"`
	CarBrand            text      `json:"car_brand"`
	CarModel            text      `json:"car_model"`
	CarColor            text      `json:"car_color"`
	CarYear             FlexInt   `json:"car_year"`
	ServiceDescription  text      `json:"service_description"`
	ServiceDate         text      `json:"service_date"`
	ServiceValor        FlexFloat `json:"service_valor"`
	ServiceObservations text      `json:"service_observations"`
}

type wireSearch struct {
	ClientName         text `json:"client_name"`
	CarBrand           text `json:"car_brand"`
	CarModel           text `json:"car_model"`
	ServiceDescription text `json:"service_description"`
}

// ======================================================
// PARSE
// ======================================================

// Parse validates raw classifier output against the envelope schema and
// decodes it into an Envelope.
func Parse(raw []byte) (Envelope, error) {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return Envelope{}, fmt.Errorf("%w: %s", ErrMalformedEnvelope, strings.Join(errs, "; "))
	}

	var w wireEnvelope
	if err := json.Unmarshal(raw, &w); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}

	env := Envelope{
		Label: strings.TrimSpace(w.Intent),
		Kind:  KindOf(w.Intent),
	}

	switch env.Kind {
	case KindCreate:
		if isEmptyObject(w.Data) {
			return env, nil
		}
		var d wireCreate
		if err := json.Unmarshal(w.Data, &d); err != nil {
			return Envelope{}, fmt.Errorf("%w: data: %v", ErrMalformedEnvelope, err)
		}
		if d.CarYear.Invalid != "" {
			env.Warnings = append(env.Warnings, "car_year ignorado: "+d.CarYear.Invalid)
		}
		if d.ServiceValor.Invalid != "" {
			env.Warnings = append(env.Warnings, "service_valor ignorado: "+d.ServiceValor.Invalid)
		}
		env.Payload = CreateServicePayload{
			ClientName:          string(d.ClientName),
			ClientPhone:         string(d.ClientPhone),
			CarBrand:            string(d.CarBrand),
			CarModel:            string(d.CarModel),
			CarColor:            string(d.CarColor),
			CarYear:             d.CarYear.Value,
			ServiceDescription:  string(d.ServiceDescription),
			ServiceDate:         string(d.ServiceDate),
			ServiceValor:        d.ServiceValor.Value,
			ServiceObservations: string(d.ServiceObservations),
		}

	case KindSearch:
		if isEmptyObject(w.SearchParams) {
			return env, nil
		}
		var s wireSearch
		if err := json.Unmarshal(w.SearchParams, &s); err != nil {
			return Envelope{}, fmt.Errorf("%w: search_params: %v", ErrMalformedEnvelope, err)
		}
		env.Payload = SearchParamsPayload{
			ClientName:         string(s.ClientName),
			CarBrand:           string(s.CarBrand),
			CarModel:           string(s.CarModel),
			ServiceDescription: string(s.ServiceDescription),
		}

	case KindList:
		env.Payload = ListActivePayload{}
	}

	return env, nil
}

func isEmptyObject(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	if len(t) == 0 || bytes.Equal(t, []byte("null")) {
		return true
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(t, &m); err != nil {
		return false
	}
	return len(m) == 0
}

// ======================================================
// TOLERANT SCALARS
// ======================================================

// text decodes strings and numbers; null and the literal "null" become "".
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*t = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		s = n.String()
	}

	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "null") || strings.EqualFold(s, "none") {
		s = ""
	}
	*t = text(s)
	return nil
}

// FlexInt accepts a JSON number, a numeric string or null. Anything else is
// kept in Invalid and Value stays nil.
type FlexInt struct {
	Value   *int
	Invalid string
}

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	s, ok := scalar(b)
	if !ok || s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		f.Value = &n
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil && v == float64(int(v)) {
		n := int(v)
		f.Value = &n
		return nil
	}
	f.Invalid = s
	return nil
}

// FlexFloat accepts a JSON number, a numeric string ("450.00", "R$ 450,00")
// or null.
type FlexFloat struct {
	Value   *float64
	Invalid string
}

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	s, ok := scalar(b)
	if !ok || s == "" {
		return nil
	}
	if v, err := strconv.ParseFloat(normalizeAmount(s), 64); err == nil {
		f.Value = &v
		return nil
	}
	f.Invalid = s
	return nil
}

func scalar(b []byte) (string, bool) {
	var t text
	if err := t.UnmarshalJSON(b); err != nil {
		return "", false
	}
	return string(t), true
}

func normalizeAmount(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)

	// 1.234,56 → 1234.56
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return s
}
