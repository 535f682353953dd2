package intent

// Payload is the closed set of structured payloads an Envelope carries.
type Payload interface {
	isPayload()
}

type CreateServicePayload struct {
	ClientName  string
	ClientPhone string

	CarBrand string
	CarModel string
	CarColor string
	CarYear  *int

	ServiceDescription  string
	ServiceDate         string
	ServiceValor        *float64
	ServiceObservations string
}

type SearchParamsPayload struct {
	ClientName         string
	CarBrand           string
	CarModel           string
	ServiceDescription string
}

type ListActivePayload struct{}

func (CreateServicePayload) isPayload() {}
func (SearchParamsPayload) isPayload()  {}
func (ListActivePayload) isPayload()    {}

// Envelope is one classified utterance. Payload is nil when the sub-payload
// the intent requires was not returned.
type Envelope struct {
	Label   string
	Kind    Kind
	Payload Payload

	// campos opcionais descartados na decodificação
	Warnings []string
}
