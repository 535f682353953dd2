package gemini

import (
	"fmt"

	"google.golang.org/genai"
)

const systemPrompt = `Você é o Mech-AI, um assistente especializado em registrar e pesquisar serviços automotivos.
Sua função é extrair informações de conversas com mecânicos e formatar em registros estruturados ou parâmetros de pesquisa.
Se faltar alguma informação, use null como valor. Seja conciso e objetivo.`

const transcribePrompt = "Por favor, transcreva este áudio."

func classifyPrompt(message, today string) string {
	return fmt.Sprintf(`Você deve classificar a intenção do mecânico e extrair os dados.

INTENTS PERMITIDOS (use EXATAMENTE um destes):
- "record_service": quando o mecânico quer REGISTRAR/CRIAR um novo serviço
- "search_service": quando o mecânico quer BUSCAR/CONSULTAR serviços existentes
- "list_active_services": quando o mecânico quer LISTAR todos os serviços ativos

Para "record_service" preencha "data" com: client_name, client_phone, car_brand,
car_model, car_color, car_year (número), service_description,
service_date (YYYY-MM-DD), service_valor (número) e service_observations.
Infira a marca quando apenas um modelo comum for citado (ex: Palio -> Fiat, Corolla -> Toyota).

Para "search_service" preencha "search_params" com: client_name, car_brand,
car_model e service_description.

Hoje é %s. Converta datas relativas ("ontem", "semana passada") para YYYY-MM-DD.

Mensagem do mecânico: %s`, today, message)
}

func envelopeSchema() *genai.Schema {
	str := func() *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Nullable: ptr(true)}
	}

	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: []string{"intent"},
		Properties: map[string]*genai.Schema{
			"intent": {
				Type: genai.TypeString,
				Enum: []string{"record_service", "search_service", "list_active_services"},
			},
			"data": {
				Type:     genai.TypeObject,
				Nullable: ptr(true),
				Properties: map[string]*genai.Schema{
					"client_name":          str(),
					"client_phone":         str(),
					"car_brand":            str(),
					"car_model":            str(),
					"car_color":            str(),
					"car_year":             {Type: genai.TypeInteger, Nullable: ptr(true)},
					"service_description":  str(),
					"service_date":         str(),
					"service_valor":        {Type: genai.TypeNumber, Nullable: ptr(true)},
					"service_observations": str(),
				},
			},
			"search_params": {
				Type:     genai.TypeObject,
				Nullable: ptr(true),
				Properties: map[string]*genai.Schema{
					"client_name":         str(),
					"car_brand":           str(),
					"car_model":           str(),
					"service_description": str(),
				},
			},
		},
	}
}
