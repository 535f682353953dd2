package chat

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/mech-ai/internal/dto"
	"github.com/BruksfildServices01/mech-ai/internal/httperr"
	"github.com/BruksfildServices01/mech-ai/internal/intent"
	"github.com/BruksfildServices01/mech-ai/internal/metrics"
	"github.com/BruksfildServices01/mech-ai/internal/models"
	ucsr "github.com/BruksfildServices01/mech-ai/internal/usecase/servicerecord"
)

const (
	CodeUnknownIntent       = "unknown_intent"
	CodeMissingServiceData  = "missing_service_data"
	CodeMissingSearchParams = "missing_search_params"
	CodeUnexpected          = "unexpected_error"

	msgUnexpected = "Ocorreu um erro inesperado ao processar a intenção."
)

type creator interface {
	Execute(ctx context.Context, in ucsr.CreateServiceRecordInput) (*ucsr.CreateServiceRecordOutput, error)
}

type searcher interface {
	Execute(ctx context.Context, in ucsr.SearchServiceRecordsInput) (*ucsr.SearchServiceRecordsOutput, error)
}

type lister interface {
	Execute(ctx context.Context) ([]models.ServiceRecord, error)
}

// Router dispatches a classified envelope to its use case and formats the
// response. It keeps no state between requests.
type Router struct {
	create creator
	search searcher
	list   lister
	log    *zap.Logger
}

func NewRouter(create creator, search searcher, list lister, log *zap.Logger) *Router {
	return &Router{
		create: create,
		search: search,
		list:   list,
		log:    log.Named("router"),
	}
}

func (r *Router) Handle(ctx context.Context, env intent.Envelope) (*dto.ChatResponse, error) {
	resp, err := r.dispatch(ctx, env)

	outcome := metrics.OutcomeSuccess
	if err != nil {
		if _, ok := httperr.AsBusiness(err); ok {
			outcome = metrics.OutcomeClientError
		} else {
			outcome = metrics.OutcomeServerError
		}
	}
	metrics.IntentsTotal.WithLabelValues(string(env.Kind), outcome).Inc()

	return resp, err
}

func (r *Router) dispatch(ctx context.Context, env intent.Envelope) (*dto.ChatResponse, error) {
	var (
		resp *dto.ChatResponse
		err  error
	)

	switch env.Kind {
	case intent.KindCreate:
		p, ok := env.Payload.(intent.CreateServicePayload)
		if !ok {
			return nil, httperr.NewBusiness(CodeMissingServiceData, "Dados ausentes para criação de serviço.")
		}
		resp, err = r.handleCreate(ctx, p)

	case intent.KindSearch:
		p, ok := env.Payload.(intent.SearchParamsPayload)
		if !ok {
			return nil, httperr.NewBusiness(CodeMissingSearchParams, "Parâmetros de pesquisa ausentes.")
		}
		resp, err = r.handleSearch(ctx, p)

	case intent.KindList:
		resp, err = r.handleList(ctx)

	default:
		return nil, httperr.NewBusiness(CodeUnknownIntent, fmt.Sprintf("Intenção desconhecida: %s.", env.Label))
	}

	if err == nil {
		return resp, nil
	}

	// erros já classificados passam direto
	if _, ok := httperr.AsBusiness(err); ok {
		return nil, err
	}
	if _, ok := httperr.AsServer(err); ok {
		return nil, err
	}

	r.log.Error("unexpected error handling intent",
		zap.String("intent", env.Label),
		zap.Error(err),
	)
	return nil, httperr.NewServer(CodeUnexpected, msgUnexpected, err)
}

// ======================================================
// HANDLERS
// ======================================================

func (r *Router) handleCreate(ctx context.Context, p intent.CreateServicePayload) (*dto.ChatResponse, error) {
	out, err := r.create.Execute(ctx, ucsr.CreateServiceRecordInput{
		ClientName:         p.ClientName,
		ClientPhone:        p.ClientPhone,
		CarBrand:           p.CarBrand,
		CarModel:           p.CarModel,
		CarColor:           p.CarColor,
		CarYear:            p.CarYear,
		ServiceDescription: p.ServiceDescription,
		ServiceDate:        p.ServiceDate,
		Valor:              p.ServiceValor,
		Observations:       p.ServiceObservations,
	})
	if err != nil {
		return nil, err
	}

	return &dto.ChatResponse{
		Success:     true,
		Message:     out.Message,
		ClientData:  dto.NewClientData(out.Client),
		CarData:     dto.NewCarData(out.Car),
		ServiceData: dto.NewServiceData(out.Record),
	}, nil
}

func (r *Router) handleSearch(ctx context.Context, p intent.SearchParamsPayload) (*dto.ChatResponse, error) {
	out, err := r.search.Execute(ctx, ucsr.SearchServiceRecordsInput{
		ClientName:         p.ClientName,
		CarBrand:           p.CarBrand,
		CarModel:           p.CarModel,
		ServiceDescription: p.ServiceDescription,
	})
	if err != nil {
		return nil, err
	}

	return &dto.ChatResponse{
		Success:        true,
		Message:        formatRecords(out.Message, msgNoSearchResults, out.Records),
		ServiceRecords: dto.NewServiceDataList(out.Records),
	}, nil
}

func (r *Router) handleList(ctx context.Context) (*dto.ChatResponse, error) {
	records, err := r.list.Execute(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.ChatResponse{
		Success:        true,
		Message:        formatRecords(ucsr.MsgRecordsFound, msgNoActiveRecords, records),
		ServiceRecords: dto.NewServiceDataList(records),
	}, nil
}
