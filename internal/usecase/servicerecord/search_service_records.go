package servicerecord

import (
	"context"

	domain "github.com/BruksfildServices01/mech-ai/internal/domain/servicerecord"
	"github.com/BruksfildServices01/mech-ai/internal/httperr"
	"github.com/BruksfildServices01/mech-ai/internal/models"
)

const (
	CodeEmptySearch  = "empty_search_criteria"
	CodeSearchFailed = "service_record_search_failed"

	MsgRecordsFound = "✅ Serviços encontrados:"

	msgEmptySearch = "Por favor, forneça nome do cliente, marca, modelo do carro ou descrição do serviço para a pesquisa."
)

type SearchServiceRecordsInput struct {
	ClientName         string
	CarBrand           string
	CarModel           string
	ServiceDescription string
}

type SearchServiceRecordsOutput struct {
	Records []models.ServiceRecord
	Message string
}

type SearchServiceRecords struct {
	store domain.Store
}

func NewSearchServiceRecords(store domain.Store) *SearchServiceRecords {
	return &SearchServiceRecords{store: store}
}

func (uc *SearchServiceRecords) Execute(
	ctx context.Context,
	in SearchServiceRecordsInput,
) (*SearchServiceRecordsOutput, error) {

	filter := domain.SearchFilter{
		ClientName:         in.ClientName,
		CarBrand:           in.CarBrand,
		CarModel:           in.CarModel,
		ServiceDescription: in.ServiceDescription,
		Active:             true,
	}

	// sem critério nenhuma consulta é feita
	if !filter.HasCriteria() {
		return nil, httperr.NewBusiness(CodeEmptySearch, msgEmptySearch)
	}

	records, err := uc.store.Repositories().Records.SearchServiceRecords(ctx, filter)
	if err != nil {
		return nil, httperr.NewServer(CodeSearchFailed, "Erro ao pesquisar serviços.", err)
	}

	return &SearchServiceRecordsOutput{
		Records: records,
		Message: MsgRecordsFound,
	}, nil
}
