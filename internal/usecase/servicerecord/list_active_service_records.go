package servicerecord

import (
	"context"

	domain "github.com/BruksfildServices01/mech-ai/internal/domain/servicerecord"
	"github.com/BruksfildServices01/mech-ai/internal/httperr"
	"github.com/BruksfildServices01/mech-ai/internal/models"
)

type ListActiveServiceRecords struct {
	store domain.Store
}

func NewListActiveServiceRecords(store domain.Store) *ListActiveServiceRecords {
	return &ListActiveServiceRecords{store: store}
}

func (uc *ListActiveServiceRecords) Execute(ctx context.Context) ([]models.ServiceRecord, error) {
	records, err := uc.store.Repositories().Records.SearchServiceRecords(ctx, domain.SearchFilter{Active: true})
	if err != nil {
		return nil, httperr.NewServer(CodeSearchFailed, "Erro ao listar serviços ativos.", err)
	}
	return records, nil
}
