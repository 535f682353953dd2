package servicerecord

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/mech-ai/internal/audit"
	domain "github.com/BruksfildServices01/mech-ai/internal/domain/servicerecord"
	"github.com/BruksfildServices01/mech-ai/internal/httperr"
	"github.com/BruksfildServices01/mech-ai/internal/metrics"
	"github.com/BruksfildServices01/mech-ai/internal/models"
	"github.com/BruksfildServices01/mech-ai/internal/timezone"
)

const (
	CodeServiceRecordNotFound = "service_record_not_found"
	CodeCarNotFound           = "car_not_found"
	CodeInvalidDate           = "invalid_date"
	CodeMissingServico        = "missing_servico"
	CodeUpdateFailed          = "service_record_update_failed"
)

var (
	ErrServiceRecordNotFound = httperr.NewBusiness(CodeServiceRecordNotFound, "Serviço não encontrado.")
	ErrCarNotFound           = httperr.NewBusiness(CodeCarNotFound, "Carro não encontrado.")
)

// ======================================================
// ADD TO CAR (CRUD)
// ======================================================

type AddServiceRecordInput struct {
	CarID        uint
	Servico      string
	Date         string
	Valor        *float64
	Observations string
}

type AddServiceRecord struct {
	store    domain.Store
	audit    *audit.Dispatcher
	timezone string
	now      func() time.Time
}

func NewAddServiceRecord(store domain.Store, audit *audit.Dispatcher, tz string) *AddServiceRecord {
	return &AddServiceRecord{store: store, audit: audit, timezone: tz, now: time.Now}
}

func (uc *AddServiceRecord) Execute(
	ctx context.Context,
	in AddServiceRecordInput,
) (*models.ServiceRecord, error) {

	servico := strings.TrimSpace(in.Servico)
	if servico == "" {
		return nil, httperr.NewBusiness(CodeMissingServico, "Descrição do serviço é obrigatória.")
	}

	date := timezone.DateOf(uc.now().In(timezone.Location(uc.timezone)))
	if strings.TrimSpace(in.Date) != "" {
		d, err := timezone.ParseDate(strings.TrimSpace(in.Date))
		if err != nil {
			return nil, httperr.NewBusiness(CodeInvalidDate, "Data inválida, use o formato AAAA-MM-DD.")
		}
		date = d
	}

	repos := uc.store.Repositories()
	if _, err := repos.Cars.GetCarByID(ctx, in.CarID); err != nil {
		return nil, notFoundOr(err, ErrCarNotFound)
	}

	record := &models.ServiceRecord{
		CarID:        in.CarID,
		Servico:      servico,
		Date:         date,
		Valor:        in.Valor,
		Observations: optional(in.Observations),
		Active:       true,
	}
	if err := repos.Records.CreateServiceRecord(ctx, record); err != nil {
		return nil, httperr.NewServer(CodeCreateFailed, "Erro ao registrar serviço.", err)
	}

	metrics.ServiceRecordsCreated.Inc()
	uc.audit.Dispatch(audit.Event{
		Action:   audit.ActionServiceRecordCreated,
		Entity:   audit.EntityServiceRecord,
		EntityID: &record.ID,
		Metadata: map[string]any{"car_id": record.CarID, "servico": record.Servico},
	})

	return record, nil
}

// ======================================================
// UPDATE (parcial)
// ======================================================

type UpdateServiceRecordInput struct {
	ID uint

	CarID        *uint
	Servico      *string
	Date         *string
	Valor        *float64
	Observations *string
	Active       *bool
}

type UpdateServiceRecord struct {
	store domain.Store
	audit *audit.Dispatcher
}

func NewUpdateServiceRecord(store domain.Store, audit *audit.Dispatcher) *UpdateServiceRecord {
	return &UpdateServiceRecord{store: store, audit: audit}
}

func (uc *UpdateServiceRecord) Execute(
	ctx context.Context,
	in UpdateServiceRecordInput,
) (*models.ServiceRecord, error) {

	repos := uc.store.Repositories()

	record, err := repos.Records.GetServiceRecordByID(ctx, in.ID)
	if err != nil {
		return nil, notFoundOr(err, ErrServiceRecordNotFound)
	}

	changed := []string{}

	if in.CarID != nil && *in.CarID != record.CarID {
		if _, err := repos.Cars.GetCarByID(ctx, *in.CarID); err != nil {
			return nil, notFoundOr(err, ErrCarNotFound)
		}
		record.CarID = *in.CarID
		record.Car = nil
		changed = append(changed, "car_id")
	}

	if in.Servico != nil {
		s := strings.TrimSpace(*in.Servico)
		if s == "" {
			return nil, httperr.NewBusiness(CodeMissingServico, "Descrição do serviço é obrigatória.")
		}
		record.Servico = s
		changed = append(changed, "servico")
	}

	if in.Date != nil {
		d, err := timezone.ParseDate(strings.TrimSpace(*in.Date))
		if err != nil {
			return nil, httperr.NewBusiness(CodeInvalidDate, "Data inválida, use o formato AAAA-MM-DD.")
		}
		record.Date = d
		changed = append(changed, "date")
	}

	if in.Valor != nil {
		record.Valor = in.Valor
		changed = append(changed, "valor")
	}

	if in.Observations != nil {
		record.Observations = optional(*in.Observations)
		changed = append(changed, "observations")
	}

	if in.Active != nil {
		record.Active = *in.Active
		changed = append(changed, "active")
	}

	if err := repos.Records.UpdateServiceRecord(ctx, record); err != nil {
		return nil, httperr.NewServer(CodeUpdateFailed, "Erro ao atualizar serviço.", err)
	}

	uc.audit.Dispatch(audit.Event{
		Action:   audit.ActionServiceRecordUpdated,
		Entity:   audit.EntityServiceRecord,
		EntityID: &record.ID,
		Metadata: map[string]any{"fields": changed},
	})

	return record, nil
}

// ======================================================
// DEACTIVATE (soft-delete)
// ======================================================

type DeactivateServiceRecord struct {
	store domain.Store
	audit *audit.Dispatcher
}

func NewDeactivateServiceRecord(store domain.Store, audit *audit.Dispatcher) *DeactivateServiceRecord {
	return &DeactivateServiceRecord{store: store, audit: audit}
}

func (uc *DeactivateServiceRecord) Execute(ctx context.Context, id uint) error {
	if err := uc.store.Repositories().Records.DeactivateServiceRecord(ctx, id); err != nil {
		return notFoundOr(err, ErrServiceRecordNotFound)
	}

	uc.audit.Dispatch(audit.Event{
		Action:   audit.ActionServiceRecordDeactivated,
		Entity:   audit.EntityServiceRecord,
		EntityID: &id,
	})
	return nil
}

func notFoundOr(err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return httperr.NewServer(CodeUpdateFailed, "Erro ao acessar o banco de dados.", err)
}

// IsNotFound reports whether err is one of the not-found business errors.
func IsNotFound(err error) bool {
	return httperr.IsBusiness(err, CodeServiceRecordNotFound) || httperr.IsBusiness(err, CodeCarNotFound)
}
