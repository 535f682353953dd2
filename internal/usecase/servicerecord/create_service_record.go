package servicerecord

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/mech-ai/internal/audit"
	domain "github.com/BruksfildServices01/mech-ai/internal/domain/servicerecord"
	"github.com/BruksfildServices01/mech-ai/internal/httperr"
	"github.com/BruksfildServices01/mech-ai/internal/metrics"
	"github.com/BruksfildServices01/mech-ai/internal/models"
	"github.com/BruksfildServices01/mech-ai/internal/timezone"
)

const (
	CodeMissingRequiredFields = "missing_required_fields"
	CodeCreateFailed          = "service_record_create_failed"

	msgMissingRequiredFields = "Por favor, forneça nome do cliente, modelo do carro e descrição do serviço."
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateServiceRecordInput struct {
	ClientName  string
	ClientPhone string

	CarBrand string
	CarModel string
	CarColor string
	CarYear  *int

	ServiceDescription string
	ServiceDate        string
	Valor              *float64
	Observations       string
}

type CreateServiceRecordOutput struct {
	Client  *models.Client
	Car     *models.Car
	Record  *models.ServiceRecord
	Message string
}

// ======================================================
// USE CASE
// ======================================================

type CreateServiceRecord struct {
	store    domain.Store
	audit    *audit.Dispatcher
	log      *zap.Logger
	timezone string
	now      func() time.Time
}

func NewCreateServiceRecord(
	store domain.Store,
	audit *audit.Dispatcher,
	log *zap.Logger,
	tz string,
) *CreateServiceRecord {
	return &CreateServiceRecord{
		store:    store,
		audit:    audit,
		log:      log.Named("create_service_record"),
		timezone: tz,
		now:      time.Now,
	}
}

// WithClock replaces the clock used for the default service date.
func (uc *CreateServiceRecord) WithClock(now func() time.Time) *CreateServiceRecord {
	uc.now = now
	return uc
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateServiceRecord) Execute(
	ctx context.Context,
	in CreateServiceRecordInput,
) (*CreateServiceRecordOutput, error) {

	// --------------------------------------------------
	// 1️⃣ Campos obrigatórios
	// --------------------------------------------------
	clientName := strings.TrimSpace(in.ClientName)
	carModel := strings.TrimSpace(in.CarModel)
	servico := strings.TrimSpace(in.ServiceDescription)

	if clientName == "" || carModel == "" || servico == "" {
		return nil, httperr.NewBusiness(CodeMissingRequiredFields, msgMissingRequiredFields)
	}

	// --------------------------------------------------
	// 2️⃣ Data do serviço (hoje quando ausente ou inválida)
	// --------------------------------------------------
	serviceDate := uc.resolveDate(in.ServiceDate)

	// --------------------------------------------------
	// 3️⃣ Cliente → carro → serviço na mesma transação
	// --------------------------------------------------
	var (
		client        *models.Client
		car           *models.Car
		clientCreated bool
		carCreated    bool
	)
	record := &models.ServiceRecord{
		Servico:      servico,
		Date:         serviceDate,
		Valor:        in.Valor,
		Observations: optional(in.Observations),
		Active:       true,
	}

	err := uc.store.WithinTransaction(ctx, func(tx domain.Repositories) error {
		var err error

		client, clientCreated, err = tx.Clients.GetOrCreateClient(ctx, clientName, in.ClientPhone)
		if err != nil {
			return fmt.Errorf("get or create client: %w", err)
		}

		car, carCreated, err = tx.Cars.GetOrCreateCar(ctx, domain.CarAttributes{
			ClientID: client.ID,
			Brand:    in.CarBrand,
			Model:    carModel,
			Color:    in.CarColor,
			Year:     in.CarYear,
		})
		if err != nil {
			return fmt.Errorf("get or create car: %w", err)
		}

		record.CarID = car.ID
		if err := tx.Records.CreateServiceRecord(ctx, record); err != nil {
			return fmt.Errorf("create service record: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.log.Error("service record transaction rolled back",
			zap.String("client", clientName),
			zap.Error(err),
		)
		return nil, httperr.NewServer(CodeCreateFailed, "Erro ao registrar serviço.", err)
	}

	// --------------------------------------------------
	// 4️⃣ Refresh pós-commit
	// --------------------------------------------------
	if err := uc.store.Refresh(ctx, client, car, record); err != nil {
		uc.log.Warn("refresh after commit failed", zap.Error(err))
	}

	metrics.ServiceRecordsCreated.Inc()

	// --------------------------------------------------
	// 5️⃣ Auditoria
	// --------------------------------------------------
	if clientCreated {
		uc.audit.Dispatch(audit.Event{
			Action:   audit.ActionClientCreated,
			Entity:   audit.EntityClient,
			EntityID: &client.ID,
			Metadata: map[string]any{"name": client.Name},
		})
	}
	if carCreated {
		uc.audit.Dispatch(audit.Event{
			Action:   audit.ActionCarCreated,
			Entity:   audit.EntityCar,
			EntityID: &car.ID,
			Metadata: map[string]any{"client_id": client.ID, "model": car.Model},
		})
	}
	uc.audit.Dispatch(audit.Event{
		Action:   audit.ActionServiceRecordCreated,
		Entity:   audit.EntityServiceRecord,
		EntityID: &record.ID,
		Metadata: map[string]any{"car_id": car.ID, "servico": record.Servico},
	})

	return &CreateServiceRecordOutput{
		Client:  client,
		Car:     car,
		Record:  record,
		Message: fmt.Sprintf("Serviço registrado com sucesso para %s - %s", client.Name, car.DisplayName()),
	}, nil
}

func (uc *CreateServiceRecord) resolveDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		if d, err := timezone.ParseDate(raw); err == nil {
			return d
		}
		uc.log.Warn("invalid service date, using today", zap.String("service_date", raw))
	}
	return timezone.DateOf(uc.now().In(timezone.Location(uc.timezone)))
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
