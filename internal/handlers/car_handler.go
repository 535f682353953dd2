package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/mech-ai/internal/audit"
	domain "github.com/BruksfildServices01/mech-ai/internal/domain/servicerecord"
	"github.com/BruksfildServices01/mech-ai/internal/dto"
	"github.com/BruksfildServices01/mech-ai/internal/httperr"
	"github.com/BruksfildServices01/mech-ai/internal/httpresp"
	"github.com/BruksfildServices01/mech-ai/internal/models"
)

type CarHandler struct {
	clients domain.ClientRepository
	cars    domain.CarRepository
	records domain.ServiceRecordRepository
	audit   *audit.Dispatcher
}

func NewCarHandler(repos domain.Repositories, audit *audit.Dispatcher) *CarHandler {
	return &CarHandler{
		clients: repos.Clients,
		cars:    repos.Cars,
		records: repos.Records,
		audit:   audit,
	}
}

type CreateCarRequest struct {
	ClientID uint   `json:"client_id" binding:"required"`
	Brand    string `json:"brand"`
	Model    string `json:"model" binding:"required"`
	Color    string `json:"color"`
	Year     *int   `json:"year"`
}

// ======================================================
// CREATE CAR
// ======================================================
func (h *CarHandler) Create(c *gin.Context) {
	var req CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Model) == "" {
		httperr.BadRequest(c, "invalid_request", "client_id e modelo são obrigatórios.")
		return
	}

	ctx := c.Request.Context()
	if _, err := h.clients.GetClientByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_load_client", "Erro ao carregar cliente.")
		return
	}

	car := &models.Car{
		ClientID: req.ClientID,
		Model:    strings.TrimSpace(req.Model),
		Year:     req.Year,
	}
	if b := strings.TrimSpace(req.Brand); b != "" {
		car.Brand = &b
	}
	if col := strings.TrimSpace(req.Color); col != "" {
		car.Color = &col
	}

	if err := h.cars.CreateCar(ctx, car); err != nil {
		httperr.Internal(c, "failed_to_create_car", "Erro ao criar carro.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:   audit.ActionCarCreated,
		Entity:   audit.EntityCar,
		EntityID: &car.ID,
		Metadata: map[string]any{"client_id": car.ClientID, "model": car.Model, "source": "api"},
	})

	httpresp.Created(c, dto.NewCarData(car))
}

// ======================================================
// LIST CARS
// ======================================================
func (h *CarHandler) List(c *gin.Context) {
	cars, err := h.cars.ListCars(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_cars", "Erro ao listar carros.")
		return
	}
	httpresp.List(c, carDataList(cars))
}

// ======================================================
// SERVICE RECORDS OF CAR
// ======================================================
func (h *CarHandler) ListServiceRecords(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.cars.GetCarByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "car_not_found", "Carro não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_load_car", "Erro ao carregar carro.")
		return
	}

	records, err := h.records.ListServiceRecordsByCar(ctx, id)
	if err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}
	if len(records) == 0 {
		httperr.NotFound(c, "services_not_found", "Nenhum serviço encontrado para este carro.")
		return
	}

	httpresp.List(c, dto.NewServiceDataList(records))
}
