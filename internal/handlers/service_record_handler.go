package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/mech-ai/internal/domain/servicerecord"
	"github.com/BruksfildServices01/mech-ai/internal/dto"
	"github.com/BruksfildServices01/mech-ai/internal/httperr"
	"github.com/BruksfildServices01/mech-ai/internal/httpresp"
	"github.com/BruksfildServices01/mech-ai/internal/models"
	ucsr "github.com/BruksfildServices01/mech-ai/internal/usecase/servicerecord"
)

type addServiceRecordUC interface {
	Execute(ctx context.Context, in ucsr.AddServiceRecordInput) (*models.ServiceRecord, error)
}

type updateServiceRecordUC interface {
	Execute(ctx context.Context, in ucsr.UpdateServiceRecordInput) (*models.ServiceRecord, error)
}

type deactivateServiceRecordUC interface {
	Execute(ctx context.Context, id uint) error
}

type ServiceRecordHandler struct {
	records    domain.ServiceRecordRepository
	add        addServiceRecordUC
	update     updateServiceRecordUC
	deactivate deactivateServiceRecordUC
}

func NewServiceRecordHandler(
	records domain.ServiceRecordRepository,
	add addServiceRecordUC,
	update updateServiceRecordUC,
	deactivate deactivateServiceRecordUC,
) *ServiceRecordHandler {
	return &ServiceRecordHandler{
		records:    records,
		add:        add,
		update:     update,
		deactivate: deactivate,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateServiceRecordRequest struct {
	CarID        uint     `json:"car_id" binding:"required"`
	Servico      string   `json:"servico" binding:"required"`
	Date         string   `json:"date"`
	Valor        *float64 `json:"valor"`
	Observations string   `json:"observations"`
}

type UpdateServiceRecordRequest struct {
	CarID        *uint    `json:"car_id"`
	Servico      *string  `json:"servico"`
	Date         *string  `json:"date"`
	Valor        *float64 `json:"valor"`
	Observations *string  `json:"observations"`
	Active       *bool    `json:"active"`
}

// ======================================================
// CREATE
// ======================================================
func (h *ServiceRecordHandler) Create(c *gin.Context) {
	var req CreateServiceRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "car_id e servico são obrigatórios.")
		return
	}

	record, err := h.add.Execute(c.Request.Context(), ucsr.AddServiceRecordInput{
		CarID:        req.CarID,
		Servico:      req.Servico,
		Date:         req.Date,
		Valor:        req.Valor,
		Observations: req.Observations,
	})
	if err != nil {
		respond(c, err)
		return
	}

	httpresp.Created(c, dto.NewServiceData(record))
}

// ======================================================
// LIST / GET
// ======================================================
func (h *ServiceRecordHandler) List(c *gin.Context) {
	records, err := h.records.ListServiceRecords(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}
	httpresp.List(c, dto.NewServiceDataList(records))
}

func (h *ServiceRecordHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	record, err := h.records.GetServiceRecordByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, ucsr.CodeServiceRecordNotFound, "Serviço não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_load_service", "Erro ao carregar serviço.")
		return
	}

	httpresp.OK(c, dto.NewServiceData(record))
}

// ======================================================
// UPDATE (PUT parcial)
// ======================================================
func (h *ServiceRecordHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateServiceRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	record, err := h.update.Execute(c.Request.Context(), ucsr.UpdateServiceRecordInput{
		ID:           id,
		CarID:        req.CarID,
		Servico:      req.Servico,
		Date:         req.Date,
		Valor:        req.Valor,
		Observations: req.Observations,
		Active:       req.Active,
	})
	if err != nil {
		respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewServiceData(record))
}

// ======================================================
// DELETE (soft)
// ======================================================
func (h *ServiceRecordHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.deactivate.Execute(c.Request.Context(), id); err != nil {
		respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
