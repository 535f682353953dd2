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

type ClientHandler struct {
	clients domain.ClientRepository
	cars    domain.CarRepository
	audit   *audit.Dispatcher
}

func NewClientHandler(repos domain.Repositories, audit *audit.Dispatcher) *ClientHandler {
	return &ClientHandler{
		clients: repos.Clients,
		cars:    repos.Cars,
		audit:   audit,
	}
}

type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

// ======================================================
// CREATE CLIENT
// ======================================================
func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		httperr.BadRequest(c, "invalid_request", "Nome do cliente é obrigatório.")
		return
	}

	client := &models.Client{
		Name: strings.TrimSpace(req.Name),
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		client.Phone = &phone
	}

	if err := h.clients.CreateClient(c.Request.Context(), client); err != nil {
		httperr.Internal(c, "failed_to_create_client", "Erro ao criar cliente.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:   audit.ActionClientCreated,
		Entity:   audit.EntityClient,
		EntityID: &client.ID,
		Metadata: map[string]any{"name": client.Name, "source": "api"},
	})

	httpresp.Created(c, dto.NewClientData(client))
}

// ======================================================
// LIST CLIENTS
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.clients.ListClients(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	out := make([]dto.ClientData, 0, len(clients))
	for i := range clients {
		out = append(out, *dto.NewClientData(&clients[i]))
	}
	httpresp.List(c, out)
}

// ======================================================
// CARS OF CLIENT
// ======================================================
func (h *ClientHandler) ListCars(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.clients.GetClientByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_load_client", "Erro ao carregar cliente.")
		return
	}

	cars, err := h.cars.ListCarsByClient(ctx, id)
	if err != nil {
		httperr.Internal(c, "failed_to_list_cars", "Erro ao listar carros.")
		return
	}
	if len(cars) == 0 {
		httperr.NotFound(c, "cars_not_found", "Nenhum carro encontrado para este cliente.")
		return
	}

	httpresp.List(c, carDataList(cars))
}

func carDataList(cars []models.Car) []dto.CarData {
	out := make([]dto.CarData, 0, len(cars))
	for i := range cars {
		out = append(out, *dto.NewCarData(&cars[i]))
	}
	return out
}
