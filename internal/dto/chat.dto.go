package dto

import (
	"time"

	"github.com/BruksfildServices01/mech-ai/internal/models"
	"github.com/BruksfildServices01/mech-ai/internal/timezone"
)

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorCode string `json:"error_code,omitempty"`

	ClientData     *ClientData   `json:"client_data"`
	CarData        *CarData      `json:"car_data"`
	ServiceData    *ServiceData  `json:"service_data"`
	ServiceRecords []ServiceData `json:"service_records"`
}

type ClientData struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Phone *string `json:"phone"`
}

type CarData struct {
	ID       uint        `json:"id"`
	ClientID uint        `json:"client_id"`
	Brand    *string     `json:"brand"`
	Model    string      `json:"model"`
	Color    *string     `json:"color"`
	Year     *int        `json:"year"`
	Owner    *ClientData `json:"owner,omitempty"`
}

type ServiceData struct {
	ID           uint      `json:"id"`
	CarID        uint      `json:"car_id"`
	Servico      string    `json:"servico"`
	Date         string    `json:"date"`
	Valor        *float64  `json:"valor"`
	Observations *string   `json:"observations"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	Car          *CarData  `json:"car,omitempty"`
}

func NewClientData(c *models.Client) *ClientData {
	if c == nil {
		return nil
	}
	return &ClientData{ID: c.ID, Name: c.Name, Phone: c.Phone}
}

func NewCarData(c *models.Car) *CarData {
	if c == nil {
		return nil
	}
	return &CarData{
		ID:       c.ID,
		ClientID: c.ClientID,
		Brand:    c.Brand,
		Model:    c.Model,
		Color:    c.Color,
		Year:     c.Year,
		Owner:    NewClientData(c.Client),
	}
}

func NewServiceData(r *models.ServiceRecord) *ServiceData {
	if r == nil {
		return nil
	}
	return &ServiceData{
		ID:           r.ID,
		CarID:        r.CarID,
		Servico:      r.Servico,
		Date:         r.Date.Format(timezone.DateLayout),
		Valor:        r.Valor,
		Observations: r.Observations,
		Active:       r.Active,
		CreatedAt:    r.CreatedAt,
		Car:          NewCarData(r.Car),
	}
}

func NewServiceDataList(records []models.ServiceRecord) []ServiceData {
	out := make([]ServiceData, 0, len(records))
	for i := range records {
		out = append(out, *NewServiceData(&records[i]))
	}
	return out
}
