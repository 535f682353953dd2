package models

import "time"

type ServiceRecord struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CarID uint `gorm:"not null;index" json:"car_id"`
	Car   *Car `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"car,omitempty"`

	Servico      string    `gorm:"size:200;not null" json:"servico"`
	ServicoKey   string    `gorm:"size:200" json:"-"`
	Date         time.Time `gorm:"type:date;not null" json:"date"`
	Valor        *float64  `json:"valor"`
	Observations *string   `gorm:"type:text" json:"observations"`

	// false marca o registro como removido (soft-delete)
	Active bool `gorm:"default:true;index" json:"active"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
