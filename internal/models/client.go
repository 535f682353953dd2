package models

import "time"

// Cliente da oficina. Criado sob demanda pelo fluxo de registro de serviço.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string  `gorm:"size:200;not null" json:"name"`
	NameKey string  `gorm:"size:200;index" json:"-"`
	Phone   *string `gorm:"size:20" json:"phone"`

	Cars []Car `gorm:"foreignKey:ClientID" json:"cars,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
