package models

import "time"

type Car struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint    `gorm:"not null;index" json:"client_id"`
	Client   *Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"owner,omitempty"`

	Brand *string `gorm:"size:100" json:"brand"`
	Model string  `gorm:"size:100;not null" json:"model"`
	Color *string `gorm:"size:50" json:"color"`
	Year  *int    `json:"year"`

	// chaves normalizadas para busca sem diferenciar maiúsculas
	BrandKey string `gorm:"size:100" json:"-"`
	ModelKey string `gorm:"size:100;index" json:"-"`
	ColorKey string `gorm:"size:50" json:"-"`

	ServiceRecords []ServiceRecord `gorm:"foreignKey:CarID" json:"service_records,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName junta marca e modelo, ignorando marca ausente.
func (c *Car) DisplayName() string {
	if c.Brand == nil || *c.Brand == "" {
		return c.Model
	}
	return *c.Brand + " " + c.Model
}
