package models

import (
	"strings"

	"gorm.io/gorm"
)

// MatchKey is the form stored in *_key columns and used for every
// case-insensitive comparison. Lowercasing happens here because SQLite's
// LOWER only folds ASCII.
func MatchKey(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func optionalKey(v *string) string {
	if v == nil {
		return ""
	}
	return MatchKey(*v)
}

func (c *Client) BeforeSave(tx *gorm.DB) error {
	c.NameKey = MatchKey(c.Name)
	return nil
}

func (c *Car) BeforeSave(tx *gorm.DB) error {
	c.BrandKey = optionalKey(c.Brand)
	c.ModelKey = MatchKey(c.Model)
	c.ColorKey = optionalKey(c.Color)
	return nil
}

func (s *ServiceRecord) BeforeSave(tx *gorm.DB) error {
	s.ServicoKey = MatchKey(s.Servico)
	return nil
}
