package servicerecord

import (
	"strings"

	"github.com/BruksfildServices01/mech-ai/internal/models"
)

// Predicate is one SQL condition with its single bind argument.
type Predicate struct {
	Expr string
	Arg  any
}

// SearchFilter holds the optional search criteria. Empty strings are
// treated as "not supplied".
type SearchFilter struct {
	ClientName         string
	CarBrand           string
	CarModel           string
	ServiceDescription string
	Active             bool
}

func (f SearchFilter) normalized() SearchFilter {
	f.ClientName = strings.TrimSpace(f.ClientName)
	f.CarBrand = strings.TrimSpace(f.CarBrand)
	f.CarModel = strings.TrimSpace(f.CarModel)
	f.ServiceDescription = strings.TrimSpace(f.ServiceDescription)
	return f
}

// HasCriteria reports whether at least one text criterion was supplied.
func (f SearchFilter) HasCriteria() bool {
	n := f.normalized()
	return n.ClientName != "" || n.CarBrand != "" || n.CarModel != "" || n.ServiceDescription != ""
}

// NeedsClientJoin reports whether the query must join clients.
func (f SearchFilter) NeedsClientJoin() bool {
	return f.normalized().ClientName != ""
}

// Predicates folds the supplied criteria, in a fixed order, into
// substring conditions over the lowercased *_key columns, ANDed by the
// caller.
func (f SearchFilter) Predicates() []Predicate {
	n := f.normalized()

	optional := []struct {
		column string
		value  string
	}{
		{"clients.name_key", n.ClientName},
		{"cars.brand_key", n.CarBrand},
		{"cars.model_key", n.CarModel},
		{"service_records.servico_key", n.ServiceDescription},
	}

	var out []Predicate
	for _, o := range optional {
		if o.value == "" {
			continue
		}
		out = append(out, Predicate{
			Expr: o.column + " LIKE ?",
			Arg:  ContainsPattern(o.value),
		})
	}

	if n.Active {
		out = append(out, Predicate{Expr: "service_records.active = ?", Arg: true})
	}

	return out
}

func ContainsPattern(v string) string {
	return "%" + models.MatchKey(v) + "%"
}
