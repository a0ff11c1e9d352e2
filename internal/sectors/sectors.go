// Package sectors maps the fixed set of economic sectors used by the alerts
// endpoint to the BOE search query that tracks each one.
package sectors

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownSector indicates a sector identifier outside the fixed enumeration.
var ErrUnknownSector = errors.New("unknown sector")

// ID identifies a sector.
type ID string

const (
	Agricultura   ID = "agricultura"
	Educacion     ID = "educacion"
	Empleo        ID = "empleo"
	Energia       ID = "energia"
	Fiscal        ID = "fiscal"
	MedioAmbiente ID = "medioambiente"
	Sanidad       ID = "sanidad"
	Tecnologia    ID = "tecnologia"
	Transporte    ID = "transporte"
	Vivienda      ID = "vivienda"
)

// Sector pairs an identifier with its search query.
type Sector struct {
	ID    ID     `json:"id"`
	Query string `json:"query"`
}

var queries = map[ID]string{
	Agricultura:   "agricultura ganadería pesca",
	Educacion:     "educación universidades enseñanza",
	Empleo:        "empleo trabajo seguridad social",
	Energia:       "energía electricidad hidrocarburos",
	Fiscal:        "impuesto tributario hacienda",
	MedioAmbiente: "medio ambiente residuos emisiones",
	Sanidad:       "sanidad salud medicamentos",
	Tecnologia:    "telecomunicaciones digital tecnología",
	Transporte:    "transporte tráfico ferroviario",
	Vivienda:      "vivienda arrendamiento urbanismo",
}

// Lookup returns the search query for the sector identified by id.
// Identifiers are matched case-insensitively after trimming.
func Lookup(id string) (string, error) {
	key := ID(strings.ToLower(strings.TrimSpace(id)))
	q, ok := queries[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSector, id)
	}
	return q, nil
}

// All returns every sector ordered by identifier.
func All() []Sector {
	all := make([]Sector, 0, len(queries))
	for id, q := range queries {
		all = append(all, Sector{ID: id, Query: q})
	}
	slices.SortFunc(all, func(a, b Sector) int {
		return strings.Compare(string(a.ID), string(b.ID))
	})
	return all
}
