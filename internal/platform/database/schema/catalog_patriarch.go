// Copyright (c) 2026 Patriarchia. All rights reserved.

// Package schema centralizes table and column identifiers so that SQL built
// in the repositories never hard-codes a column name twice.
package schema

// CatalogPatriarchTable represents the 'catalog.patriarchs' table
type CatalogPatriarchTable struct {
	Table          string
	ID             string
	Slug           string
	Name           string
	CopticName     string
	SequenceNumber string
	StartYear      string
	EndYear        string
	Era            string
	Contributions  string
	Biography      string
	HeresiesFought string
	Active         string
	CreatedAt      string
	UpdatedAt      string
}

// CatalogPatriarch is the schema definition for catalog.patriarchs
var CatalogPatriarch = CatalogPatriarchTable{
	Table:          "catalog.patriarchs",
	ID:             "id",
	Slug:           "slug",
	Name:           "name",
	CopticName:     "copticname",
	SequenceNumber: "sequencenumber",
	StartYear:      "startyear",
	EndYear:        "endyear",
	Era:            "era",
	Contributions:  "contributions",
	Biography:      "biography",
	HeresiesFought: "heresiesfought",
	Active:         "active",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
}
