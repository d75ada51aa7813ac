// Package handler: export.go renders the dino list as CSV.
// GET /dinos.csv and GET /dinos?format=csv both land here through respond.
package handler

import (
	"encoding/csv"
	"net/http"
	"time"

	"github.com/pkordes/dinos/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{"id", "name", "color", "breed", "created_at", "updated_at"}

// writeCSV streams dinos as CSV, one row per dino in list order.
func writeCSV(w http.ResponseWriter, dinos []domain.Dino) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="dinos.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	//nolint:errcheck // write errors surface through cw.Error, and the status is already sent.
	cw.Write(csvHeaders)
	for _, d := range dinos {
		//nolint:errcheck
		cw.Write(dinoToCSVRecord(d))
	}
	cw.Flush()
}

// dinoToCSVRecord encodes a dino as a flat string slice.
func dinoToCSVRecord(d domain.Dino) []string {
	return []string{
		d.ID.String(),
		d.Name,
		d.Color,
		d.Breed,
		d.CreatedAt.UTC().Format(time.RFC3339),
		d.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
