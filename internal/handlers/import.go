package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/HammadJahangir123/office-hub-pro/internal/importer"
	"github.com/HammadJahangir123/office-hub-pro/internal/middleware"
	"github.com/HammadJahangir123/office-hub-pro/internal/service"
)

// ImportHandler ingests bulk CSV uploads of employee records. Each row goes
// through the audited service path, so imports leave the same trail as
// one-by-one creation.
type ImportHandler struct {
	Service *service.EmployeeService
}

// ImportEmployees parses a CSV request body and creates one record per row.
// Response: {"created": n, "failed": n, "errors": [{"row": n, "error": "..."}]}.
func (h *ImportHandler) ImportEmployees(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	res, err := importer.Parse(r.Body)
	if err != nil {
		JSONError(w, "invalid CSV: "+err.Error(), http.StatusBadRequest)
		return
	}

	rowErrors := res.Errors
	created := 0
	for _, row := range res.Rows {
		if _, err := h.Service.Create(r.Context(), userID, row.Input); err != nil {
			rowErrors = append(rowErrors, importer.RowError{Row: row.Row, Error: "insert failed"})
			continue
		}
		created++
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"created": created,
		"failed":  len(rowErrors),
		"errors":  rowErrors,
	})
}
