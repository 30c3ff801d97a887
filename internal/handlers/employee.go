package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/HammadJahangir123/office-hub-pro/internal/middleware"
	"github.com/HammadJahangir123/office-hub-pro/internal/models"
	"github.com/HammadJahangir123/office-hub-pro/internal/repo"
	"github.com/HammadJahangir123/office-hub-pro/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
)

// EmployeeHandler serves employee record CRUD. Reads go to the repository;
// all writes go through the service so they are audited.
type EmployeeHandler struct {
	Repo    *repo.EmployeeRepo
	Service *service.EmployeeService
}

//
// ==========================
// List Employees
// ==========================
//

func (h *EmployeeHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	limit := 20
	offset := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 && val <= 200 {
			limit = val
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if val, err := strconv.Atoi(o); err == nil && val >= 0 {
			offset = val
		}
	}

	q := r.URL.Query().Get("q")

	var employees []models.Employee
	var err error
	if q != "" {
		employees, err = h.Repo.SearchPaginated(r.Context(), q, limit, offset)
	} else {
		employees, err = h.Repo.List(r.Context(), limit, offset)
	}
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	total, err := h.Repo.Count(r.Context())
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"items":  employees,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

//
// ==========================
// Get Employee By ID
// ==========================
//

func (h *EmployeeHandler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid employee id", http.StatusBadRequest)
		return
	}

	employee, err := h.Repo.GetByID(r.Context(), id)
	if errors.Is(err, repo.ErrEmployeeNotFound) {
		JSONError(w, "employee not found", http.StatusNotFound)
		return
	}
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(employee)
}

//
// ==========================
// Create Employee
// ==========================
//

func (h *EmployeeHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var input models.EmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONValidationError(w, "validation failed", validationFields(err), http.StatusBadRequest)
		return
	}

	employee, err := h.Service.Create(r.Context(), userID, input)
	if err != nil {
		if e, ok := err.(*pq.Error); ok && e.Code == "23505" {
			JSONError(w, "employee already exists", http.StatusConflict)
			return
		}
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(employee)
}

//
// ==========================
// Update Employee (owner or admin)
// ==========================
//

func (h *EmployeeHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid employee id", http.StatusBadRequest)
		return
	}

	var input models.EmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONValidationError(w, "validation failed", validationFields(err), http.StatusBadRequest)
		return
	}

	existing, err := h.Repo.GetByID(r.Context(), id)
	if errors.Is(err, repo.ErrEmployeeNotFound) {
		JSONError(w, "employee not found", http.StatusNotFound)
		return
	}
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if existing.CreatedBy != userID && !middleware.IsAdmin(r.Context()) {
		JSONError(w, "only the record owner or an admin can update", http.StatusForbidden)
		return
	}

	employee, err := h.Service.Update(r.Context(), userID, id, input)
	if errors.Is(err, repo.ErrEmployeeNotFound) {
		JSONError(w, "employee not found", http.StatusNotFound)
		return
	}
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(employee)
}

//
// ==========================
// Delete Employee (admin only)
// ==========================
//

func (h *EmployeeHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if !middleware.IsAdmin(r.Context()) {
		JSONError(w, "admin role required", http.StatusForbidden)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid employee id", http.StatusBadRequest)
		return
	}

	err = h.Service.Delete(r.Context(), userID, id)
	if errors.Is(err, repo.ErrEmployeeNotFound) {
		JSONError(w, "employee not found", http.StatusNotFound)
		return
	}
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// validationFields converts validator errors into the field map used by
// JSONValidationError.
func validationFields(err error) map[string]string {
	fields := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
	}
	return fields
}
