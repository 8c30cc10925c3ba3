package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/upb/employee-api/models"
	"github.com/upb/employee-api/repositories"
	"github.com/upb/employee-api/services"
	"github.com/upb/employee-api/utils"
	"go.uber.org/zap"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// EmployeeRequest represents a request to create or update an employee
type EmployeeRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Position string `json:"position" validate:"required"`
}

// EmployeeListResponse represents a paginated list of employees
type EmployeeListResponse struct {
	Items  []models.Employee `json:"items"`
	Total  int               `json:"total"`
	Offset int               `json:"offset"`
	Limit  int               `json:"limit"`
}

// EmployeeHandler handles employee HTTP requests
type EmployeeHandler struct {
	employees *services.EmployeeService
	logger    *zap.Logger
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(employees *services.EmployeeService, logger *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		employees: employees,
		logger:    logger,
	}
}

// HandleList handles GET /api/v1/employees
func (h *EmployeeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter := repositories.EmployeeFilter{
		Position: r.URL.Query().Get("position"),
		Limit:    defaultPageLimit,
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			_ = utils.WriteBadRequest(w, "Invalid offset parameter", nil)
			return
		}
		filter.Offset = offset
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > maxPageLimit {
			_ = utils.WriteBadRequest(w, "Invalid limit parameter", nil)
			return
		}
		filter.Limit = limit
	}

	items, total, err := h.employees.List(r.Context(), filter)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	resp := EmployeeListResponse{
		Items:  items,
		Total:  total,
		Offset: filter.Offset,
		Limit:  filter.Limit,
	}
	if err := utils.WriteJSON(w, http.StatusOK, resp); err != nil {
		h.logger.Error("failed to write employee list response", zap.Error(err))
	}
}

// HandleGet handles GET /api/v1/employees/{id}
func (h *EmployeeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseEmployeeID(w, r)
	if !ok {
		return
	}

	emp, err := h.employees.GetByID(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if err := utils.WriteJSON(w, http.StatusOK, emp); err != nil {
		h.logger.Error("failed to write employee response", zap.Error(err))
	}
}

// HandleCreate handles POST /api/v1/employees
func (h *EmployeeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	emp := &models.Employee{Name: req.Name, Position: req.Position}
	created, err := h.employees.Create(r.Context(), emp)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if err := utils.WriteJSON(w, http.StatusCreated, created); err != nil {
		h.logger.Error("failed to write employee response", zap.Error(err))
	}
}

// HandleUpdate handles PUT /api/v1/employees/{id}
func (h *EmployeeHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseEmployeeID(w, r)
	if !ok {
		return
	}

	var req EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	emp := &models.Employee{Name: req.Name, Position: req.Position}
	updated, err := h.employees.Update(r.Context(), id, emp)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if err := utils.WriteJSON(w, http.StatusOK, updated); err != nil {
		h.logger.Error("failed to write employee response", zap.Error(err))
	}
}

// HandleDelete handles DELETE /api/v1/employees/{id}
func (h *EmployeeHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseEmployeeID(w, r)
	if !ok {
		return
	}

	if err := h.employees.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	utils.WriteNoContent(w)
}

func parseEmployeeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id < 1 {
		_ = utils.WriteBadRequest(w, "Invalid employee ID", nil)
		return 0, false
	}
	return id, true
}
