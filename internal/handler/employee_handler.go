package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/employee-directory-api/internal/domain"
	"github.com/employee-directory-api/internal/dto"
	"github.com/employee-directory-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type EmployeeHandler struct {
	empService service.EmployeeService
	validator  *validator.Validate
	logger     *slog.Logger
}

func NewEmployeeHandler(empService service.EmployeeService, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		empService: empService,
		validator:  validator.New(),
		logger:     logger,
	}
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.EmployeeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	h.logger.Debug("received employee create request",
		slog.String("first_name", req.FirstName),
		slog.String("last_name", req.LastName),
	)

	emp, err := h.empService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.Header().Set("Location", "/api/employee/"+emp.ID)
	h.respondJSON(w, http.StatusCreated, toEmployeeResponse(emp))
}

func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.logger.Debug("received employee get request", slog.String("employee_id", id))

	emp, err := h.empService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toEmployeeResponse(emp))
}

func (h *EmployeeHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.EmployeeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	h.logger.Debug("received employee update request", slog.String("employee_id", id))

	emp, err := h.empService.Replace(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toEmployeeResponse(emp))
}

func (h *EmployeeHandler) GetReportingStructure(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.logger.Debug("received reporting structure get request", slog.String("employee_id", id))

	structure, err := h.empService.GetReportingStructure(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.ReportingStructureResponse{
		Employee:        toEmployeeTreeResponse(structure.Root),
		NumberOfReports: structure.NumberOfReports,
	})
}

func (h *EmployeeHandler) AddCompensation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.CreateCompensationRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	h.logger.Debug("received compensation create request", slog.String("employee_id", id))

	comp, err := h.empService.AddCompensation(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.Header().Set("Location", "/api/employee/"+comp.EmployeeID+"/compensation")
	h.respondJSON(w, http.StatusCreated, toCompensationResponse(comp))
}

func (h *EmployeeHandler) GetCompensation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.logger.Debug("received compensation get request", slog.String("employee_id", id))

	var (
		comp *domain.Compensation
		err  error
	)
	if raw := r.URL.Query().Get("asOf"); raw != "" {
		var asOf time.Time
		asOf, err = domain.ParseDate(raw)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "invalid asOf date", err.Error())
			return
		}
		comp, err = h.empService.GetCompensationAsOf(r.Context(), id, asOf)
	} else {
		comp, err = h.empService.GetCompensation(r.Context(), id)
	}
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toCompensationResponse(comp))
}

func (h *EmployeeHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}

	if err := h.validator.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return false
	}

	return true
}

func toEmployeeResponse(emp *domain.Employee) dto.EmployeeResponse {
	resp := dto.EmployeeResponse{
		EmployeeID:    emp.ID,
		FirstName:     emp.FirstName,
		LastName:      emp.LastName,
		Department:    emp.Department,
		Position:      emp.Position,
		DirectReports: make([]dto.EmployeeRef, len(emp.DirectReports)),
	}

	for i, reportID := range emp.DirectReports {
		resp.DirectReports[i] = dto.EmployeeRef{EmployeeID: reportID}
	}

	return resp
}

func toEmployeeTreeResponse(node *domain.ReportTree) dto.EmployeeTreeResponse {
	resp := dto.EmployeeTreeResponse{
		EmployeeID:    node.Employee.ID,
		FirstName:     node.Employee.FirstName,
		LastName:      node.Employee.LastName,
		Department:    node.Employee.Department,
		Position:      node.Employee.Position,
		DirectReports: make([]dto.EmployeeTreeResponse, len(node.DirectReports)),
	}

	for i, child := range node.DirectReports {
		resp.DirectReports[i] = toEmployeeTreeResponse(child)
	}

	return resp
}

func toCompensationResponse(comp *domain.Compensation) dto.CompensationResponse {
	resp := dto.CompensationResponse{
		CompensationID: comp.ID,
		Salary:         json.Number(comp.Salary.String()),
		EffectiveDate:  comp.EffectiveDate.Format(domain.DateLayout),
	}

	if comp.Employee != nil {
		resp.Employee = toEmployeeResponse(comp.Employee)
	} else {
		resp.Employee = dto.EmployeeResponse{EmployeeID: comp.EmployeeID, DirectReports: []dto.EmployeeRef{}}
	}

	return resp
}

func (h *EmployeeHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmployeeNotFound):
		h.respondError(w, http.StatusNotFound, "employee not found", "")
	case errors.Is(err, domain.ErrCompensationNotFound):
		h.respondError(w, http.StatusNotFound, "compensation not found", "")
	case errors.Is(err, domain.ErrCompensationEmployeeNotFound):
		h.respondError(w, http.StatusUnprocessableEntity, "employee not found", "")
	case errors.Is(err, domain.ErrInvalidSalary):
		h.respondError(w, http.StatusBadRequest, "invalid salary", err.Error())
	case errors.Is(err, domain.ErrInvalidDate):
		h.respondError(w, http.StatusBadRequest, "invalid effectiveDate", err.Error())
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

func (h *EmployeeHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h *EmployeeHandler) respondError(w http.ResponseWriter, status int, errMsg, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := dto.ErrorResponse{Error: errMsg}
	if details != "" {
		resp.Message = details
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode error response", slog.Any("error", err))
	}
}
