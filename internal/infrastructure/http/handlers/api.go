// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nutriplan/v2/internal/infrastructure/monitoring"
	"github.com/nutriplan/v2/internal/ports/inbound"
	"github.com/nutriplan/v2/pkg/errors"
)

// APIHandlers handles REST API requests
type APIHandlers struct {
	plannerService inbound.PlannerService
	metrics        *monitoring.MetricsCollector
	logger         *zap.Logger
}

// NewAPIHandlers creates a new API handlers instance
func NewAPIHandlers(
	plannerService inbound.PlannerService,
	metrics *monitoring.MetricsCollector,
	logger *zap.Logger,
) *APIHandlers {
	return &APIHandlers{
		plannerService: plannerService,
		metrics:        metrics,
		logger:         logger,
	}
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// GeneratePlan handles POST /api/v1/plans
func (h *APIHandlers) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.GeneratePlanCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.writeError(w, r, errors.NewInvalidPlanRequestError("request body is not valid JSON"))
		return
	}

	plan, err := h.plannerService.GeneratePlan(r.Context(), cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.metrics.RecordPlanGenerated(len(plan.Rules), countSentinelSlots(plan))

	h.writeJSON(w, http.StatusCreated, APIResponse{
		Success: true,
		Data:    plan,
		Message: "Meal plan generated successfully",
	})
}

// GetPlan handles GET /api/v1/plans/{id}
func (h *APIHandlers) GetPlan(w http.ResponseWriter, r *http.Request) {
	planID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, errors.NewInvalidPlanRequestError("plan id must be a valid UUID"))
		return
	}

	plan, err := h.plannerService.GetPlanByID(r.Context(), planID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    plan,
	})
}

// ListPlans handles GET /api/v1/plans
func (h *APIHandlers) ListPlans(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.writeError(w, r, errors.NewInvalidPlanRequestError("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	plans, err := h.plannerService.ListRecentPlans(r.Context(), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    plans,
	})
}

// SwapMeal handles POST /api/v1/plans/{id}/swap
func (h *APIHandlers) SwapMeal(w http.ResponseWriter, r *http.Request) {
	planID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, errors.NewInvalidSwapRequestError("plan id must be a valid UUID"))
		return
	}

	var cmd inbound.SwapMealCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.writeError(w, r, errors.NewInvalidSwapRequestError("request body is not valid JSON"))
		return
	}
	cmd.PlanID = planID

	plan, err := h.plannerService.SwapMeal(r.Context(), cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.metrics.RecordMealSwapped()

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    plan,
		Message: "Meal swapped successfully",
	})
}

// DeletePlan handles DELETE /api/v1/plans/{id}
func (h *APIHandlers) DeletePlan(w http.ResponseWriter, r *http.Request) {
	planID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, errors.NewInvalidPlanRequestError("plan id must be a valid UUID"))
		return
	}

	if err := h.plannerService.DeletePlan(r.Context(), planID); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Message: "Meal plan deleted successfully",
	})
}

// HealthCheck handles GET /health
func (h *APIHandlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		},
		Message: "Service is healthy",
	})
}

func countSentinelSlots(plan *inbound.MealPlanDTO) int {
	count := 0
	for _, day := range plan.Days {
		for _, meal := range day.Meals {
			if !meal.Available {
				count++
			}
		}
	}
	return count
}

// writeError maps application errors onto HTTP responses
func (h *APIHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		appErr = errors.NewAppError(errors.CodeInternal, "An unexpected error occurred", err.Error())
	}

	status := appErr.StatusCode()
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("request_id", chimiddleware.GetReqID(r.Context())),
			zap.String("code", string(appErr.Code)),
			zap.Error(err),
		)
	}

	h.writeJSON(w, status, APIResponse{
		Success: false,
		Error:   appErr.Message,
	})
}

// writeJSON writes a JSON response
func (h *APIHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}
