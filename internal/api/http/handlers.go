package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"mealdrop/internal/domain"
	"mealdrop/internal/service"
	"mealdrop/internal/validate"

	"github.com/gorilla/mux"
)

type Handler struct {
	Catalog service.CatalogServiceInterface
	Orders  service.OrderServiceInterface
	Audit   service.InvalidRequestAuditor
}

func NewHandler(catalogSvc service.CatalogServiceInterface, orderSvc service.OrderServiceInterface, auditor service.InvalidRequestAuditor) *Handler {
	if auditor == nil {
		auditor = service.NopAuditor{}
	}
	return &Handler{
		Catalog: catalogSvc,
		Orders:  orderSvc,
		Audit:   auditor,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/meals", h.listMeals).Methods("GET")
	r.HandleFunc("/api/meals", h.publishMeal).Methods("POST")
	r.HandleFunc("/api/restaurants", h.listRestaurants).Methods("GET")

	r.HandleFunc("/api/orders", h.submitOrder).Methods("POST")
	r.HandleFunc("/api/orders/{area}/{orderId}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{area}/{orderId}/qrcode", h.getOrderReceipt).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "healthy",
		"service":      "mealdrop",
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"auditDropped": h.Audit.Dropped(),
	})
}

func (h *Handler) listMeals(w http.ResponseWriter, r *http.Request) {
	area := validate.String(r.URL.Query().Get("area"))
	if area == "" {
		h.auditInvalid(r, "missing area in list meals", nil, r.URL.RawQuery)
		writeError(w, http.StatusBadRequest, "missing required query param: area", nil)
		return
	}

	meals, err := h.Catalog.ListMeals(area)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read meals", nil)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"area":  area,
		"count": len(meals),
		"meals": meals,
	})
}

func (h *Handler) listRestaurants(w http.ResponseWriter, r *http.Request) {
	area := validate.String(r.URL.Query().Get("area"))
	if area == "" {
		h.auditInvalid(r, "missing area in list restaurants", nil, r.URL.RawQuery)
		writeError(w, http.StatusBadRequest, "missing required query param: area", nil)
		return
	}

	restaurants, err := h.Catalog.ListRestaurants(area)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read restaurants", nil)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"area":        area,
		"count":       len(restaurants),
		"restaurants": restaurants,
	})
}

func (h *Handler) publishMeal(w http.ResponseWriter, r *http.Request) {
	var req service.PublishMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.auditInvalid(r, "malformed JSON in publish meal", []string{err.Error()}, nil)
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}

	meal, err := h.Catalog.PublishMeal(r.Context(), req)
	if err != nil {
		if ve, ok := service.AsValidation(err); ok {
			h.auditInvalid(r, "invalid meal publish", ve.Problems, req)
			writeError(w, http.StatusBadRequest, "invalid request", ve.Problems)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to store meal", nil)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"mealId": meal.MealID,
		"area":   meal.Area,
	})
}

func (h *Handler) submitOrder(w http.ResponseWriter, r *http.Request) {
	var req service.SubmitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.auditInvalid(r, "malformed JSON in submit order", []string{err.Error()}, nil)
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}

	result, err := h.Orders.Submit(r.Context(), req)
	if err != nil {
		if ve, ok := service.AsValidation(err); ok {
			h.auditInvalid(r, "invalid order submit", ve.Problems, req)
			writeError(w, http.StatusBadRequest, "invalid request", ve.Problems)
			return
		}
		if errors.Is(err, service.ErrNoOrderableItems) {
			h.auditInvalid(r, "order references only missing meals", []string{err.Error()}, req)
			writeError(w, http.StatusBadRequest, "no meals in the order are available in this area", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to store order", nil)
		return
	}

	if len(result.DroppedMealIDs) > 0 {
		h.auditInvalid(r, "order references missing meals",
			result.DroppedMealIDs, req)
	}

	order := result.Order
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"orderId":          order.OrderID,
		"area":             order.Area,
		"totalCost":        order.TotalCost,
		"estimatedMinutes": order.EstimatedMinutes,
		"items":            order.Items,
	})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	order, err := h.Orders.Get(vars["area"], vars["orderId"])
	if err != nil {
		writeError(w, http.StatusNotFound, "order not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderReceipt(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	qr, err := h.Orders.ReceiptCode(vars["area"], vars["orderId"])
	if err != nil {
		writeError(w, http.StatusNotFound, "order not found", nil)
		return
	}
	if len(qr) == 0 {
		writeError(w, http.StatusNotFound, "receipt code not found", nil)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qr)
}

func (h *Handler) auditInvalid(r *http.Request, reason string, details []string, payload interface{}) {
	h.Audit.PublishInvalid(r.Context(), domain.AuditEvent{
		Reason:  reason,
		Errors:  details,
		Payload: payload,
		At:      time.Now().UTC(),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string, details []string) {
	body := map[string]interface{}{"error": message}
	if len(details) > 0 {
		body["errors"] = details
	}
	writeJSON(w, status, body)
}
