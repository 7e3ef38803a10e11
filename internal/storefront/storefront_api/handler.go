package storefront_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ms-storefront/internal/logger"
	"ms-storefront/internal/models"
	"ms-storefront/internal/storefront"
)

type Handler struct {
	Service *storefront.Service
	Logger  *logger.Logger
}

func NewHandler(service *storefront.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

// RegisterPublicRoutes mounts the customer-facing read surface.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/storefront/{merchant}", h.GetStorefront)
	r.Get("/storefront/event/{eventId}", h.GetEvent)
	r.Get("/storefront/event/{eventId}/schedule", h.GetSchedule)
}

// RegisterMerchantRoutes mounts the dashboard mutations; the caller
// wraps them in the auth middleware.
func (h *Handler) RegisterMerchantRoutes(r chi.Router) {
	r.Post("/merchant/event", h.CreateEvent)
	r.Put("/merchant/event/{eventId}", h.UpdateEvent)
	r.Post("/merchant/event/{eventId}/windows", h.AddPickupWindow)
	r.Delete("/merchant/windows/{windowId}", h.RemovePickupWindow)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) GetStorefront(w http.ResponseWriter, r *http.Request) {
	merchant := chi.URLParam(r, "merchant")
	h.Logger.Info("API", fmt.Sprintf("GetStorefront: merchant=%s", merchant))

	resp, err := h.Service.GetStorefront(merchant)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetStorefront: %v", err))
		http.Error(w, "Storefront not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	event, err := h.Service.GetEvent(eventID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetEvent: %v", err))
		http.Error(w, "Event not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")
	dayKey := r.URL.Query().Get("day")
	h.Logger.Debug("API", fmt.Sprintf("GetSchedule: eventId=%s day=%s", eventID, dayKey))

	sched, err := h.Service.GetSchedule(eventID, dayKey)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetSchedule: %v", err))
		http.Error(w, "Event not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, sched)
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var event models.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Invalid event JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.Service.CreateEvent(event)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateEvent: %v", err))
		http.Error(w, "Could not create event: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	var event models.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Invalid event JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Service.UpdateEvent(eventID, event); err != nil {
		h.Logger.Error("API", fmt.Sprintf("UpdateEvent: %v", err))
		http.Error(w, "Could not update event: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddPickupWindow(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	var window models.PickupWindow
	if err := json.NewDecoder(r.Body).Decode(&window); err != nil {
		http.Error(w, "Invalid pickup window JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.Service.AddPickupWindow(eventID, window)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("AddPickupWindow: %v", err))
		http.Error(w, "Could not create pickup window: "+err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) RemovePickupWindow(w http.ResponseWriter, r *http.Request) {
	windowID := chi.URLParam(r, "windowId")

	if err := h.Service.RemovePickupWindow(windowID); err != nil {
		h.Logger.Error("API", fmt.Sprintf("RemovePickupWindow: %v", err))
		http.Error(w, "Could not delete pickup window: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
