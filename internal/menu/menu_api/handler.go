package menu_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ms-storefront/internal/logger"
	"ms-storefront/internal/menu"
	"ms-storefront/internal/models"
)

type Handler struct {
	Service *menu.Service
	Logger  *logger.Logger
}

func NewHandler(service *menu.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/storefront/event/{eventId}/menu", h.ListMenu)
}

func (h *Handler) RegisterMerchantRoutes(r chi.Router) {
	r.Post("/merchant/event/{eventId}/menu", h.AddItem)
	r.Put("/merchant/menu/{itemId}", h.UpdateItem)
	r.Delete("/merchant/menu/{itemId}", h.RemoveItem)
}

func (h *Handler) ListMenu(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	items, err := h.Service.ListMenu(eventID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListMenu: %v", err))
		http.Error(w, "Could not load menu", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	var item models.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "Invalid menu item JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.Service.AddItem(eventID, item)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("AddItem: %v", err))
		http.Error(w, "Could not create menu item: "+err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	var item models.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "Invalid menu item JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Service.UpdateItem(itemID, item); err != nil {
		h.Logger.Error("API", fmt.Sprintf("UpdateItem: %v", err))
		http.Error(w, "Could not update menu item: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	if err := h.Service.RemoveItem(itemID); err != nil {
		h.Logger.Error("API", fmt.Sprintf("RemoveItem: %v", err))
		http.Error(w, "Could not delete menu item: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
