package cart_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ms-storefront/internal/cart"
	"ms-storefront/internal/logger"
	"ms-storefront/internal/models"
)

type Handler struct {
	Store  *cart.Store
	Logger *logger.Logger
}

func NewHandler(store *cart.Store, log *logger.Logger) *Handler {
	return &Handler{Store: store, Logger: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/cart/{eventId}/{customerId}", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Put("/", h.SetLine)
		r.Delete("/", h.ClearCart)
	})
	r.Route("/profile/{customerId}", func(r chi.Router) {
		r.Get("/", h.GetProfile)
		r.Put("/", h.SaveProfile)
	})
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")
	customerID := chi.URLParam(r, "customerId")

	cartData, err := h.Store.Get(r.Context(), eventID, customerID)
	if err != nil {
		h.Logger.Error("CART", fmt.Sprintf("GetCart: %v", err))
		http.Error(w, "Could not load cart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cartData)
}

func (h *Handler) SetLine(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")
	customerID := chi.URLParam(r, "customerId")

	var line models.CartLine
	if err := json.NewDecoder(r.Body).Decode(&line); err != nil {
		http.Error(w, "Invalid cart line JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if line.ItemID == "" {
		http.Error(w, "itemId is required", http.StatusBadRequest)
		return
	}

	cartData, err := h.Store.SetLine(r.Context(), eventID, customerID, line)
	if err != nil {
		h.Logger.Error("CART", fmt.Sprintf("SetLine: %v", err))
		http.Error(w, "Could not update cart", http.StatusInternalServerError)
		return
	}
	h.Logger.Debug("CART", fmt.Sprintf("SetLine: event=%s item=%s qty=%d", eventID, line.ItemID, line.Quantity))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cartData)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")
	customerID := chi.URLParam(r, "customerId")

	if err := h.Store.Clear(r.Context(), eventID, customerID); err != nil {
		h.Logger.Error("CART", fmt.Sprintf("ClearCart: %v", err))
		http.Error(w, "Could not clear cart", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")

	profile, err := h.Store.GetProfile(r.Context(), customerID)
	if err != nil {
		h.Logger.Error("CART", fmt.Sprintf("GetProfile: %v", err))
		http.Error(w, "Could not load profile", http.StatusInternalServerError)
		return
	}
	if profile == nil {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

func (h *Handler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")

	var profile models.ContactProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, "Invalid profile JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Store.SaveProfile(r.Context(), customerID, profile); err != nil {
		h.Logger.Error("CART", fmt.Sprintf("SaveProfile: %v", err))
		http.Error(w, "Could not save profile", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
