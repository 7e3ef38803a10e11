package order_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ms-storefront/internal/auth"
	"ms-storefront/internal/logger"
	"ms-storefront/internal/models"
	"ms-storefront/internal/order"
	"ms-storefront/internal/order/pickuppass"
)

type Handler struct {
	OrderService *order.OrderService
	Passes       *pickuppass.Generator
	Logger       *logger.Logger
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/order", func(r chi.Router) {
		r.Post("/", h.PlaceOrder)
		r.Get("/{orderId}", h.GetOrder)
		r.Put("/{orderId}", h.UpdateOrder)
		r.Post("/{orderId}/confirm", h.ConfirmOrder)
		r.Delete("/{orderId}", h.CancelOrder)
		r.Get("/{orderId}/pass", h.GetPickupPass)
	})
}

func writeEnvelope(w http.ResponseWriter, status int, resp models.OrderResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	h.Logger.Info("API", "PlaceOrder: received request")

	var req models.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("PlaceOrder: failed to decode request body: %v", err))
		writeEnvelope(w, http.StatusBadRequest, models.OrderResponse{Message: "Invalid request body: " + err.Error()})
		return
	}

	// Checkout works for anonymous customers too; a bearer token only
	// ties the order to a known customer id.
	customerID := ""
	if token, err := auth.ExtractTokenFromRequest(r); err == nil {
		if sub, err := auth.ExtractUserIDFromJWT(token); err == nil {
			customerID = sub
		}
	}

	placed, err := h.OrderService.PlaceOrder(customerID, req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("PlaceOrder: %v", err))
		status := http.StatusBadRequest
		if errors.Is(err, order.ErrSlotTaken) {
			status = http.StatusConflict
		}
		writeEnvelope(w, status, models.OrderResponse{Message: err.Error()})
		return
	}
	h.Logger.LogOrder("PLACED", placed.OrderID, fmt.Sprintf("event=%s pickup=%s", placed.EventID, placed.PickupAt))

	writeEnvelope(w, http.StatusCreated, models.OrderResponse{
		Success: true,
		Data:    &models.OrderData{ID: placed.OrderID},
	})
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	h.Logger.Info("API", fmt.Sprintf("GetOrder: orderId=%s", orderID))

	orderData, err := h.OrderService.GetOrder(orderID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetOrder: order not found: %v", err))
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orderData)
}

func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	h.Logger.Info("API", fmt.Sprintf("UpdateOrder: orderId=%s", orderID))

	var updateData models.Order
	if err := json.NewDecoder(r.Body).Decode(&updateData); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.OrderService.UpdateOrder(orderID, updateData); err != nil {
		h.Logger.Error("API", fmt.Sprintf("UpdateOrder: %v", err))
		http.Error(w, "Could not update order: "+err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	h.Logger.Info("API", fmt.Sprintf("ConfirmOrder: orderId=%s", orderID))

	if err := h.OrderService.ConfirmOrder(orderID); err != nil {
		h.Logger.Error("API", fmt.Sprintf("ConfirmOrder: %v", err))
		http.Error(w, "Could not confirm order: "+err.Error(), http.StatusBadRequest)
		return
	}
	h.Logger.LogOrder("CONFIRMED", orderID, "order confirmed")

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	h.Logger.Info("API", fmt.Sprintf("CancelOrder: orderId=%s", orderID))

	if err := h.OrderService.CancelOrder(orderID); err != nil {
		h.Logger.Error("API", fmt.Sprintf("CancelOrder: %v", err))
		http.Error(w, "Could not cancel order: "+err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetPickupPass(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	h.Logger.Info("API", fmt.Sprintf("GetPickupPass: orderId=%s", orderID))

	orderData, err := h.OrderService.GetOrder(orderID)
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	png, err := h.Passes.GeneratePass(orderData.Order)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetPickupPass: failed to render pass: %v", err))
		http.Error(w, "Could not generate pickup pass", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
