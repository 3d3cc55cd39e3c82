package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/TanishqDodiya/elyf-EVspare/internal/order"
)

type CreateOrderRequest struct {
	Customer struct {
		Name  string `json:"name" validate:"required"`
		Email string `json:"email" validate:"required,email"`
		Phone string `json:"phone" validate:"required"`
	} `json:"customer"`
	ShippingAddress struct {
		Address string `json:"address" validate:"required"`
		City    string `json:"city" validate:"required"`
		State   string `json:"state" validate:"required"`
		Pincode string `json:"pincode" validate:"required"`
	} `json:"shippingAddress"`
	Items []struct {
		Product  string `json:"product" validate:"required"`
		Quantity int    `json:"quantity" validate:"required,min=1"`
	} `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string `json:"paymentMethod" validate:"omitempty,oneof=cod online bank_transfer"`
	Notes         string `json:"notes" validate:"omitempty,max=500"`
}

type UpdateStatusRequest struct {
	Status            string `json:"status" validate:"required"`
	TrackingNumber    string `json:"trackingNumber"`
	EstimatedDelivery string `json:"estimatedDelivery" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus" validate:"required"`
}

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	svc      order.Service
	validate *validator.Validate
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{
		svc:      svc,
		validate: validator.New(),
	}
}

func (h *OrderHandler) RegisterRoutes(router chi.Router) {
	router.Post("/orders", h.CreateOrder)
	router.Get("/orders", h.ListOrders)
	router.Get("/orders/{id}", h.GetOrderByID)
	router.Get("/orders/customer/{email}", h.ListOrdersByCustomer)
	router.Put("/orders/{id}/status", h.UpdateStatus)
	router.Put("/orders/{id}/payment-status", h.UpdatePaymentStatus)
}

// CreateOrder handles POST /orders.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		log.Warn().Err(err).Msg("handler: failed to decode create order request")
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			respondWithJSON(w, http.StatusBadRequest, response{
				Success: false,
				Message: "Validation failed",
				Details: formatValidationErrors(validationErrors),
			})
		} else {
			log.Error().Err(err).Msg("handler: unexpected validation error type")
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	input := order.CreateOrderInput{
		Customer: order.Customer{
			Name:  req.Customer.Name,
			Email: req.Customer.Email,
			Phone: req.Customer.Phone,
		},
		ShippingAddress: order.ShippingAddress{
			Address: req.ShippingAddress.Address,
			City:    req.ShippingAddress.City,
			State:   req.ShippingAddress.State,
			Pincode: req.ShippingAddress.Pincode,
		},
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, order.LineRequest{
			ProductID: item.Product,
			Quantity:  item.Quantity,
		})
	}

	created, err := h.svc.CreateOrder(r.Context(), input)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), clientMessage(err))
		return
	}

	respondWithJSON(w, http.StatusCreated, response{
		Success: true,
		Data:    created,
		Message: "Order created successfully",
	})
}

// GetOrderByID handles GET /orders/{id}.
func (h *OrderHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "id is required")
		return
	}

	o, err := h.svc.GetOrderByID(r.Context(), id)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), clientMessage(err))
		return
	}

	respondWithJSON(w, http.StatusOK, response{Success: true, Data: o})
}

// ListOrders handles GET /orders with status/email filters and pagination.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	filter := order.ListFilter{
		Email: r.URL.Query().Get("email"),
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 20),
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := order.ParseStatus(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, clientMessage(err))
			return
		}
		filter.Status = status
	}

	filter.Normalize()

	orders, total, err := h.svc.ListOrders(r.Context(), filter)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), clientMessage(err))
		return
	}

	respondWithJSON(w, http.StatusOK, response{
		Success:    true,
		Data:       orders,
		Pagination: newPagination(filter.Page, filter.Limit, total),
	})
}

// ListOrdersByCustomer handles GET /orders/customer/{email}.
func (h *OrderHandler) ListOrdersByCustomer(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email == "" {
		respondWithError(w, http.StatusBadRequest, "email is required")
		return
	}

	orders, err := h.svc.ListOrdersByCustomer(r.Context(), email)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), clientMessage(err))
		return
	}

	respondWithJSON(w, http.StatusOK, response{Success: true, Data: orders})
}

// UpdateStatus handles PUT /orders/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			respondWithJSON(w, http.StatusBadRequest, response{
				Success: false,
				Message: "Validation failed",
				Details: formatValidationErrors(validationErrors),
			})
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, clientMessage(err))
		return
	}

	update := order.StatusUpdate{
		Status:         status,
		TrackingNumber: req.TrackingNumber,
	}
	if req.EstimatedDelivery != "" {
		estimated, err := time.Parse(time.RFC3339, req.EstimatedDelivery)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid estimatedDelivery date format")
			return
		}
		update.EstimatedDelivery = &estimated
	}

	updated, err := h.svc.UpdateStatus(r.Context(), id, update)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), clientMessage(err))
		return
	}

	respondWithJSON(w, http.StatusOK, response{
		Success: true,
		Data:    updated,
		Message: "Order status updated successfully",
	})
}

// UpdatePaymentStatus handles PUT /orders/{id}/payment-status.
func (h *OrderHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdatePaymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	status, err := order.ParsePaymentStatus(req.PaymentStatus)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, clientMessage(err))
		return
	}

	if err := h.svc.UpdatePaymentStatus(r.Context(), id, status); err != nil {
		respondWithError(w, mapErrorToStatusCode(err), clientMessage(err))
		return
	}

	respondWithJSON(w, http.StatusOK, response{
		Success: true,
		Message: "Payment status updated successfully",
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
