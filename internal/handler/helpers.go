package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/TanishqDodiya/elyf-EVspare/internal/catalog"
	"github.com/TanishqDodiya/elyf-EVspare/internal/order"
)

type response struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Details    interface{} `json:"details,omitempty"`
	Pagination *pagination `json:"pagination,omitempty"`
}

type pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

func newPagination(page, limit int, total int64) *pagination {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return &pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    int64(page) < totalPages,
		HasPrev:    page > 1,
	}
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("handler: failed to marshal response")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"message":"Internal server error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("handler: failed to write response")
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, response{Success: false, Message: message})
}

func mapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrValidation),
		errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrOutOfStock),
		errors.Is(err, order.ErrBelowMinimumQuantity),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrInvalidStatusTransition),
		errors.Is(err, order.ErrInvalidPaymentStatus),
		errors.Is(err, order.ErrInvalidPaymentMethod):
		return http.StatusBadRequest
	case errors.Is(err, order.ErrDuplicateOrderNumber):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// clientMessage decides what the caller sees. Rejections are surfaced
// verbatim so the cart can be corrected and resubmitted; anything else is
// opaque.
func clientMessage(err error) string {
	if mapErrorToStatusCode(err) == http.StatusInternalServerError {
		return "Internal server error"
	}
	return err.Error()
}

func formatValidationErrors(errs validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(errs))
	for _, fieldErr := range errs {
		// Trim the request struct name: "CreateOrderRequest.Customer.Email"
		// → "customer.email".
		namespace := fieldErr.Namespace()
		if idx := strings.Index(namespace, "."); idx >= 0 {
			namespace = namespace[idx+1:]
		}
		field := strings.ToLower(namespace)

		switch fieldErr.Tag() {
		case "required":
			details[field] = "is required"
		case "email":
			details[field] = "must be a valid email address"
		case "min":
			details[field] = "must have at least " + fieldErr.Param()
		case "max":
			details[field] = "cannot exceed " + fieldErr.Param()
		case "oneof":
			details[field] = "must be one of: " + fieldErr.Param()
		default:
			details[field] = "is invalid"
		}
	}
	return details
}
