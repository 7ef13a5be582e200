package updateitemstatus

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/okuafopa/order-core/internal/dal/credentials"
	"github.com/okuafopa/order-core/internal/dal/interfaces/iorderapi"
	"github.com/okuafopa/order-core/internal/service/models/status"
	"github.com/okuafopa/order-core/internal/service/services/syncsvc"
)

// service is an interface for the service layer.
type service interface {
	ApplyItemStatus(ctx context.Context, orderID, subOrderID, itemID string, newStatus status.ItemStatus) error
}

// updateItemStatusRequest represents an item status mutation request.
type updateItemStatusRequest struct {
	ItemStatus string `json:"itemStatus"`
}

// UpdateItemStatus handles the item status mutation request.
func UpdateItemStatus(w http.ResponseWriter, r *http.Request, service service, creds *credentials.Provider) {
	orderID := chi.URLParam(r, "orderId")
	subOrderID := chi.URLParam(r, "subOrderId")
	itemID := chi.URLParam(r, "itemId")

	req := updateItemStatusRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for update item status", "error", err)

		return
	}

	itemStatus, err := status.ParseItemStatus(req.ItemStatus)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error parsing item status", "error", err, "item_status", req.ItemStatus)

		return
	}

	if err := service.ApplyItemStatus(r.Context(), orderID, subOrderID, itemID, itemStatus); err != nil {
		switch {
		case errors.Is(err, status.ErrInvalidTransition):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, syncsvc.ErrOrderNotFound),
			errors.Is(err, syncsvc.ErrSubOrderNotFound),
			errors.Is(err, syncsvc.ErrItemNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, iorderapi.ErrUnauthorized):
			if clearErr := creds.Clear(r.Context()); clearErr != nil {
				slog.Error("Error clearing credentials", "error", clearErr)
			}
			http.Error(w, err.Error(), http.StatusUnauthorized)
		default:
			http.Error(w, err.Error(), http.StatusBadGateway)
		}
		slog.Error("Error updating item status", "error", err, "order_id", orderID, "item_id", itemID)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
