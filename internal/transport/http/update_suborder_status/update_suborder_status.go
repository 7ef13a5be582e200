package updatesuborderstatus

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
	ApplySubOrderStatus(ctx context.Context, orderID, subOrderID string, newStatus status.SubOrderStatus, cascadeItemsTo *status.ItemStatus) error
}

// updateSubOrderStatusRequest represents a sub-order status mutation
// request. Destructive transitions must arrive with Confirmed set, carrying
// the user's explicit confirmation from the UI.
type updateSubOrderStatusRequest struct {
	Status     string  `json:"status"`
	SetItemsTo *string `json:"setItemsTo,omitempty"`
	Confirmed  bool    `json:"confirmed,omitempty"`
}

// UpdateSubOrderStatus handles the sub-order status mutation request.
func UpdateSubOrderStatus(w http.ResponseWriter, r *http.Request, service service, creds *credentials.Provider) {
	orderID := chi.URLParam(r, "orderId")
	subOrderID := chi.URLParam(r, "subOrderId")

	req := updateSubOrderStatusRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for update sub-order status", "error", err)

		return
	}

	newStatus, err := status.ParseSubOrderStatus(req.Status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error parsing sub-order status", "error", err, "status", req.Status)

		return
	}

	destructive := newStatus == status.SubOrderRejected || newStatus == status.SubOrderCancelled
	if destructive && !req.Confirmed {
		http.Error(w, "destructive transition requires confirmation", http.StatusBadRequest)

		return
	}

	var cascadeItemsTo *status.ItemStatus
	if req.SetItemsTo != nil {
		itemStatus, err := status.ParseItemStatus(*req.SetItemsTo)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			slog.Error("Error parsing cascade item status", "error", err, "set_items_to", *req.SetItemsTo)

			return
		}
		cascadeItemsTo = &itemStatus
	}

	if err := service.ApplySubOrderStatus(r.Context(), orderID, subOrderID, newStatus, cascadeItemsTo); err != nil {
		switch {
		case errors.Is(err, status.ErrInvalidTransition):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, syncsvc.ErrOrderNotFound),
			errors.Is(err, syncsvc.ErrSubOrderNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, iorderapi.ErrUnauthorized):
			if clearErr := creds.Clear(r.Context()); clearErr != nil {
				slog.Error("Error clearing credentials", "error", clearErr)
			}
			http.Error(w, err.Error(), http.StatusUnauthorized)
		default:
			http.Error(w, err.Error(), http.StatusBadGateway)
		}
		slog.Error("Error updating sub-order status", "error", err, "order_id", orderID, "sub_order_id", subOrderID)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
