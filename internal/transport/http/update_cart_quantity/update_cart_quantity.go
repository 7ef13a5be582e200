package updatecartquantity

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/okuafopa/order-core/internal/service/services/cartsvc"
)

// service is an interface for the service layer.
type service interface {
	UpdateQuantity(ctx context.Context, productID string, newQuantity int) error
}

// updateQuantityRequest represents a quantity-adjustment request.
type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateCartQuantity handles the quantity-adjustment request.
func UpdateCartQuantity(w http.ResponseWriter, r *http.Request, service service) {
	productID := chi.URLParam(r, "productId")

	req := updateQuantityRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for update cart quantity", "error", err)

		return
	}

	if err := service.UpdateQuantity(r.Context(), productID, req.Quantity); err != nil {
		switch {
		case errors.Is(err, cartsvc.ErrProductNotInCart):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, cartsvc.ErrQuantityOutOfRange):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		slog.Error("Error updating cart quantity", "error", err, "product_id", productID)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
