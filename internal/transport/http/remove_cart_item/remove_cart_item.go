package removecartitem

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// service is an interface for the service layer.
type service interface {
	Remove(ctx context.Context, productID string) error
}

// RemoveCartItem handles the remove-from-cart request. Removing an absent
// product succeeds.
func RemoveCartItem(w http.ResponseWriter, r *http.Request, service service) {
	productID := chi.URLParam(r, "productId")

	if err := service.Remove(r.Context(), productID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error removing item from cart", "error", err, "product_id", productID)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
