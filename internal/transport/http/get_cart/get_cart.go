package getcart

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/okuafopa/order-core/internal/service/models/cartline"
)

// service is an interface for the service layer.
type service interface {
	Lines() []cartline.CartLine
	TotalCents() int64
	Count() int
}

// getCartResponse represents the cart contents with derived totals.
type getCartResponse struct {
	Items      []cartline.CartLine `json:"items"`
	TotalCents int64               `json:"totalCents"`
	Count      int                 `json:"count"`
}

// GetCart handles the cart retrieval request.
func GetCart(w http.ResponseWriter, r *http.Request, service service) {
	resp := getCartResponse{
		Items:      service.Lines(),
		TotalCents: service.TotalCents(),
		Count:      service.Count(),
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response for get cart", "error", err)
	}
}
