package listorders

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/okuafopa/order-core/internal/dal/credentials"
	"github.com/okuafopa/order-core/internal/dal/interfaces/iorderapi"
	"github.com/okuafopa/order-core/internal/service/models/order"
	"github.com/okuafopa/order-core/internal/service/models/status"
)

// service is an interface for the service layer.
type service interface {
	LoadAll(ctx context.Context, query order.QueryOrdersModel) ([]order.Order, error)
	Counts() map[status.SimpleStatus]int
}

type queryOrdersRequest struct {
	Role   string `schema:"role,omitempty"`
	Limit  int    `schema:"limit,omitempty"`
	Offset int    `schema:"offset,omitempty"`
}

func (q *queryOrdersRequest) ToModel() order.QueryOrdersModel {
	return order.QueryOrdersModel{
		Role:   q.Role,
		Limit:  q.Limit,
		Offset: q.Offset,
	}
}

// listOrdersResponse carries the fetched orders plus the simple-status
// bucket counts for the filter bar.
type listOrdersResponse struct {
	Orders []order.Order               `json:"orders"`
	Counts map[status.SimpleStatus]int `json:"counts"`
}

func ListOrders(w http.ResponseWriter, r *http.Request, service service, creds *credentials.Provider) {
	decoder := schema.NewDecoder()
	query := &queryOrdersRequest{}
	err := decoder.Decode(query, r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request", "error", err)

		return
	}

	orders, err := service.LoadAll(r.Context(), query.ToModel())
	if err != nil {
		if errors.Is(err, iorderapi.ErrUnauthorized) {
			if clearErr := creds.Clear(r.Context()); clearErr != nil {
				slog.Error("Error clearing credentials", "error", clearErr)
			}
			http.Error(w, err.Error(), http.StatusUnauthorized)
		} else {
			http.Error(w, err.Error(), http.StatusBadGateway)
		}
		slog.Error("Error getting orders", "error", err)

		return
	}

	resp := listOrdersResponse{
		Orders: orders,
		Counts: service.Counts(),
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}
