package addcartitem

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/okuafopa/order-core/internal/service/models/cartline"
	"github.com/okuafopa/order-core/internal/service/models/currency"
	"github.com/okuafopa/order-core/internal/service/services/cartsvc"
)

// service is an interface for the service layer.
type service interface {
	Add(ctx context.Context, line cartline.CartLine) ([]cartline.CartLine, error)
}

// addCartItemRequest represents an add-to-cart request.
type addCartItemRequest struct {
	ProductID         string   `json:"productId"         validate:"required"`
	SupplierID        string   `json:"supplierId"        validate:"required"`
	DisplayName       string   `json:"displayName"       validate:"required"`
	PriceCents        int64    `json:"priceCents"        validate:"gte=0"`
	PriceCurrency     string   `json:"priceCurrency"`
	AvailableQuantity int      `json:"availableQuantity" validate:"gte=0"`
	ImageRefs         []string `json:"imageRefs"`
}

// Validate validates the add-to-cart request.
func (r *addCartItemRequest) Validate() error {
	return validator.New().Struct(r)
}

// toModel converts addCartItemRequest to cartline.CartLine.
func (r *addCartItemRequest) toModel() (*cartline.CartLine, error) {
	cur := currency.CurrencyGHS
	if r.PriceCurrency != "" {
		parsed, err := currency.ParseCurrency(r.PriceCurrency)
		if err != nil {
			return nil, err
		}
		cur = parsed
	}

	return &cartline.CartLine{
		ProductID:         r.ProductID,
		SupplierID:        r.SupplierID,
		DisplayName:       r.DisplayName,
		PriceCents:        r.PriceCents,
		PriceCurrency:     cur,
		AvailableQuantity: r.AvailableQuantity,
		ImageRefs:         r.ImageRefs,
	}, nil
}

// AddCartItem handles the add-to-cart request.
func AddCartItem(w http.ResponseWriter, r *http.Request, service service) {
	req := addCartItemRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for add cart item", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for add cart item", "error", err)

		return
	}

	line, err := req.toModel()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error converting add cart item request to model", "error", err)

		return
	}

	updated, err := service.Add(r.Context(), *line)
	if err != nil {
		switch {
		case errors.Is(err, cartsvc.ErrDuplicateItem):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, cartsvc.ErrQuantityOutOfRange):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		slog.Error("Error adding item to cart", "error", err)

		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(updated); err != nil {
		slog.Error("Error sending response for add cart item", "error", err)
	}
}
