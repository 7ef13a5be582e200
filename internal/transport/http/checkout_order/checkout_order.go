package checkoutorder

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/okuafopa/order-core/internal/dal/credentials"
	"github.com/okuafopa/order-core/internal/dal/interfaces/iorderapi"
	"github.com/okuafopa/order-core/internal/service/models/billing"
	"github.com/okuafopa/order-core/internal/service/models/cartline"
	"github.com/okuafopa/order-core/internal/service/services/checkoutsvc"
)

// cartService is the slice of the cart store the checkout flow needs.
type cartService interface {
	Lines() []cartline.CartLine
	Clear(ctx context.Context) error
}

// validationErrorResponse enumerates the failing billing fields.
type validationErrorResponse struct {
	Message string   `json:"message"`
	Fields  []string `json:"fields"`
}

// Checkout handles the order submission request: builds the
// supplier-partitioned payload from the current cart, submits it, and
// clears the cart only after the order service accepts it.
func Checkout(w http.ResponseWriter, r *http.Request, cartSvc cartService, orderAPI iorderapi.IOrderAPI, creds *credentials.Provider) {
	info := billing.Info{}
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for checkout", "error", err)

		return
	}

	payload, err := checkoutsvc.BuildOrderRequest(cartSvc.Lines(), info)
	if err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			fields := make([]string, 0, len(validationErrs))
			for _, fe := range validationErrs {
				fields = append(fields, fe.Field())
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			if err := json.NewEncoder(w).Encode(validationErrorResponse{
				Message: "invalid billing info",
				Fields:  fields,
			}); err != nil {
				slog.Error("Error sending validation response for checkout", "error", err)
			}

			return
		}

		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error building order request", "error", err)

		return
	}

	created, err := orderAPI.SubmitOrder(r.Context(), *payload)
	if err != nil {
		if errors.Is(err, iorderapi.ErrUnauthorized) {
			if clearErr := creds.Clear(r.Context()); clearErr != nil {
				slog.Error("Error clearing credentials", "error", clearErr)
			}
			http.Error(w, err.Error(), http.StatusUnauthorized)
		} else {
			http.Error(w, err.Error(), http.StatusBadGateway)
		}
		slog.Error("Error submitting order", "error", err)

		return
	}

	// Cart survives a failed submission; only a confirmed order clears it.
	if err := cartSvc.Clear(r.Context()); err != nil {
		slog.Error("Error clearing cart after successful checkout", "error", err)
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		slog.Error("Error sending response for checkout", "error", err)
	}
}
