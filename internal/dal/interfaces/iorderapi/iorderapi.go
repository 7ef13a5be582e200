package iorderapi

import (
	"context"
	"errors"

	"github.com/okuafopa/order-core/internal/service/models/checkout"
	"github.com/okuafopa/order-core/internal/service/models/order"
	"github.com/okuafopa/order-core/internal/service/models/status"
)

// ErrUnauthorized means the credential is invalid or expired. Callers must
// additionally invalidate the session when they see it.
var ErrUnauthorized = errors.New("unauthorized: invalid or expired token")

// IOrderAPI is the remote order service contract.
type IOrderAPI interface {
	ListOrders(ctx context.Context, query order.QueryOrdersModel) ([]order.Order, error)
	SubmitOrder(ctx context.Context, payload checkout.SubmissionPayload) (*order.Order, error)
	UpdateItemStatus(ctx context.Context, orderID, subOrderID, itemID string, itemStatus status.ItemStatus) error
	UpdateSubOrderStatus(ctx context.Context, orderID, subOrderID string, st status.SubOrderStatus, setItemsTo *status.ItemStatus) error
}
