package checkout

import (
	"github.com/okuafopa/order-core/internal/service/models/billing"
	"github.com/okuafopa/order-core/internal/service/models/order"
)

// LineRef is one cart line's contribution to a sub-order draft.
type LineRef struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// SubOrderDraft is the aggregation-time grouping of cart lines for one
// supplier, produced by partitioning the cart.
type SubOrderDraft struct {
	SupplierID     string               `json:"supplier"`
	DeliveryMethod order.DeliveryMethod `json:"deliveryMethod"`
	Items          []LineRef            `json:"items"`
}

// SubmissionPayload is the order-submission request sent to the order service.
type SubmissionPayload struct {
	ClientReference string          `json:"clientReference"`
	SubOrders       []SubOrderDraft `json:"subOrders"`
	Billing         billing.Info    `json:"billing"`
}
