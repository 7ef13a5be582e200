package syncsvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okuafopa/order-core/internal/dal/interfaces/iorderapi"
	"github.com/okuafopa/order-core/internal/service/models/checkout"
	"github.com/okuafopa/order-core/internal/service/models/currency"
	"github.com/okuafopa/order-core/internal/service/models/order"
	"github.com/okuafopa/order-core/internal/service/models/status"
)

// fakeOrderAPI records calls and fails on demand.
type fakeOrderAPI struct {
	orders []order.Order

	listErr     error
	itemErr     error
	subOrderErr error

	itemCalls     int
	subOrderCalls int

	lastSetItemsTo *status.ItemStatus
}

func (f *fakeOrderAPI) ListOrders(_ context.Context, _ order.QueryOrdersModel) ([]order.Order, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	out := make([]order.Order, len(f.orders))
	for i := range f.orders {
		out[i] = f.orders[i].Clone()
	}

	return out, nil
}

func (f *fakeOrderAPI) SubmitOrder(_ context.Context, _ checkout.SubmissionPayload) (*order.Order, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeOrderAPI) UpdateItemStatus(_ context.Context, _, _, _ string, _ status.ItemStatus) error {
	f.itemCalls++

	return f.itemErr
}

func (f *fakeOrderAPI) UpdateSubOrderStatus(_ context.Context, _, _ string, _ status.SubOrderStatus, setItemsTo *status.ItemStatus) error {
	f.subOrderCalls++
	f.lastSetItemsTo = setItemsTo

	return f.subOrderErr
}

var _ iorderapi.IOrderAPI = (*fakeOrderAPI)(nil)

func sampleOrder() order.Order {
	return order.Order{
		ID:              "ord-1",
		Status:          status.OrderInProgress,
		GrandTotalCents: 4500,
		Currency:        currency.CurrencyGHS,
		CreatedAt:       time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		SubOrders: []order.SubOrder{
			{
				ID:             "sub-1",
				Supplier:       order.Supplier{ID: "farmer-ama", DisplayName: "Ama"},
				DeliveryMethod: order.DeliveryPickup,
				Status:         status.SubOrderPending,
				SubtotalCents:  2000,
				Items: []order.OrderItem{
					{ID: "item-1", Quantity: 2, PriceAtOrderCents: 1000, PriceCurrency: currency.CurrencyGHS, ItemStatus: status.ItemPending},
					{ID: "item-2", Quantity: 1, PriceAtOrderCents: 500, PriceCurrency: currency.CurrencyGHS, ItemStatus: status.ItemAccepted},
					{ID: "item-3", Quantity: 1, PriceAtOrderCents: 500, PriceCurrency: currency.CurrencyGHS, ItemStatus: status.ItemDelivered},
				},
			},
			{
				ID:            "sub-2",
				Supplier:      order.Supplier{ID: "farmer-kwame", DisplayName: "Kwame"},
				Status:        status.SubOrderAccepted,
				SubtotalCents: 2500,
				Items: []order.OrderItem{
					{ID: "item-4", Quantity: 1, PriceAtOrderCents: 2500, PriceCurrency: currency.CurrencyGHS, ItemStatus: status.ItemAccepted},
				},
			},
		},
	}
}

func loadedService(t *testing.T, api *fakeOrderAPI) *SyncService {
	t.Helper()

	svc := MustNewSyncService(WithOrderAPI(api))
	_, err := svc.LoadAll(context.Background(), order.QueryOrdersModel{Role: "farmer"})
	require.NoError(t, err)

	return svc
}

func findItem(t *testing.T, orders []order.Order, orderID, subOrderID, itemID string) order.OrderItem {
	t.Helper()

	for _, o := range orders {
		if o.ID != orderID {
			continue
		}
		for _, so := range o.SubOrders {
			if so.ID != subOrderID {
				continue
			}
			for _, it := range so.Items {
				if it.ID == itemID {
					return it
				}
			}
		}
	}
	t.Fatalf("item %s/%s/%s not found", orderID, subOrderID, itemID)

	return order.OrderItem{}
}

func TestLoadAllReplacesState(t *testing.T) {
	api := &fakeOrderAPI{orders: []order.Order{sampleOrder()}}
	svc := loadedService(t, api)

	require.Len(t, svc.Orders(), 1)

	api.orders = nil
	_, err := svc.LoadAll(context.Background(), order.QueryOrdersModel{})
	require.NoError(t, err)
	assert.Empty(t, svc.Orders())
}

func TestLoadAllUnauthorizedPassthrough(t *testing.T) {
	api := &fakeOrderAPI{listErr: iorderapi.ErrUnauthorized}
	svc := MustNewSyncService(WithOrderAPI(api))

	_, err := svc.LoadAll(context.Background(), order.QueryOrdersModel{})
	assert.ErrorIs(t, err, iorderapi.ErrUnauthorized)
}

func TestApplyItemStatusSuccessKeepsOptimisticValue(t *testing.T) {
	api := &fakeOrderAPI{orders: []order.Order{sampleOrder()}}
	svc := loadedService(t, api)

	err := svc.ApplyItemStatus(context.Background(), "ord-1", "sub-1", "item-1", status.ItemAccepted)
	require.NoError(t, err)
	assert.Equal(t, 1, api.itemCalls)

	item := findItem(t, svc.Orders(), "ord-1", "sub-1", "item-1")
	assert.Equal(t, status.ItemAccepted, item.ItemStatus)
}

func TestApplyItemStatusInvalidTransitionSkipsNetwork(t *testing.T) {
	api := &fakeOrderAPI{orders: []order.Order{sampleOrder()}}
	svc := loadedService(t, api)

	// item-3 is delivered, terminal.
	err := svc.ApplyItemStatus(context.Background(), "ord-1", "sub-1", "item-3", status.ItemPending)
	assert.ErrorIs(t, err, status.ErrInvalidTransition)
	assert.Zero(t, api.itemCalls)

	// pending cannot jump straight to ready either.
	err = svc.ApplyItemStatus(context.Background(), "ord-1", "sub-1", "item-1", status.ItemReady)
	assert.ErrorIs(t, err, status.ErrInvalidTransition)
	assert.Zero(t, api.itemCalls)
}

func TestApplyItemStatusRemoteFailureRollsBack(t *testing.T) {
	api := &fakeOrderAPI{orders: []order.Order{sampleOrder()}, itemErr: errors.New("boom")}
	svc := loadedService(t, api)

	err := svc.ApplyItemStatus(context.Background(), "ord-1", "sub-1", "item-1", status.ItemAccepted)
	require.Error(t, err)
	assert.Equal(t, 1, api.itemCalls)

	item := findItem(t, svc.Orders(), "ord-1", "sub-1", "item-1")
	assert.Equal(t, status.ItemPending, item.ItemStatus)
}

func TestApplyItemStatusNotFound(t *testing.T) {
	api := &fakeOrderAPI{orders: []order.Order{sampleOrder()}}
	svc := loadedService(t, api)

	err := svc.ApplyItemStatus(context.Background(), "ord-9", "sub-1", "item-1", status.ItemAccepted)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	err = svc.ApplyItemStatus(context.Background(), "ord-1", "sub-1", "item-9", status.ItemAccepted)
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.Zero(t, api.itemCalls)
}

func TestApplySubOrderStatusCascadeBypassesItemMachine(t *testing.T) {
	api := &fakeOrderAPI{orders: []order.Order{sampleOrder()}}
	svc := loadedService(t, api)

	cancelled := status.ItemCancelled
	err := svc.ApplySubOrderStatus(context.Background(), "ord-1", "sub-1", status.SubOrderRejected, &cancelled)
	require.NoError(t, err)
	require.NotNil(t, api.lastSetItemsTo)
	assert.Equal(t, status.ItemCancelled, *api.lastSetItemsTo)

	orders := svc.Orders()
	assert.Equal(t, status.SubOrderRejected, orders[0].SubOrders[0].Status)
	for _, it := range orders[0].SubOrders[0].Items {
		assert.Equal(t, status.ItemCancelled, it.ItemStatus, it.ID)
	}
}

func TestApplySubOrderStatusRemoteFailureRollsBackEverything(t *testing.T) {
	api := &fakeOrderAPI{orders: []order.Order{sampleOrder()}, subOrderErr: errors.New("boom")}
	svc := loadedService(t, api)

	cancelled := status.ItemCancelled
	err := svc.ApplySubOrderStatus(context.Background(), "ord-1", "sub-1", status.SubOrderRejected, &cancelled)
	require.Error(t, err)
	assert.Equal(t, 1, api.subOrderCalls)

	want := sampleOrder()
	orders := svc.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, want.SubOrders[0].Status, orders[0].SubOrders[0].Status)
	for i, it := range orders[0].SubOrders[0].Items {
		assert.Equal(t, want.SubOrders[0].Items[i].ItemStatus, it.ItemStatus, it.ID)
	}
}

func TestApplySubOrderStatusTerminalGuard(t *testing.T) {
	api := &fakeOrderAPI{orders: []order.Order{sampleOrder()}}
	svc := loadedService(t, api)

	err := svc.ApplySubOrderStatus(context.Background(), "ord-1", "sub-1", status.SubOrderCancelled, nil)
	require.NoError(t, err)

	err = svc.ApplySubOrderStatus(context.Background(), "ord-1", "sub-1", status.SubOrderAccepted, nil)
	assert.ErrorIs(t, err, status.ErrInvalidTransition)
	assert.Equal(t, 1, api.subOrderCalls)
}

func TestApplyRemotePatchMergesPartialFields(t *testing.T) {
	api := &fakeOrderAPI{orders: []order.Order{sampleOrder()}}
	svc := loadedService(t, api)

	newStatus := status.SubOrderInTransit
	subtotal := int64(1800)
	svc.ApplyRemotePatch("ord-1", "sub-2", order.SubOrderPatch{
		Status:        &newStatus,
		SubtotalCents: &subtotal,
	})

	orders := svc.Orders()
	assert.Equal(t, status.SubOrderInTransit, orders[0].SubOrders[1].Status)
	assert.Equal(t, int64(1800), orders[0].SubOrders[1].SubtotalCents)
	// untouched fields survive the merge
	assert.Equal(t, order.DeliveryMethod(""), orders[0].SubOrders[1].DeliveryMethod)
	require.Len(t, orders[0].SubOrders[1].Items, 1)
	assert.Equal(t, status.ItemAccepted, orders[0].SubOrders[1].Items[0].ItemStatus)
}

func TestApplyRemotePatchReplacesItemsWholesale(t *testing.T) {
	api := &fakeOrderAPI{orders: []order.Order{sampleOrder()}}
	svc := loadedService(t, api)

	svc.ApplyRemotePatch("ord-1", "sub-1", order.SubOrderPatch{
		Items: []order.OrderItem{
			{ID: "item-1", Quantity: 2, PriceAtOrderCents: 1000, ItemStatus: status.ItemReady},
		},
	})

	orders := svc.Orders()
	require.Len(t, orders[0].SubOrders[0].Items, 1)
	assert.Equal(t, status.ItemReady, orders[0].SubOrders[0].Items[0].ItemStatus)
}

func TestApplyRemotePatchUnknownOrderIsNoOp(t *testing.T) {
	api := &fakeOrderAPI{orders: []order.Order{sampleOrder()}}
	svc := loadedService(t, api)

	newStatus := status.SubOrderDelivered
	svc.ApplyRemotePatch("ord-unknown", "sub-1", order.SubOrderPatch{Status: &newStatus})
	svc.ApplyRemotePatch("ord-1", "sub-unknown", order.SubOrderPatch{Status: &newStatus})

	assert.Equal(t, status.SubOrderPending, svc.Orders()[0].SubOrders[0].Status)
}

func TestCounts(t *testing.T) {
	first := sampleOrder()
	second := sampleOrder()
	second.ID = "ord-2"
	second.Status = status.OrderDelivered
	third := sampleOrder()
	third.ID = "ord-3"
	third.SimpleStatus = "cancelled"

	api := &fakeOrderAPI{orders: []order.Order{first, second, third}}
	svc := loadedService(t, api)

	counts := svc.Counts()
	assert.Equal(t, 1, counts[status.SimpleInProgress])
	assert.Equal(t, 1, counts[status.SimpleDelivered])
	assert.Equal(t, 1, counts[status.SimpleCancelled])
	assert.Zero(t, counts[status.SimplePending])
}

func TestOrdersReturnsDeepCopy(t *testing.T) {
	api := &fakeOrderAPI{orders: []order.Order{sampleOrder()}}
	svc := loadedService(t, api)

	copy1 := svc.Orders()
	copy1[0].SubOrders[0].Items[0].ItemStatus = status.ItemDelivered

	item := findItem(t, svc.Orders(), "ord-1", "sub-1", "item-1")
	assert.Equal(t, status.ItemPending, item.ItemStatus)
}
