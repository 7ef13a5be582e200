package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/okuafopa/order-core/internal/dal/credentials"
	"github.com/okuafopa/order-core/internal/dal/interfaces/iorderapi"
	"github.com/okuafopa/order-core/internal/service/models/checkout"
	"github.com/okuafopa/order-core/internal/service/models/order"
	"github.com/okuafopa/order-core/internal/service/models/status"
	"github.com/spf13/viper"
)

// unauthorizedMessage is the error body the order service sends for an
// invalid or expired credential, regardless of the HTTP status nuance.
const unauthorizedMessage = "Unauthorized: Invalid or expired token"

// Client talks to the remote order service over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	creds      *credentials.Provider
}

// MustNewClient creates a new order service client.
func MustNewClient(creds *credentials.Provider) *Client {
	baseURL := viper.GetString("order_service.base_url")
	if baseURL == "" {
		panic("order_service.base_url is not set in config")
	}

	return &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		creds:      creds,
	}
}

// errorResponse is the order service's error body.
type errorResponse struct {
	Message string `json:"message"`
}

// do performs an authenticated request and decodes the response into out
// when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := c.creds.Token(ctx)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("order service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		if resp.StatusCode == http.StatusUnauthorized {
			return iorderapi.ErrUnauthorized
		}

		var errResp errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			if errResp.Message == unauthorizedMessage {
				return iorderapi.ErrUnauthorized
			}
			if errResp.Message != "" {
				return fmt.Errorf("order service error (%d): %s", resp.StatusCode, errResp.Message)
			}
		}

		return fmt.Errorf("order service error: status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// ListOrders fetches the order list, role-scoped when the query asks for it.
func (c *Client) ListOrders(ctx context.Context, query order.QueryOrdersModel) ([]order.Order, error) {
	path := "/orders"
	if query.Role == "farmer" {
		path = "/orders/farmer/subOrders"
	}

	params := url.Values{}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Offset > 0 {
		params.Set("offset", strconv.Itoa(query.Offset))
	}
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var orders []order.Order
	if err := c.do(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// SubmitOrder posts a checkout submission and returns the created order.
func (c *Client) SubmitOrder(ctx context.Context, payload checkout.SubmissionPayload) (*order.Order, error) {
	var created order.Order
	if err := c.do(ctx, http.MethodPost, "/orders", payload, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

// updateItemStatusRequest is the item status mutation body.
type updateItemStatusRequest struct {
	ItemStatus status.ItemStatus `json:"itemStatus"`
}

// UpdateItemStatus patches a single item's status.
func (c *Client) UpdateItemStatus(ctx context.Context, orderID, subOrderID, itemID string, itemStatus status.ItemStatus) error {
	path := fmt.Sprintf("/orders/%s/subOrders/%s/items/%s/status",
		url.PathEscape(orderID), url.PathEscape(subOrderID), url.PathEscape(itemID))

	return c.do(ctx, http.MethodPatch, path, updateItemStatusRequest{ItemStatus: itemStatus}, nil)
}

// updateSubOrderStatusRequest is the sub-order status mutation body.
type updateSubOrderStatusRequest struct {
	Status     status.SubOrderStatus `json:"status"`
	SetItemsTo *status.ItemStatus    `json:"setItemsTo,omitempty"`
}

// UpdateSubOrderStatus patches a sub-order's status, optionally cascading a
// status to all its items.
func (c *Client) UpdateSubOrderStatus(ctx context.Context, orderID, subOrderID string, st status.SubOrderStatus, setItemsTo *status.ItemStatus) error {
	path := fmt.Sprintf("/orders/%s/subOrders/%s/status",
		url.PathEscape(orderID), url.PathEscape(subOrderID))

	return c.do(ctx, http.MethodPatch, path, updateSubOrderStatusRequest{Status: st, SetItemsTo: setItemsTo}, nil)
}
