package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/okuafopa/order-core/internal/dal/credentials"
	"github.com/okuafopa/order-core/internal/dal/interfaces/iorderapi"
	"github.com/okuafopa/order-core/internal/service/models/cartline"
	"github.com/okuafopa/order-core/internal/service/models/order"
	"github.com/okuafopa/order-core/internal/service/models/status"
	addcartitem "github.com/okuafopa/order-core/internal/transport/http/add_cart_item"
	checkoutorder "github.com/okuafopa/order-core/internal/transport/http/checkout_order"
	getcart "github.com/okuafopa/order-core/internal/transport/http/get_cart"
	listorders "github.com/okuafopa/order-core/internal/transport/http/list_orders"
	removecartitem "github.com/okuafopa/order-core/internal/transport/http/remove_cart_item"
	updatecartquantity "github.com/okuafopa/order-core/internal/transport/http/update_cart_quantity"
	updateitemstatus "github.com/okuafopa/order-core/internal/transport/http/update_item_status"
	updatesuborderstatus "github.com/okuafopa/order-core/internal/transport/http/update_suborder_status"
	"github.com/okuafopa/order-core/pkg/http/middleware/trace"
	"github.com/okuafopa/order-core/pkg/logger"
	"github.com/spf13/viper"
)

type cartService interface {
	Add(ctx context.Context, line cartline.CartLine) ([]cartline.CartLine, error)
	Remove(ctx context.Context, productID string) error
	UpdateQuantity(ctx context.Context, productID string, newQuantity int) error
	Clear(ctx context.Context) error
	Lines() []cartline.CartLine
	TotalCents() int64
	Count() int
}

type syncService interface {
	LoadAll(ctx context.Context, query order.QueryOrdersModel) ([]order.Order, error)
	Counts() map[status.SimpleStatus]int
	ApplyItemStatus(ctx context.Context, orderID, subOrderID, itemID string, newStatus status.ItemStatus) error
	ApplySubOrderStatus(ctx context.Context, orderID, subOrderID string, newStatus status.SubOrderStatus, cascadeItemsTo *status.ItemStatus) error
}

type HTTPTransport struct {
	server   *http.Server
	router   *chi.Mux
	cartSvc  cartService
	syncSvc  syncService
	orderAPI iorderapi.IOrderAPI
	creds    *credentials.Provider
}

func NewHTTPTransport(cartSvc cartService, syncSvc syncService, orderAPI iorderapi.IOrderAPI, creds *credentials.Provider) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:   server,
		router:   router,
		cartSvc:  cartSvc,
		syncSvc:  syncSvc,
		orderAPI: orderAPI,
		creds:    creds,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Get("/cart", h.getCart)
		r.Post("/cart/items", h.addCartItem)
		r.Patch("/cart/items/{productId}", h.updateCartQuantity)
		r.Delete("/cart/items/{productId}", h.removeCartItem)
		r.Post("/checkout", h.checkout)
		r.Get("/orders", h.listOrders)
		r.Patch("/orders/{orderId}/subOrders/{subOrderId}/status", h.updateSubOrderStatus)
		r.Patch("/orders/{orderId}/subOrders/{subOrderId}/items/{itemId}/status", h.updateItemStatus)
	})
}

func (h *HTTPTransport) getCart(w http.ResponseWriter, r *http.Request) {
	getcart.GetCart(w, r, h.cartSvc)
}

func (h *HTTPTransport) addCartItem(w http.ResponseWriter, r *http.Request) {
	addcartitem.AddCartItem(w, r, h.cartSvc)
}

func (h *HTTPTransport) updateCartQuantity(w http.ResponseWriter, r *http.Request) {
	updatecartquantity.UpdateCartQuantity(w, r, h.cartSvc)
}

func (h *HTTPTransport) removeCartItem(w http.ResponseWriter, r *http.Request) {
	removecartitem.RemoveCartItem(w, r, h.cartSvc)
}

func (h *HTTPTransport) checkout(w http.ResponseWriter, r *http.Request) {
	checkoutorder.Checkout(w, r, h.cartSvc, h.orderAPI, h.creds)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.syncSvc, h.creds)
}

func (h *HTTPTransport) updateSubOrderStatus(w http.ResponseWriter, r *http.Request) {
	updatesuborderstatus.UpdateSubOrderStatus(w, r, h.syncSvc, h.creds)
}

func (h *HTTPTransport) updateItemStatus(w http.ResponseWriter, r *http.Request) {
	updateitemstatus.UpdateItemStatus(w, r, h.syncSvc, h.creds)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
