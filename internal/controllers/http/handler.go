package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"checkout-service/internal/domain"
	"checkout-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

type Handler struct {
	catalog  *services.CatalogService
	tax      *services.TaxService
	carts    *services.CartService
	checkout *services.CheckoutService
	webhooks *services.WebhookService
	rdb      *redis.Client
}

func NewHandler(catalog *services.CatalogService, tax *services.TaxService, carts *services.CartService, checkout *services.CheckoutService, webhooks *services.WebhookService, rdb *redis.Client) *Handler {
	return &Handler{
		catalog:  catalog,
		tax:      tax,
		carts:    carts,
		checkout: checkout,
		webhooks: webhooks,
		rdb:      rdb,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/products", h.CreateProduct)
	r.GET("/products/:id", h.GetProduct)
	r.POST("/products/:id/disable", h.DisableProduct)
	r.GET("/products/:id/prices", h.ListPrices)

	r.POST("/prices", h.CreatePrice)
	r.GET("/prices/:id", h.GetPrice)

	r.POST("/carts", h.CreateCart)
	r.GET("/carts/:id", h.GetCart)
	r.POST("/carts/:id/items", h.AddToCart)
	r.PATCH("/cart-items/:id", h.UpdateCartItem)
	r.DELETE("/cart-items/:id", h.RemoveFromCart)

	r.POST("/checkout", h.CreateCheckout)
	r.GET("/orders/:id", h.GetOrder)
	r.GET("/order-references/:reference", h.GetOrderByReference)
	r.PATCH("/orders/:id/status", h.UpdateOrderStatus)
	r.GET("/workspaces/:id/orders", h.ListOrders)
	r.GET("/workspaces/:id/analytics", h.GetOrderAnalytics)

	r.POST("/tax/calculate", h.CalculateTax)
	r.POST("/tax/validate-id", h.ValidateTaxID)
	r.GET("/workspaces/:id/tax-rates", h.GetWorkspaceTaxRates)
	r.PUT("/workspaces/:id/tax-rates", h.UpsertTaxRate)

	r.POST("/webhooks/payment", h.HandlePaymentWebhook)
}

// writeError maps the error taxonomy onto HTTP statuses. Anything outside
// the taxonomy is logged with context and returned as a generic failure.
func writeError(c *gin.Context, err error) {
	var (
		validation *domain.ValidationError
		notFound   *domain.NotFoundError
		conflict   *domain.ConflictError
		transition *domain.InvalidTransitionError
		gateway    *domain.GatewayError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &transition):
		c.JSON(http.StatusConflict, gin.H{"error": transition.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Error()})
	case errors.As(err, &gateway):
		c.JSON(http.StatusBadGateway, gin.H{"error": gateway.Error()})
	case errors.Is(err, domain.ErrBadSignature):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	taxable := true
	if req.Taxable != nil {
		taxable = *req.Taxable
	}
	product, err := h.catalog.CreateProduct(c.Request.Context(), &domain.Product{
		WorkspaceID: req.WorkspaceID,
		Name:        req.Name,
		Slug:        req.Slug,
		Type:        domain.ProductType(req.Type),
		Taxable:     taxable,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) DisableProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.catalog.DisableProduct(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) CreatePrice(c *gin.Context) {
	var req CreatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	price, err := h.catalog.CreatePrice(c.Request.Context(), &domain.Price{
		ProductID:     req.ProductID,
		Type:          domain.PriceType(req.Type),
		Amount:        req.Amount,
		Currency:      req.Currency,
		Interval:      req.Interval,
		IntervalCount: req.IntervalCount,
		TrialDays:     req.TrialDays,
		Installments:  req.Installments,
		IsDefault:     req.IsDefault,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, price)
}

func (h *Handler) GetPrice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	price, err := h.catalog.GetPrice(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, price)
}

func (h *Handler) ListPrices(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	prices, err := h.catalog.ListPrices(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, prices)
}

func (h *Handler) CreateCart(c *gin.Context) {
	var req CreateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cart, err := h.carts.CreateCart(c.Request.Context(), req.WorkspaceID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, CartResponse{Cart: cart, Subtotal: cart.Subtotal()})
}

func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.carts.GetCart(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, CartResponse{Cart: cart, Subtotal: cart.Subtotal()})
}

func (h *Handler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cart, err := h.carts.AddToCart(c.Request.Context(), c.Param("id"), req.PriceID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, CartResponse{Cart: cart, Subtotal: cart.Subtotal()})
}

func (h *Handler) UpdateCartItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cart, err := h.carts.UpdateCartItem(c.Request.Context(), id, *req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, CartResponse{Cart: cart, Subtotal: cart.Subtotal()})
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	cart, err := h.carts.RemoveFromCart(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, CartResponse{Cart: cart, Subtotal: cart.Subtotal()})
}

func (h *Handler) CreateCheckout(c *gin.Context) {
	var req CheckoutRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := h.checkout.CreateCheckout(c.Request.Context(), services.CheckoutRequest{
		CartID:          req.CartID,
		Email:           req.Email,
		Name:            req.Name,
		BillingAddress:  req.BillingAddress.toDomain(),
		ShippingAddress: req.ShippingAddress.toDomain(),
		PaymentMethodID: req.PaymentMethodID,
	})
	if err != nil {
		// A gateway failure still created the order; return it so the
		// caller can retry the charge against the PENDING order.
		var gwErr *domain.GatewayError
		if order != nil && errors.As(err, &gwErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": gwErr.Error(), "order": order})
			return
		}
		writeError(c, err)
		return
	}
	h.invalidateAnalytics(order.WorkspaceID)
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := h.checkout.GetOrder(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) GetOrderByReference(c *gin.Context) {
	order, err := h.checkout.GetOrderByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := h.checkout.UpdateOrderStatus(c.Request.Context(), id, domain.OrderStatus(req.Status), req.Actor)
	if err != nil {
		writeError(c, err)
		return
	}
	h.invalidateAnalytics(order.WorkspaceID)
	c.JSON(http.StatusOK, order)
}

func (h *Handler) ListOrders(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	orders, err := h.checkout.ListOrders(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrderAnalytics(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	cacheKey := analyticsCacheKey(id)

	if h.rdb != nil {
		if b, err := h.rdb.Get(ctx, cacheKey).Result(); err == nil {
			c.Data(http.StatusOK, "application/json", []byte(b))
			return
		}
	}

	analytics, err := h.checkout.GetOrderAnalytics(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	if h.rdb != nil {
		if data, err := json.Marshal(analytics); err == nil {
			h.rdb.Set(ctx, cacheKey, data, 10*time.Second)
		}
	}
	c.JSON(http.StatusOK, analytics)
}

func (h *Handler) CalculateTax(c *gin.Context) {
	var req CalculateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	items := make([]domain.TaxableItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.TaxableItem{Amount: item.Amount, Quantity: item.Quantity, Taxable: item.Taxable}
	}
	breakdown, err := h.tax.CalculateTax(c.Request.Context(), req.WorkspaceID, items,
		req.ShippingAddress.toDomain(), req.BillingAddress.toDomain())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

func (h *Handler) ValidateTaxID(c *gin.Context) {
	var req ValidateTaxIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.tax.ValidateTaxID(req.TaxID, req.Country)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetWorkspaceTaxRates(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	rates, err := h.tax.GetWorkspaceTaxRates(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rates)
}

func (h *Handler) UpsertTaxRate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpsertTaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rate, err := h.tax.UpsertTaxRate(c.Request.Context(), &domain.TaxRate{
		WorkspaceID:    id,
		Country:        req.Country,
		State:          req.State,
		Rate:           req.Rate,
		Classification: req.Classification,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rate)
}

// HandlePaymentWebhook reads the raw body for signature verification before
// any parsing.
func (h *Handler) HandlePaymentWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}
	if err := h.webhooks.HandleEvent(c.Request.Context(), body, c.GetHeader("X-Signature")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

func analyticsCacheKey(workspaceID uint64) string {
	return "analytics:workspace:" + strconv.FormatUint(workspaceID, 10)
}

func (h *Handler) invalidateAnalytics(workspaceID uint64) {
	if h.rdb != nil {
		h.rdb.Del(context.Background(), analyticsCacheKey(workspaceID))
	}
}
