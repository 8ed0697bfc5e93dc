package checkout

import (
	"context"
	"net/http"

	types "hava-checkout/internal/common/type"
	"hava-checkout/internal/pkg/validation"
	checkoutService "hava-checkout/internal/service/checkout"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ctx             context.Context
	checkoutService checkoutService.IService
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

func NewHandler(ctx context.Context, checkoutService checkoutService.IService) IHandler {
	return &Handler{
		ctx:             ctx,
		checkoutService: checkoutService,
	}
}

func badRequest(err error) *types.Response {
	return &types.Response{
		Code:    http.StatusBadRequest,
		Message: "Invalid request body: " + validation.ParseError(err),
		Error:   err,
	}
}

// Options handles GET /api/v1/checkout/options: time slots, branches and
// service types for the details form.
func (h *Handler) Options(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.checkoutService.Options())
}

// StartSession handles POST /api/v1/checkout/sessions with the cart handed
// over by the storefront.
func (h *Handler) StartSession(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req checkoutService.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(badRequest(err))
		return
	}

	send(h.checkoutService.StartSession(&req))
}

func (h *Handler) GetSession(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.checkoutService.GetSession(c.Param("id")))
}

// UpdateDetails handles PATCH /api/v1/checkout/sessions/:id/details. Only
// the fields present in the body change.
func (h *Handler) UpdateDetails(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req checkoutService.UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(badRequest(err))
		return
	}

	send(h.checkoutService.UpdateDetails(c.Param("id"), &req))
}

func (h *Handler) Submit(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.checkoutService.Submit(c.Param("id")))
}

func (h *Handler) Back(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.checkoutService.Back(c.Param("id")))
}

func (h *Handler) Exit(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.checkoutService.Exit(c.Param("id")))
}

func (h *Handler) PaymentMethods(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.checkoutService.PaymentMethods(c.Param("id")))
}

// SelectPaymentMethod handles PUT /api/v1/checkout/sessions/:id/payment-method.
// An empty id clears the selection.
func (h *Handler) SelectPaymentMethod(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req checkoutService.SelectPaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(badRequest(err))
		return
	}

	send(h.checkoutService.SelectPaymentMethod(c.Param("id"), &req))
}

// PlaceOrder returns the order message and the Messenger link the client
// opens in a new tab.
func (h *Handler) PlaceOrder(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.checkoutService.PlaceOrder(c.Param("id")))
}
