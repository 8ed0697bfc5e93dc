package checkout

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	checkout := e.Group("/v1/checkout")

	checkout.GET("/options", h.Options)
	checkout.POST("/sessions", h.StartSession)

	session := checkout.Group("/sessions/:id")
	session.GET("", h.GetSession)
	session.PATCH("/details", h.UpdateDetails)
	session.POST("/submit", h.Submit)
	session.POST("/back", h.Back)
	session.POST("/exit", h.Exit)
	session.GET("/payment-methods", h.PaymentMethods)
	session.PUT("/payment-method", h.SelectPaymentMethod)
	session.POST("/place-order", h.PlaceOrder)
}
