package middleware

import (
	"net/http"
	"strings"
	"time"

	types "hava-checkout/internal/common/type"
	"hava-checkout/internal/pkg/helper"
	"hava-checkout/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const RequestIDHeader = "X-Request-Id"

// CorsMiddleware allows the storefront origins to call the API.
func CorsMiddleware(allowOrigins ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowed := "*"
		if len(allowOrigins) > 0 {
			allowed = lo.Ternary(lo.Contains(allowOrigins, origin), origin, allowOrigins[0])
		}

		c.Header("Access-Control-Allow-Origin", allowed)
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, "+RequestIDHeader)
		c.Header("Access-Control-Allow-Methods", strings.Join([]string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		}, ","))

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RequestInit tags every request with an id and logs its outcome.
func RequestInit() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		start := time.Now()
		c.Next()

		logger.HTTP.Printf("request_id=%s method=%s path=%s status=%d duration=%s",
			requestID,
			c.Request.Method,
			c.FullPath(),
			c.Writer.Status(),
			time.Since(start),
		)
	}
}

// ResponseInit installs the "send" function handlers use to write a
// service response.
func ResponseInit() gin.HandlerFunc {
	return func(c *gin.Context) {
		send := func(r *types.Response) {
			r = helper.ParseResponse(r)
			c.AbortWithStatusJSON(r.Code, helper.ToResponseAPI(r))
		}
		c.Set("send", send)
		c.Next()
	}
}
