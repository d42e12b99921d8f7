package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Nisarg-M-Patel/green-MoE/internal/metrics"
)

// requestIDHeader carries the correlation id in and out of the service.
const requestIDHeader = "X-Request-ID"

// CORSConfig controls the CORS middleware. Wildcard plus credentials is
// rejected at construction time, not here.
type CORSConfig struct {
	AllowedOrigins   []string
	AllowCredentials bool
}

// Validate rejects configurations that would echo credentials to any
// origin.
func (c CORSConfig) Validate() error {
	if c.AllowCredentials {
		for _, o := range c.AllowedOrigins {
			if o == "*" {
				return fmt.Errorf("cannot enable credentials with wildcard origin (*); security risk")
			}
		}
	}
	return nil
}

func (c CORSConfig) allows(origin string) bool {
	for _, o := range c.AllowedOrigins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

// corsMiddleware answers preflight requests and stamps CORS headers for
// allowed origins.
func corsMiddleware(cfg CORSConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && cfg.allows(origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, "+requestIDHeader)
			if cfg.AllowCredentials {
				c.Header("Access-Control-Allow-Credentials", "true")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// requestIDMiddleware honors an incoming X-Request-ID or generates one,
// and reflects it on the response for log correlation.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// metricsMiddleware records per-route request durations.
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestDuration.
			WithLabelValues(route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
