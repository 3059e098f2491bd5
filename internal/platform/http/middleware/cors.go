package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"projects_backend/internal/shared/response"
)

// CORSConfig builds the cors configuration for the given origins. "*" allows any origin.
func CORSConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", HeaderRequestID},
		ExposeHeaders: []string{HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// CORS applies cfg to non-preflight requests.
func CORS(cfg cors.Config) gin.HandlerFunc {
	return cors.New(cfg)
}

// Preflight answers every OPTIONS request with 200 {"status":"ok"} and the CORS
// headers from cfg. It must run before CORS, which would otherwise end
// preflights with an empty 204.
func Preflight(cfg cors.Config) gin.HandlerFunc {
	methods := strings.Join(cfg.AllowMethods, ",")
	headers := strings.Join(cfg.AllowHeaders, ",")
	maxAge := strconv.FormatInt(int64(cfg.MaxAge.Seconds()), 10)

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodOptions {
			c.Next()
			return
		}

		h := c.Writer.Header()
		if origin := c.GetHeader("Origin"); origin != "" {
			switch {
			case cfg.AllowAllOrigins:
				h.Set("Access-Control-Allow-Origin", "*")
			case slices.Contains(cfg.AllowOrigins, origin):
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			}
		}
		h.Set("Access-Control-Allow-Methods", methods)
		if requested := c.GetHeader("Access-Control-Request-Headers"); requested != "" {
			h.Set("Access-Control-Allow-Headers", requested)
		} else {
			h.Set("Access-Control-Allow-Headers", headers)
		}
		h.Set("Access-Control-Max-Age", maxAge)

		c.AbortWithStatusJSON(http.StatusOK, response.StatusResponse{Status: "ok"})
	}
}
