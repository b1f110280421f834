package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aubrey-sherman/baby-bootcamp-be/internal/service"
	"github.com/aubrey-sherman/baby-bootcamp-be/pkg/response"
)

// MustGetUsername extracts the authenticated username from the Gin
// context. When the JWT middleware did not inject one it writes a 401
// and returns false; callers should return immediately in that case.
func MustGetUsername(c *gin.Context) (string, bool) {
	v, exists := c.Get("username")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// GetTimezone extracts the caller's zone name injected by the timezone
// middleware. Missing or unknown zones are rejected downstream.
func GetTimezone(c *gin.Context) string {
	return c.GetString("timezone")
}

// parseClientDate resolves a date parameter in the caller's timezone:
// RFC 3339 instants pass through, bare YYYY-MM-DD dates mean midnight
// of that local day. It writes the error response itself; callers
// should return immediately when ok is false.
func parseClientDate(c *gin.Context, s string) (time.Time, bool) {
	var tz service.TimezoneConverter
	loc, err := tz.LoadZone(GetTimezone(c))
	if err != nil {
		response.FromError(c, err)
		return time.Time{}, false
	}
	t, err := tz.ToUTC(s, loc)
	if err != nil {
		response.FromError(c, err)
		return time.Time{}, false
	}
	return t, true
}
