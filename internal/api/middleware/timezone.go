package middleware

import (
	"github.com/gin-gonic/gin"
)

const timezoneKey = "timezone"

// Timezone reads the caller's IANA zone from the X-User-Timezone header
// and injects it into the context. Validation happens in the service
// layer so that a bad zone maps onto the usual error kinds.
func Timezone() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(timezoneKey, c.GetHeader("X-User-Timezone"))

		c.Next()
	}
}
