package utils

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// SendJSONError sends a standardized JSON error response and logs the
// internal error. For 5xx errors the client gets a generic message while the
// actual error is logged; for 4xx errors the publicMsg is shown as-is.
func SendJSONError(c *gin.Context, statusCode int, publicMsg string, internalError error) {
	if internalError != nil {
		log.Printf("ERROR: [API] status_code=%d, public_message='%s', internal_error='%v', path='%s'",
			statusCode, publicMsg, internalError, c.Request.URL.Path)
	} else {
		log.Printf("INFO: [API] status_code=%d, public_message='%s', path='%s'",
			statusCode, publicMsg, c.Request.URL.Path)
	}

	if statusCode >= http.StatusInternalServerError {
		if publicMsg == "" || (internalError != nil && publicMsg == internalError.Error()) {
			publicMsg = "An unexpected error occurred. Please try again later."
		}
	}

	c.AbortWithStatusJSON(statusCode, gin.H{"error": publicMsg})
}

// BaseUnitsPerToken is the number of indivisible base units in one display
// token (wei-per-ether scale).
const BaseUnitsPerToken uint64 = 1_000_000_000_000_000_000

// FormatBaseUnits renders an amount of base units as a decimal token string
// for display. All arithmetic is integer quotient/remainder; nothing in the
// system converts money through floating point.
func FormatBaseUnits(amount uint64) string {
	whole := amount / BaseUnitsPerToken
	frac := amount % BaseUnitsPerToken
	if frac == 0 {
		return fmt.Sprintf("%d", whole)
	}
	fracStr := strings.TrimRight(fmt.Sprintf("%018d", frac), "0")
	return fmt.Sprintf("%d.%s", whole, fracStr)
}

// FormatTimestamp renders a unix-seconds timestamp for display.
func FormatTimestamp(ts int64) string {
	return time.Unix(ts, 0).UTC().Format("2006-01-02 15:04:05")
}
