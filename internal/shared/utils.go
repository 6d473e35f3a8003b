// Package shared
package shared

import (
	"math"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/unicode/norm"
)

func GetEnv(env, fallback string) string {
	if value, ok := os.LookupEnv(env); ok {
		return value
	}
	return fallback
}

func ExtractAPIKey(c echo.Context) (string, error) {
	// Check Authorization header
	auth := c.Request().Header.Get("Authorization")
	if auth == "" {
		return "", ErrMissingAuth
	}

	// Validate bearer format
	parts := strings.Split(auth, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", ErrInvalidFormat
	}

	return parts[1], nil
}

func DerefString(s *string) string {
	if s != nil {
		return *s
	}
	return ""
}

// NormalizeCategory folds a raw category label into its canonical form:
// unicode NFKC, then trimmed and lowercased. Idempotent, so already
// normalized input passes through unchanged.
func NormalizeCategory(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(s)))
}

// Round2 rounds display values to two decimals. Internal math stays at
// full precision.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
