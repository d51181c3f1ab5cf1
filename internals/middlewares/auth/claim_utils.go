package auth

import (
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

// util kecil untuk ambil string claim
func strClaim(m jwt.MapClaims, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func firstClaim(m jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		if s := strClaim(m, k); s != "" {
			return s
		}
	}
	return ""
}
