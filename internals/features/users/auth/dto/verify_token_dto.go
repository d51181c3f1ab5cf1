package dto

import "strings"

type VerifyTokenRequest struct {
	Token string `json:"token"`
}

func (r *VerifyTokenRequest) Normalize() {
	r.Token = strings.TrimSpace(r.Token)
}

// VerifyTokenResponse: role selalu dari tabel users, bukan dari klaim token.
type VerifyTokenResponse struct {
	UID   string `json:"uid"`
	Role  string `json:"role"`
	Email string `json:"email"`
}
