package service

import (
	"context"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/pkg/errors"

	"danceflow_backend/internals/constants"
	"danceflow_backend/internals/features/users/auth/dto"
	"danceflow_backend/internals/middlewares/auth"
)

var (
	ErrNoToken       = errors.New("no token provided")
	ErrInvalidToken  = errors.New("invalid token")
	ErrNotConfigured = errors.New("token verification is not configured")
)

// Identity = klaim yang dipakai dari ID token.
type Identity struct {
	UID   string
	Email string
	Name  string
}

// VerifyFunc memverifikasi signature + audience lalu mengembalikan klaim.
type VerifyFunc func(idToken string, audience []string) (*Identity, error)

// RoleResolver = UserService.ResolveRole.
type RoleResolver func(ctx context.Context, userID string) (role, studioID string, err error)

// VerifyGoogleIDToken: cert Google diambil & di-cache oleh verifier.
func VerifyGoogleIDToken(idToken string, audience []string) (*Identity, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, audience); err != nil {
		return nil, errors.Wrap(ErrInvalidToken, err.Error())
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidToken, err.Error())
	}
	return &Identity{UID: claimSet.Sub, Email: claimSet.Email, Name: claimSet.Name}, nil
}

type AuthService struct {
	Audience []string
	// default VerifyGoogleIDToken
	Verify VerifyFunc

	resolveRole RoleResolver
}

func NewAuthService(audience []string, resolve RoleResolver) *AuthService {
	return &AuthService{Audience: audience, Verify: VerifyGoogleIDToken, resolveRole: resolve}
}

// VerifyToken: user yang belum punya row di users dianggap student.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*dto.VerifyTokenResponse, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	if len(s.Audience) == 0 {
		return nil, ErrNotConfigured
	}
	id, err := s.Verify(token, s.Audience)
	if err != nil {
		return nil, err
	}
	if id.UID == "" {
		return nil, ErrInvalidToken
	}

	role, _, err := s.resolveRole(ctx, id.UID)
	switch {
	case errors.Is(err, auth.ErrUnknownUser):
		role = constants.RoleStudent
	case err != nil:
		return nil, errors.Wrap(err, "resolving role")
	}
	return &dto.VerifyTokenResponse{UID: id.UID, Role: role, Email: id.Email}, nil
}
