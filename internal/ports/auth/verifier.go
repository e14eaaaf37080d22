package auth

import (
	"context"
	"time"
)

// TokenVerifier verifica un token firmado y devuelve claims o error.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer emite un token firmado para un user id.
type TokenIssuer interface {
	Issue(userID string) (token string, expiresAt time.Time, err error)
}

// PrincipalSource resuelve un user id verificado a su principal actual
// (rol vigente, cuenta existente). Lo implementa el servicio de usuarios.
type PrincipalSource interface {
	PrincipalByID(ctx context.Context, userID string) (Principal, error)
}
