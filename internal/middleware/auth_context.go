package middleware

import (
	"context"
	"net/http"
	"strings"

	"petpal-api/internal/ports/auth"
)

type ctxKey string

const principalKey ctxKey = "principal"

// CookieName es la cookie httpOnly donde viaja el token (además de Bearer).
const CookieName = "token"

// AuthContext:
// - Si verifier != nil: extrae token (cookie "token" o Authorization: Bearer),
//   lo verifica y resuelve el principal contra el directorio de usuarios.
// - Si verifier == nil: modo dev, headers X-Debug-User-ID / X-Debug-Role.
// - Si no hay principal, el request sigue anónimo; Require* decide 401/403.
func AuthContext(verifier auth.TokenVerifier, users auth.PrincipalSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				if uid := strings.TrimSpace(r.Header.Get("X-Debug-User-ID")); uid != "" {
					role, ok := auth.ParseRole(strings.TrimSpace(r.Header.Get("X-Debug-Role")))
					if !ok {
						role = auth.RoleBuyer
					}
					p := auth.Principal{UserID: uid, Role: role}
					next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), p)))
					return
				}

				next.ServeHTTP(w, r)
				return
			}

			token := extractToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				// Token inválido == anónimo; el handler corta con 401.
				next.ServeHTTP(w, r)
				return
			}

			p, err := users.PrincipalByID(r.Context(), claims.UserID)
			if err != nil {
				// Usuario borrado/desconocido: token firmado pero sin cuenta.
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), p)))
		})
	}
}

func withPrincipal(ctx context.Context, p auth.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func GetPrincipal(ctx context.Context) (auth.Principal, bool) {
	v := ctx.Value(principalKey)
	if v == nil {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	if !ok || strings.TrimSpace(p.UserID) == "" {
		return auth.Principal{}, false
	}
	return p, true
}

// extractToken: cookie primero (flujo browser), Bearer como fallback (API).
func extractToken(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && strings.TrimSpace(c.Value) != "" {
		return strings.TrimSpace(c.Value)
	}
	return bearerToken(r.Header.Get("Authorization"))
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
