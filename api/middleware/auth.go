package middleware

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/crmgraphql-backend/api/responses"
	pkgAuth "github.com/angelmondragon/crmgraphql-backend/pkg/auth"
	"github.com/angelmondragon/crmgraphql-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/crmgraphql-backend/pkg/errors"
	"github.com/angelmondragon/crmgraphql-backend/pkg/logger"
)

// Auth validates a bearer token when one is presented and seeds the request
// context with the caller. Requests without credentials pass through
// unauthenticated; the resolvers reject the operations that need a caller.
// A token that is present but invalid is rejected here.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			caller := &Caller{Payload: pkgAuth.TokenPayload{
				UserID:   claims.UserID,
				Name:     claims.Name,
				LastName: claims.LastName,
			}}
			ctx := WithCaller(r.Context(), caller)
			if logg != nil {
				ctx = logg.WithUserID(ctx, claims.UserID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
