package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired admits requests carrying a verified access token. Live-feed
// tokens verify against the same key but only open the websocket stream.
func AuthRequired() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			switch tokenType, _ := claims["type"].(string); tokenType {
			case jwt.TokenTypeAccess:
				next.ServeHTTP(w, r)
			case jwt.TokenTypeLive:
				response.Unauthorized(w, "Live-feed tokens can only open the live attendance stream")
			default:
				response.HandleError(w, auth.ErrInvalidToken)
			}
		}
		return http.HandlerFunc(hfn)
	}
}
