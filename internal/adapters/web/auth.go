package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"gst-billing/internal/app"

	"github.com/golang-jwt/jwt/v5"
)

const sessionTTL = 24 * time.Hour

type authClaimsKey struct{}

// AuthClaims holds the authenticated user's identity extracted from the JWT.
type AuthClaims struct {
	UserID   int
	Username string
}

// authFromContext returns the auth claims stored in ctx, or nil.
func authFromContext(ctx context.Context) *AuthClaims {
	v, _ := ctx.Value(authClaimsKey{}).(*AuthClaims)
	return v
}

// jwtClaims is the JWT payload struct used for signing and parsing.
type jwtClaims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// RequireAuth is chi middleware that validates the auth_token cookie and injects
// AuthClaims into the request context. Returns 401 if the token is absent or invalid.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("auth_token")
		if err != nil {
			writeError(w, r, "authentication required", "UNAUTHORIZED", http.StatusUnauthorized)
			return
		}

		claims := &jwtClaims{}
		token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(h.jwtSecret), nil
		})
		if err != nil || !token.Valid {
			writeError(w, r, "invalid or expired token", "UNAUTHORIZED", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), authClaimsKey{}, &AuthClaims{
			UserID:   claims.UserID,
			Username: claims.Username,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type userResponse struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	BusinessName string `json:"businessName"`
}

func toUserResponse(res *app.UserResult) userResponse {
	return userResponse{
		ID:           res.User.ID,
		Username:     res.User.Username,
		BusinessName: res.User.BusinessName,
	}
}

// issueSession signs a JWT for the user and sets it as the auth cookie.
func (h *Handler) issueSession(w http.ResponseWriter, r *http.Request, res *app.UserResult) bool {
	claims := &jwtClaims{
		UserID:   res.User.ID,
		Username: res.User.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		writeError(w, r, "token generation failed", "INTERNAL_ERROR", http.StatusInternalServerError)
		return false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(sessionTTL.Seconds()),
	})
	return true
}

// register handles POST /api/auth/register. A successful registration also
// signs the user in.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username     string `json:"username" validate:"required,min=3,max=50"`
		Password     string `json:"password" validate:"required,min=6,max=72"`
		BusinessName string `json:"businessName" validate:"required,max=200"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if !h.validateRequest(w, r, &req) {
		return
	}

	res, err := h.svc.Register(r.Context(), app.RegisterRequest{
		Username:     req.Username,
		Password:     req.Password,
		BusinessName: req.BusinessName,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if !h.issueSession(w, r, res) {
		return
	}
	writeJSONStatus(w, http.StatusCreated, toUserResponse(res))
}

// login handles POST /api/auth/login.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if !h.validateRequest(w, r, &req) {
		return
	}

	res, err := h.svc.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if !h.issueSession(w, r, res) {
		return
	}
	writeJSON(w, toUserResponse(res))
}

// logout handles POST /api/auth/logout. Clears the auth cookie.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
	w.WriteHeader(http.StatusNoContent)
}

// me handles GET /api/auth/me. Returns the current user's profile.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	if claims == nil {
		writeError(w, r, "not authenticated", "UNAUTHORIZED", http.StatusUnauthorized)
		return
	}

	res, err := h.svc.GetUser(r.Context(), claims.UserID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, toUserResponse(res))
}
