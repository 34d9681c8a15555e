package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/mariorenan/diario-api/internal/database"
	"github.com/mariorenan/diario-api/internal/models"
	"github.com/mariorenan/diario-api/internal/services/oidc"
	"go.uber.org/zap"
)

type contextKey string

const userContextKey contextKey = "user"

// UserFromContext extracts the user from the request context
func UserFromContext(r *http.Request) *models.User {
	user, ok := r.Context().Value(userContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// Auth creates authentication middleware that validates JWT tokens against
// the configured OIDC provider's JWKS
func Auth(db *database.DB, oidcProvider *oidc.Provider, jwksManager *oidc.JWKSManager, providerName string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondError(w, http.StatusUnauthorized, "Missing Authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondError(w, http.StatusUnauthorized, "Invalid Authorization header format")
				return
			}

			tokenString := parts[1]

			ctx := r.Context()
			oidcConfig, err := oidcProvider.GetConfig(ctx, providerName)
			if err != nil {
				respondError(w, http.StatusInternalServerError, "Failed to get OIDC configuration")
				return
			}

			if oidcConfig.JWKSUrl == nil {
				respondError(w, http.StatusInternalServerError, "JWKS URL not configured")
				return
			}

			// Verify token
			verifier := oidc.NewVerifier(jwksManager, oidcConfig.Issuer)
			claims, err := verifier.Verify(ctx, tokenString, *oidcConfig.JWKSUrl)
			if err != nil {
				logger.Warn("token_verification_failed",
					zap.Error(err),
					zap.String("issuer", oidcConfig.Issuer),
					zap.String("jwks_url", *oidcConfig.JWKSUrl),
				)
				respondError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			// Get or create user
			userRepo := database.NewUserRepository(db)
			user, err := userRepo.GetByProviderID(ctx, claims.Sub)
			if err != nil {
				// Check if this is a "not found" error vs an actual database error
				// The repository wraps sql.ErrNoRows, so errors.Is will unwrap and check
				if errors.Is(err, sql.ErrNoRows) {
					// User doesn't exist, create it
					user = &models.User{
						ID:            uuid.New(),
						Email:         claims.Email,
						ProviderID:    &claims.Sub,
						Name:          &claims.Name,
						EmailVerified: true,
					}
					if err := userRepo.Create(ctx, user); err != nil {
						respondError(w, http.StatusInternalServerError, "Failed to create user")
						return
					}
				} else {
					// Actual database error (connection failure, timeout, etc.)
					logger.Error("failed_to_fetch_user", zap.Error(err))
					respondError(w, http.StatusInternalServerError, "Database error")
					return
				}
			} else {
				// Update user info if needed
				updateNeeded := false
				if user.Email != claims.Email {
					user.Email = claims.Email
					updateNeeded = true
				}
				if (user.Name == nil && claims.Name != "") || (user.Name != nil && *user.Name != claims.Name) {
					name := claims.Name
					user.Name = &name
					updateNeeded = true
				}
				if updateNeeded {
					if err := userRepo.Update(ctx, user); err != nil {
						logger.Warn("failed_to_update_user_claims", zap.Error(err))
					}
				}
			}

			// Add user to context
			ctx = context.WithValue(ctx, userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]any{
		"success": false,
		"error":   message,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}
