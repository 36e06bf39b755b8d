package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Nerzal/gocloak/v13"
	nuts "github.com/vaudience/go-nuts"
	"github.com/weatherstation/api-server/internal/config"
	"github.com/weatherstation/api-server/internal/errors"
)

type contextKey string

const userContextKey contextKey = "user"

// KeycloakClient is the subset of the gocloak client used for token checks
type KeycloakClient interface {
	RetrospectToken(ctx context.Context, accessToken, clientID, clientSecret, realm string) (*gocloak.IntroSpectTokenResult, error)
	GetRealmRoles(ctx context.Context, accessToken, realm string, params gocloak.GetRoleParams) ([]*gocloak.Role, error)
	GetUserInfo(ctx context.Context, accessToken, realm string) (*gocloak.UserInfo, error)
}

type KeycloakMiddleware struct {
	client KeycloakClient
	config config.KeycloakConfig
}

type UserContext struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

func NewKeycloakMiddleware(cfg config.KeycloakConfig) *KeycloakMiddleware {
	return NewKeycloakMiddlewareWithClient(cfg, gocloak.NewClient(cfg.URL))
}

func NewKeycloakMiddlewareWithClient(cfg config.KeycloakConfig, client KeycloakClient) *KeycloakMiddleware {
	return &KeycloakMiddleware{client: client, config: cfg}
}

// UserFromContext returns the authenticated user, if any
func UserFromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// Authenticate validates the token and adds user info to context
func (k *KeycloakMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			handleError(w, errors.NewAuthError("no token provided", nil))
			return
		}

		result, err := k.client.RetrospectToken(r.Context(), token, k.config.ClientID, k.config.ClientSecret, k.config.Realm)
		if err != nil || result == nil || !gocloak.PBool(result.Active) {
			handleError(w, errors.NewAuthError("invalid token", err))
			return
		}

		roles, err := k.client.GetRealmRoles(r.Context(), token, k.config.Realm, gocloak.GetRoleParams{})
		if err != nil {
			handleError(w, errors.NewAuthError("failed to get realm roles", err))
			return
		}

		claims, err := k.client.GetUserInfo(r.Context(), token, k.config.Realm)
		if err != nil || claims == nil {
			handleError(w, errors.NewAuthError("failed to get user info", err))
			return
		}

		user := newUserContext(claims, roles)
		nuts.L.Debugf("[Auth] %s %s by %s", r.Method, r.URL.Path, user.Username)

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles middleware ensures user has required roles
func (k *KeycloakMiddleware) RequireRoles(roles []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				handleError(w, errors.NewAuthError("no user context found", nil))
				return
			}

			if !hasRequiredRoles(user.Roles, roles) {
				handleError(w, errors.NewAuthorizationError("insufficient permissions", nil))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func newUserContext(userInfo *gocloak.UserInfo, roles []*gocloak.Role) *UserContext {
	return &UserContext{
		ID:       gocloak.PString(userInfo.Sub),
		Username: gocloak.PString(userInfo.PreferredUsername),
		Email:    gocloak.PString(userInfo.Email),
		Roles:    extractRoles(roles),
	}
}

func extractToken(r *http.Request) string {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

func extractRoles(roles []*gocloak.Role) []string {
	roleStrings := []string{}
	for _, role := range roles {
		if role != nil && role.Name != nil {
			roleStrings = append(roleStrings, *role.Name)
		}
	}
	return roleStrings
}

func hasRequiredRoles(userRoles, requiredRoles []string) bool {
	if len(requiredRoles) == 0 {
		return true
	}

	roleMap := make(map[string]bool)
	for _, role := range userRoles {
		roleMap[role] = true
	}

	for _, required := range requiredRoles {
		if required == "*" {
			return true
		}
		if !roleMap[required] {
			return false
		}
	}
	return true
}

func handleError(w http.ResponseWriter, apiErr *errors.APIError) {
	nuts.L.Warnf("[Auth] %s", apiErr.Error())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Code)
	json.NewEncoder(w).Encode(apiErr)
}
