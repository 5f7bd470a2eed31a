// Package auth turns a bearer token issued by the identity provider into the
// request's Caller.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lestrrat-go/httprc/v3"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
	"github.com/philly/member-admin/internal/authz/domain"
	"github.com/philly/member-admin/internal/platform/apperror"
	"github.com/philly/member-admin/internal/platform/logger"
	"github.com/philly/member-admin/internal/platform/result"
)

// PermissionsClaim carries the caller's resolved permission map. The identity
// provider writes either {"perm": true, ...} or ["perm", ...].
const PermissionsClaim = "permissions"

var (
	ErrMissingToken = apperror.New(
		apperror.CodeUnauthenticated,
		apperror.BusinessCodeAuthenticationRequired,
		"missing authentication token",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthenticated,
		apperror.BusinessCodeAuthenticationRequired,
		"invalid authentication token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthenticated,
		apperror.BusinessCodeAuthenticationRequired,
		"token has expired",
		http.StatusUnauthorized,
	)
	ErrKeysUnavailable = apperror.New(
		apperror.CodeInternalError,
		apperror.BusinessCodeGeneral,
		result.InternalErrorMessage,
		http.StatusInternalServerError,
	)
)

// Config holds the identity provider settings.
type Config struct {
	JWKSEndpoint string
	Issuer       string
}

type keySource func(ctx context.Context) (jwk.Set, error)

// JWTMiddleware validates bearer tokens against the provider's JWKS.
type JWTMiddleware struct {
	keys   keySource
	issuer string
	logger logger.Logger
}

// NewJWTMiddleware registers the JWKS endpoint in an auto-refreshing cache
// and performs the first fetch so a bad URL fails at startup.
func NewJWTMiddleware(ctx context.Context, cfg Config, logger logger.Logger) (*JWTMiddleware, error) {
	cache, err := jwk.NewCache(ctx, httprc.NewClient())
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	if err := cache.Register(ctx, cfg.JWKSEndpoint); err != nil {
		return nil, fmt.Errorf("failed to register JWKS URL: %w", err)
	}

	if _, err := cache.Lookup(ctx, cfg.JWKSEndpoint); err != nil {
		return nil, fmt.Errorf("failed to fetch initial JWKS: %w", err)
	}

	return newJWTMiddleware(func(ctx context.Context) (jwk.Set, error) {
		return cache.Lookup(ctx, cfg.JWKSEndpoint)
	}, cfg.Issuer, logger), nil
}

// NewStaticJWTMiddleware validates against a fixed key set.
func NewStaticJWTMiddleware(keys jwk.Set, issuer string, logger logger.Logger) *JWTMiddleware {
	return newJWTMiddleware(func(context.Context) (jwk.Set, error) {
		return keys, nil
	}, issuer, logger)
}

func newJWTMiddleware(keys keySource, issuer string, logger logger.Logger) *JWTMiddleware {
	return &JWTMiddleware{keys: keys, issuer: issuer, logger: logger}
}

func (m *JWTMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		caller, err := m.authenticate(ctx, r.Header.Get("Authorization"))
		if err != nil {
			if appErr, ok := apperror.As(err); !ok || appErr.HTTPStatus >= http.StatusInternalServerError {
				m.logger.Error(ctx, "failed to authenticate request", "error", err)
			} else {
				m.logger.Debug(ctx, "rejected bearer token", "error", err)
			}
			_ = result.Write(w, result.FromError[any](err))
			return
		}

		next.ServeHTTP(w, r.WithContext(WithCaller(ctx, caller)))
	})
}

func (m *JWTMiddleware) authenticate(ctx context.Context, header string) (*domain.Caller, error) {
	if header == "" {
		return nil, ErrMissingToken
	}

	tokenString := strings.TrimPrefix(header, "Bearer ")
	if tokenString == header || tokenString == "" {
		return nil, ErrInvalidToken
	}

	keySet, err := m.keys(ctx)
	if err != nil {
		return nil, apperror.From(ErrKeysUnavailable, fmt.Errorf("lookup JWKS: %w", err))
	}

	token, err := jwt.ParseString(
		tokenString,
		jwt.WithKeySet(keySet),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.issuer),
	)
	if err != nil {
		if errors.Is(err, jwt.TokenExpiredError()) {
			return nil, apperror.From(ErrTokenExpired, err)
		}
		return nil, apperror.From(ErrInvalidToken, err)
	}

	var subject string
	if err := token.Get("sub", &subject); err != nil || subject == "" {
		return nil, apperror.From(ErrInvalidToken, errors.New("missing subject in token"))
	}

	var raw any
	if err := token.Get(PermissionsClaim, &raw); err != nil {
		raw = nil
	}
	permissions, err := parsePermissions(raw)
	if err != nil {
		return nil, apperror.From(ErrInvalidToken, err)
	}

	return domain.NewCaller(subject, permissions), nil
}

// parsePermissions accepts a map of booleans or a list of ids. Missing
// claims grant nothing; non-boolean map values count as not granted.
func parsePermissions(raw any) (domain.PermissionMap, error) {
	permissions := domain.PermissionMap{}

	switch v := raw.(type) {
	case nil:
	case map[string]any:
		for id, granted := range v {
			if ok, isBool := granted.(bool); isBool {
				permissions[id] = ok
			}
		}
	case map[string]bool:
		for id, granted := range v {
			permissions[id] = granted
		}
	case []any:
		for _, item := range v {
			id, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s claim holds a non-string entry", PermissionsClaim)
			}
			permissions[id] = true
		}
	case []string:
		for _, id := range v {
			permissions[id] = true
		}
	default:
		return nil, fmt.Errorf("%s claim has unsupported type %T", PermissionsClaim, raw)
	}

	return permissions, nil
}
