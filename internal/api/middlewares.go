package api

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/stationops/roster-service/internal/entity"
	"github.com/stationops/roster-service/pkg/config"
	"github.com/stationops/roster-service/pkg/logger"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=middlewares.go -destination=../mocks/api.go -package=mocks

// IdentityProvider verifies opaque tokens and fetches subject records from
// the external provider.
type IdentityProvider interface {
	VerifyToken(ctx context.Context, token string) (string, error)
	GetSubject(ctx context.Context, subjectID string) (*entity.Subject, error)
}

// IdentityResolver turns a verified subject into its role and permission
// sets.
type IdentityResolver interface {
	Resolve(ctx context.Context, subject *entity.Subject) (entity.ResolvedIdentity, error)
}

type Middleware struct {
	cfg      config.Config
	provider IdentityProvider
	resolver IdentityResolver
}

func NewMiddleware(cfg config.Config, provider IdentityProvider, resolver IdentityResolver) *Middleware {
	return &Middleware{
		cfg:      cfg,
		provider: provider,
		resolver: resolver,
	}
}

func (m *Middleware) Log(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.SetRequestID(r.Context(), uuid.Must(uuid.NewV4()).String())

		caller := r.Header.Get("X-Service-Name")
		if caller == "" {
			caller = "unknown"
		}

		ctx = logger.SetCallerService(ctx, caller)

		if ip, ok := ctx.Value(entity.CtxKeyIP{}).(string); ok && ip != "" {
			ctx = logger.SetIP(ctx, ip)
		}

		ctx = logger.SetURL(ctx, r.URL.String())
		ctx = logger.SetMethod(ctx, r.Method)
		ctx = logger.SetLogType(ctx, "webrequest")

		slog.InfoContext(ctx, "incoming request")

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func(ctx context.Context) {
			err := recover()
			if err != nil {
				slog.ErrorContext(ctx, "panic", "error", err, "stack", string(debug.Stack()))
				w.WriteHeader(http.StatusInternalServerError)
			}
		}(r.Context())
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) Cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Origin, Accept, User-Agent, Cache-Control")

		if r.Method == http.MethodOptions {
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) WithIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ip string

		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			ips := strings.Split(forwarded, ",")
			ip = strings.TrimSpace(ips[0])
		}

		if ip == "" {
			if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
				ip = strings.TrimSpace(realIP)
			}
		}

		if ip == "" {
			var err error

			ip, _, err = net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
		}

		ctx := context.WithValue(r.Context(), entity.CtxKeyIP{}, ip)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Auth runs the credential pipeline: extract the token, check the admin key
// bypass, verify with the provider, resolve roles and permissions. Any
// verification or lookup failure ends the request with 401. The failure
// reason is logged, never echoed to the client.
func (m *Middleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token, err := extractBearerToken(r)
		if err != nil {
			SendErr(ctx, w, http.StatusUnauthorized, entity.ErrUnauthorized, err.Error())
			return
		}

		if m.isAdminKey(token) {
			identity := entity.AdminIdentity()

			ctx = logger.SetSubjectID(ctx, identity.SubjectID)
			ctx = entity.SetIdentityToContext(ctx, identity)

			next.ServeHTTP(w, r.WithContext(ctx))

			return
		}

		subjectID, err := m.provider.VerifyToken(ctx, token)
		if err != nil {
			SendErr(ctx, w, http.StatusUnauthorized, entity.ErrUnauthorized, entity.ErrMsgVerifyFailed)
			slog.WarnContext(ctx, fmt.Sprintf("token verification failed: %s", err))

			return
		}

		subject, err := m.provider.GetSubject(ctx, subjectID)
		if err != nil {
			SendErr(ctx, w, http.StatusUnauthorized, entity.ErrUnauthorized, entity.ErrMsgResolveFailed)
			slog.WarnContext(ctx, fmt.Sprintf("subject lookup failed: %s", err))

			return
		}

		if subject.Disabled {
			SendErr(ctx, w, http.StatusUnauthorized, entity.ErrUnauthorized, entity.ErrMsgResolveFailed)
			slog.WarnContext(ctx, fmt.Sprintf("subject %s is disabled", subject.ID))

			return
		}

		identity, err := m.resolver.Resolve(ctx, subject)
		if err != nil {
			SendErr(ctx, w, http.StatusUnauthorized, entity.ErrUnauthorized, entity.ErrMsgResolveFailed)
			slog.ErrorContext(ctx, fmt.Sprintf("identity resolution failed: %s", err))

			return
		}

		ctx = logger.SetSubjectID(ctx, identity.SubjectID)
		ctx = entity.SetIdentityToContext(ctx, identity)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// isAdminKey compares in constant time. An empty configured key disables the
// bypass entirely.
func (m *Middleware) isAdminKey(token string) bool {
	if m.cfg.AdminAPIKey == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(token), []byte(m.cfg.AdminAPIKey)) == 1
}

// RequireRole gates a route on a single role. It is a pure predicate over
// the identity built by Auth and performs no lookups of its own.
func (m *Middleware) RequireRole(name entity.RoleName) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			identity, err := entity.IdentityFromContext(ctx)
			if err != nil {
				SendErr(ctx, w, http.StatusUnauthorized, err, entity.ErrMsgVerifyFailed)
				return
			}

			if !identity.HasRole(name) {
				SendErr(ctx, w, http.StatusForbidden,
					fmt.Errorf("%w: subject %s lacks role %s", entity.ErrForbidden, identity.SubjectID, name),
					entity.ErrMsgInsufficientPermission)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
