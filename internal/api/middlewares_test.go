package api_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stationops/roster-service/internal/api"
	"github.com/stationops/roster-service/internal/entity"
	"github.com/stationops/roster-service/internal/mocks"
	"github.com/stationops/roster-service/pkg/config"
)

const testAdminKey = "super-secret-admin-key"

type middlewareFixture struct {
	provider *mocks.MockIdentityProvider
	resolver *mocks.MockIdentityResolver
	mw       *api.Middleware
}

func newMiddlewareFixture(t *testing.T, adminKey string) *middlewareFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	provider := mocks.NewMockIdentityProvider(ctrl)
	resolver := mocks.NewMockIdentityResolver(ctrl)

	return &middlewareFixture{
		provider: provider,
		resolver: resolver,
		mw:       api.NewMiddleware(config.Config{AdminAPIKey: adminKey}, provider, resolver),
	}
}

// identityProbe records the identity the middleware left in the context.
func identityProbe(got *entity.ResolvedIdentity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := entity.IdentityFromContext(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		*got = identity
		w.WriteHeader(http.StatusOK)
	})
}

func TestRecover_PanicReturns500(t *testing.T) {
	t.Parallel()

	f := newMiddlewareFixture(t, testAdminKey)

	next := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	rec := httptest.NewRecorder()

	f.mw.Recover(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWithIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		wantIP     string
	}{
		{
			name:       "x-forwarded-for first hop",
			remoteAddr: "10.0.0.1:4567",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			wantIP:     "203.0.113.7",
		},
		{
			name:       "x-real-ip fallback",
			remoteAddr: "10.0.0.1:4567",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			wantIP:     "203.0.113.9",
		},
		{
			name:       "remote addr fallback",
			remoteAddr: "192.0.2.5:1234",
			wantIP:     "192.0.2.5",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newMiddlewareFixture(t, testAdminKey)

			var gotIP string

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotIP, _ = r.Context().Value(entity.CtxKeyIP{}).(string)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
			req.RemoteAddr = tt.remoteAddr

			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			rec := httptest.NewRecorder()

			f.mw.WithIP(next).ServeHTTP(rec, req)

			require.Equal(t, tt.wantIP, gotIP)
		})
	}
}

func TestAuth_NoAuthorizationHeader(t *testing.T) {
	t.Parallel()

	f := newMiddlewareFixture(t, testAdminKey)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	rec := httptest.NewRecorder()

	var got entity.ResolvedIdentity
	f.mw.Auth(identityProbe(&got)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_EmptyBearerToken(t *testing.T) {
	t.Parallel()

	f := newMiddlewareFixture(t, testAdminKey)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer   ")
	rec := httptest.NewRecorder()

	var got entity.ResolvedIdentity
	f.mw.Auth(identityProbe(&got)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_AdminKeyBypass(t *testing.T) {
	t.Parallel()

	f := newMiddlewareFixture(t, testAdminKey)

	// No provider expectations: the bypass must not touch the provider or
	// the resolver.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+testAdminKey)
	rec := httptest.NewRecorder()

	var got entity.ResolvedIdentity
	f.mw.Auth(identityProbe(&got)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, entity.AdminAPIKeySubjectID, got.SubjectID)
	require.True(t, got.HasRole(entity.RoleAdmin))
	require.Nil(t, got.Subject)
	require.Zero(t, got.Permissions.Len())
}

func TestAuth_AdminKeyDisabledWhenUnset(t *testing.T) {
	t.Parallel()

	f := newMiddlewareFixture(t, "")

	// With no admin key configured the would-be key is just another token
	// and must go through the provider.
	f.provider.EXPECT().
		VerifyToken(gomock.Any(), testAdminKey).
		Return("", entity.ErrUnauthorized)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+testAdminKey)
	rec := httptest.NewRecorder()

	var got entity.ResolvedIdentity
	f.mw.Auth(identityProbe(&got)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_BareTokenAccepted(t *testing.T) {
	t.Parallel()

	f := newMiddlewareFixture(t, testAdminKey)

	subject := &entity.Subject{ID: "subject-1", Email: "worker@example.com"}
	identity := entity.ResolvedIdentity{
		SubjectID: "subject-1",
		Subject:   subject,
		Roles:     entity.NewRoleSet(entity.RoleGateStaff),
	}

	f.provider.EXPECT().VerifyToken(gomock.Any(), "opaque-token").Return("subject-1", nil)
	f.provider.EXPECT().GetSubject(gomock.Any(), "subject-1").Return(subject, nil)
	f.resolver.EXPECT().Resolve(gomock.Any(), subject).Return(identity, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "opaque-token")
	rec := httptest.NewRecorder()

	var got entity.ResolvedIdentity
	f.mw.Auth(identityProbe(&got)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "subject-1", got.SubjectID)
	require.True(t, got.HasRole(entity.RoleGateStaff))
}

func TestAuth_LowercaseBearerPrefix(t *testing.T) {
	t.Parallel()

	f := newMiddlewareFixture(t, testAdminKey)

	subject := &entity.Subject{ID: "subject-1"}

	f.provider.EXPECT().VerifyToken(gomock.Any(), "opaque-token").Return("subject-1", nil)
	f.provider.EXPECT().GetSubject(gomock.Any(), "subject-1").Return(subject, nil)
	f.resolver.EXPECT().
		Resolve(gomock.Any(), subject).
		Return(entity.ResolvedIdentity{SubjectID: "subject-1"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "bearer opaque-token")
	rec := httptest.NewRecorder()

	var got entity.ResolvedIdentity
	f.mw.Auth(identityProbe(&got)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_VerificationFailure(t *testing.T) {
	t.Parallel()

	f := newMiddlewareFixture(t, testAdminKey)

	f.provider.EXPECT().
		VerifyToken(gomock.Any(), "bad-token").
		Return("", entity.ErrUnauthorized)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()

	var got entity.ResolvedIdentity
	f.mw.Auth(identityProbe(&got)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotContains(t, rec.Body.String(), "bad-token")
}

func TestAuth_ProviderOutage(t *testing.T) {
	t.Parallel()

	f := newMiddlewareFixture(t, testAdminKey)

	f.provider.EXPECT().
		VerifyToken(gomock.Any(), "opaque-token").
		Return("", entity.ErrProviderUnavailable)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer opaque-token")
	rec := httptest.NewRecorder()

	var got entity.ResolvedIdentity
	f.mw.Auth(identityProbe(&got)).ServeHTTP(rec, req)

	// Fail closed: an unreachable provider is indistinguishable from a bad
	// credential as far as the client is concerned.
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_DisabledSubject(t *testing.T) {
	t.Parallel()

	f := newMiddlewareFixture(t, testAdminKey)

	f.provider.EXPECT().VerifyToken(gomock.Any(), "opaque-token").Return("subject-1", nil)
	f.provider.EXPECT().
		GetSubject(gomock.Any(), "subject-1").
		Return(&entity.Subject{ID: "subject-1", Disabled: true}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer opaque-token")
	rec := httptest.NewRecorder()

	var got entity.ResolvedIdentity
	f.mw.Auth(identityProbe(&got)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ResolutionFailure(t *testing.T) {
	t.Parallel()

	f := newMiddlewareFixture(t, testAdminKey)

	subject := &entity.Subject{ID: "subject-1"}

	f.provider.EXPECT().VerifyToken(gomock.Any(), "opaque-token").Return("subject-1", nil)
	f.provider.EXPECT().GetSubject(gomock.Any(), "subject-1").Return(subject, nil)
	f.resolver.EXPECT().
		Resolve(gomock.Any(), subject).
		Return(entity.ResolvedIdentity{}, errors.New("role store unavailable"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer opaque-token")
	rec := httptest.NewRecorder()

	var got entity.ResolvedIdentity
	f.mw.Auth(identityProbe(&got)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		identity *entity.ResolvedIdentity
		required entity.RoleName
		wantCode int
	}{
		{
			name: "role present",
			identity: &entity.ResolvedIdentity{
				SubjectID: "subject-1",
				Roles:     entity.NewRoleSet(entity.RoleAdmin),
			},
			required: entity.RoleAdmin,
			wantCode: http.StatusOK,
		},
		{
			name: "role present among others",
			identity: &entity.ResolvedIdentity{
				SubjectID: "subject-1",
				Roles:     entity.NewRoleSet(entity.RoleAdmin, entity.RoleGateStaff),
			},
			required: entity.RoleAdmin,
			wantCode: http.StatusOK,
		},
		{
			name: "role missing",
			identity: &entity.ResolvedIdentity{
				SubjectID: "subject-1",
				Roles:     entity.NewRoleSet(entity.RoleGateStaff),
			},
			required: entity.RoleAdmin,
			wantCode: http.StatusForbidden,
		},
		{
			name:     "no identity in context",
			identity: nil,
			required: entity.RoleAdmin,
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newMiddlewareFixture(t, testAdminKey)

			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
			if tt.identity != nil {
				req = req.WithContext(entity.SetIdentityToContext(req.Context(), *tt.identity))
			}

			rec := httptest.NewRecorder()

			f.mw.RequireRole(tt.required)(next).ServeHTTP(rec, req)

			require.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
