package idp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stationops/roster-service/internal/entity"
	"github.com/stationops/roster-service/pkg/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.IdentityProviderConfig{
		BaseURL:       baseURL,
		APIKey:        "test-api-key",
		Timeout:       2 * time.Second,
		RetryAttempts: 0,
	})
}

func TestClient_VerifyToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		serverResponse func(w http.ResponseWriter, r *http.Request)
		wantSubjectID  string
		wantErr        error
	}{
		{
			name: "valid token",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("Expected POST, got %s", r.Method)
				}
				if r.URL.Path != "/v1/tokens/verify" {
					t.Errorf("Unexpected path %s", r.URL.Path)
				}
				if r.Header.Get("Authorization") != "Bearer test-api-key" {
					t.Error("Missing service credentials")
				}

				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(`{"subject_id":"subject-42"}`))
			},
			wantSubjectID: "subject-42",
		},
		{
			name: "invalid token",
			serverResponse: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"invalid_token","message":"token signature mismatch"}`))
			},
			wantErr: entity.ErrUnauthorized,
		},
		{
			name: "expired token",
			serverResponse: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"token_expired"}`))
			},
			wantErr: entity.ErrUnauthorized,
		},
		{
			name: "empty subject in response",
			serverResponse: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(`{}`))
			},
			wantErr: entity.ErrUnauthorized,
		},
		{
			name: "provider down",
			serverResponse: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`upstream unavailable`))
			},
			wantErr: entity.ErrProviderUnavailable,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(tt.serverResponse))
			defer server.Close()

			client := newTestClient(server.URL)

			subjectID, err := client.VerifyToken(context.Background(), "some-token")

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if subjectID != tt.wantSubjectID {
				t.Errorf("Expected subject %q, got %q", tt.wantSubjectID, subjectID)
			}
		})
	}
}

func TestClient_VerifyToken_DoesNotLeakToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_token"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	const token = "super-secret-bearer-token"

	_, err := client.VerifyToken(context.Background(), token)
	if err == nil {
		t.Fatal("Expected error")
	}

	if got := err.Error(); strings.Contains(got, token) {
		t.Errorf("Error message leaks the token: %q", got)
	}
}

func TestClient_GetSubject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		subjectID      string
		serverResponse func(w http.ResponseWriter, r *http.Request)
		wantSubject    *entity.Subject
		wantErr        error
	}{
		{
			name:      "existing subject",
			subjectID: "subject-42",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v1/subjects/subject-42" {
					t.Errorf("Unexpected path %s", r.URL.Path)
				}

				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(`{
					"subject_id": "subject-42",
					"email": "worker@example.com",
					"display_name": "Worker Person",
					"disabled": false
				}`))
			},
			wantSubject: &entity.Subject{
				ID:          "subject-42",
				Email:       "worker@example.com",
				DisplayName: "Worker Person",
			},
		},
		{
			name:      "disabled subject",
			subjectID: "subject-42",
			serverResponse: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(`{"subject_id":"subject-42","disabled":true}`))
			},
			wantSubject: &entity.Subject{ID: "subject-42", Disabled: true},
		},
		{
			name:      "unknown subject",
			subjectID: "ghost",
			serverResponse: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"error":"subject_not_found"}`))
			},
			wantErr: entity.ErrNoSubject,
		},
		{
			name:      "provider down",
			subjectID: "subject-42",
			serverResponse: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantErr: entity.ErrProviderUnavailable,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(tt.serverResponse))
			defer server.Close()

			client := newTestClient(server.URL)

			subject, err := client.GetSubject(context.Background(), tt.subjectID)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if *subject != *tt.wantSubject {
				t.Errorf("Expected subject %+v, got %+v", tt.wantSubject, subject)
			}
		})
	}
}
