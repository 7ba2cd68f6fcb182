package idp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/stationops/roster-service/internal/entity"
	"github.com/stationops/roster-service/pkg/config"
)

const defaultRetryWaitMax = time.Second * 5

type ClientInterface interface {
	VerifyToken(ctx context.Context, token string) (string, error)
	GetSubject(ctx context.Context, subjectID string) (*entity.Subject, error)
}

// Client talks to the external identity provider. Tokens are opaque to this
// service: only the provider can verify them.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

var _ ClientInterface = (*Client)(nil)

func NewClient(cfg config.IdentityProviderConfig) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryAttempts
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = defaultRetryWaitMax
	retryClient.HTTPClient.Timeout = cfg.Timeout

	retryClient.Logger = nil

	retryClient.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if err != nil {
			return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
		}

		return false, nil
	}

	return &Client{
		client:  retryClient.StandardClient(),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
	}
}

type verifyTokenRequest struct {
	Token string `json:"token"`
}

type verifyTokenResponse struct {
	SubjectID string `json:"subject_id"`
}

type subjectResponse struct {
	SubjectID   string `json:"subject_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Disabled    bool   `json:"disabled"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// VerifyToken asks the provider whether the token is valid and returns the
// subject it belongs to. The token itself never appears in errors or logs.
func (c *Client) VerifyToken(ctx context.Context, token string) (string, error) {
	endpoint := c.baseURL + "/v1/tokens/verify"

	body, err := json.Marshal(verifyTokenRequest{Token: token})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		if strings.Contains(err.Error(), "timeout") || strings.Contains(err.Error(), "connection refused") {
			return "", entity.ErrProviderUnavailable
		}

		return "", fmt.Errorf("send request: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", parseProviderError(resp.StatusCode, respBody)
	}

	var verifyResp verifyTokenResponse
	if err := json.Unmarshal(respBody, &verifyResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if verifyResp.SubjectID == "" {
		return "", fmt.Errorf("%w: provider returned empty subject", entity.ErrUnauthorized)
	}

	return verifyResp.SubjectID, nil
}

// GetSubject fetches the provider-side record for a verified subject.
func (c *Client) GetSubject(ctx context.Context, subjectID string) (*entity.Subject, error) {
	endpoint := c.baseURL + "/v1/subjects/" + url.PathEscape(subjectID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		if strings.Contains(err.Error(), "timeout") || strings.Contains(err.Error(), "connection refused") {
			return nil, entity.ErrProviderUnavailable
		}

		return nil, fmt.Errorf("send request: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseProviderError(resp.StatusCode, respBody)
	}

	var subjectResp subjectResponse
	if err := json.Unmarshal(respBody, &subjectResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &entity.Subject{
		ID:          subjectResp.SubjectID,
		Email:       subjectResp.Email,
		DisplayName: subjectResp.DisplayName,
		Disabled:    subjectResp.Disabled,
	}, nil
}

func parseProviderError(statusCode int, body []byte) error {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return mapHTTPStatusToError(statusCode)
	}

	switch errResp.Error {
	case "invalid_token", "token_expired", "token_revoked", "user_disabled":
		return fmt.Errorf("%w: %s", entity.ErrUnauthorized, errResp.Error)
	case "subject_not_found":
		return entity.ErrNoSubject
	default:
		return mapHTTPStatusToError(statusCode)
	}
}

func mapHTTPStatusToError(statusCode int) error {
	switch statusCode {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return entity.ErrUnauthorized
	case http.StatusNotFound:
		return entity.ErrNoSubject
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return entity.ErrProviderUnavailable
	default:
		return fmt.Errorf("identity provider error: status %d", statusCode)
	}
}
