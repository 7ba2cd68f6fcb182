package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/stationops/roster-service/internal/entity"
)

type ResponseError struct {
	Message string `json:"message"`
}

// SendErr answers with the fixed user-facing message only. The underlying
// error goes to the log, never to the client.
func SendErr(ctx context.Context, w http.ResponseWriter, code int, err error, msg string) {
	slog.ErrorContext(ctx, msg, "error", err.Error(), "http_code", code)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	err = json.NewEncoder(w).Encode(ResponseError{Message: msg})
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode error response",
			"error", err.Error(),
			"http_code", http.StatusInternalServerError)
	}
}

func SendJSON(ctx context.Context, w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		SendErr(ctx, w, http.StatusInternalServerError, err, "")
		return
	}
}

// extractBearerToken pulls the credential out of the Authorization header.
// The "Bearer" scheme prefix is optional and case-insensitive: clients that
// send the bare token are accepted.
func extractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errors.New(entity.ErrMsgNoAuthHeader)
	}

	token := header
	if len(header) >= len("bearer ") && strings.EqualFold(header[:len("bearer ")], "bearer ") {
		token = header[len("bearer "):]
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", errors.New(entity.ErrMsgNoToken)
	}

	return token, nil
}

func parseEmployeesFilter(url url.Values) entity.EmployeesFilter {
	page, err := strconv.Atoi(url.Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}

	limit, err := strconv.Atoi(url.Get("limit"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}

	return entity.EmployeesFilter{
		ActiveOnly: url.Get("active_only") == "true",
		Search:     url.Get("search"),
		Page:       uint64(page),
		Limit:      uint64(limit),
	}
}
