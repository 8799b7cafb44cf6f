package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/palaver-dev/palaver/internal/errors"
	"github.com/palaver-dev/palaver/internal/logger"
	"github.com/palaver-dev/palaver/internal/service"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auth   service.AuthService
	thread service.ThreadService
	reply  service.ReplyService
	health Pinger
}

func New(auth service.AuthService, thread service.ThreadService, reply service.ReplyService, health Pinger) *Handler {
	return &Handler{auth: auth, thread: thread, reply: reply, health: health}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

// parseIdParam parses a positive integer path parameter.
func parseIdParam(param, paramName string) (int64, error) {
	id, err := strconv.ParseInt(param, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Validation("invalid " + paramName + ": must be a positive integer")
	}
	return id, nil
}
