package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"digestease/internal/logger"
	"digestease/internal/models"
)

type LogStore interface {
	CreateLog(ctx context.Context, entry *models.LogEntry) error
}

type LogHandler struct {
	storage LogStore
	log     *zap.Logger
}

func NewLogHandler(s LogStore, log *zap.Logger) *LogHandler {
	return &LogHandler{storage: s, log: logger.OrNop(log)}
}

func (lh *LogHandler) HandleAddLog(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/logs.go HandleAddLog"
	if r.Method != http.MethodPost {
		lh.log.Info("method not allowed", zap.String("op", op), zap.String("method", r.Method))
		writeError(w, lh.log, op, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}

	var entry models.LogEntry

	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		lh.log.Info("couldnt decode log", zap.String("op", op), zap.Error(err))
		writeError(w, lh.log, op, http.StatusBadRequest, "Couldnt decode json. Wrong request.")
		return
	}

	if err := entry.Validate(); err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, lh.log, op, http.StatusBadRequest, errorResponse{
				Status:  "error",
				Message: "validation failed",
				Fields:  verr.Fields,
			})
			return
		}
		writeError(w, lh.log, op, http.StatusBadRequest, err.Error())
		return
	}

	entry = entry.Normalize()
	entry.ID = ""

	if err := lh.storage.CreateLog(r.Context(), &entry); err != nil {
		lh.log.Error("couldnt create log", zap.String("op", op), zap.Error(err))
		writeError(w, lh.log, op, http.StatusInternalServerError, "Couldnt create log.")
		return
	}

	lh.log.Info("log created", zap.String("op", op), zap.String("id", entry.ID), zap.String("date", entry.Date))
	writeJSON(w, lh.log, op, http.StatusCreated, map[string]string{
		"status":  "created",
		"id":      entry.ID,
		"message": "Log created successfully",
	})
}
