package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"digestease/internal/logger"
	"digestease/internal/models"
	"digestease/internal/usecases"
)

type RapportStore interface {
	CreateRapport(ctx context.Context, rapport *models.Rapport) error
	ListRapports(ctx context.Context) ([]models.Rapport, error)
}

type LogReader interface {
	RecentLogs(ctx context.Context, limit int) ([]models.LogEntry, error)
}

type TextGenerator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// RapportCache is optional; a nil cache disables caching. Set must drop the
// list when Invalidate ran after Generation returned gen.
type RapportCache interface {
	Get(ctx context.Context) ([]models.Rapport, bool, error)
	Generation(ctx context.Context) (int64, error)
	Set(ctx context.Context, gen int64, rapports []models.Rapport) (bool, error)
	Invalidate(ctx context.Context) error
}

type RapportHandler struct {
	rapports RapportStore
	logs     LogReader
	aiClient TextGenerator
	cache    RapportCache
	window   int
	now      func() time.Time
	log      *zap.Logger
}

func NewRapportHandler(rapports RapportStore, logs LogReader, aiClient TextGenerator, cache RapportCache, window int, log *zap.Logger) *RapportHandler {
	return &RapportHandler{
		rapports: rapports,
		logs:     logs,
		aiClient: aiClient,
		cache:    cache,
		window:   window,
		now:      time.Now,
		log:      logger.OrNop(log),
	}
}

func (rh *RapportHandler) HandleListRapports(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/rapports.go HandleListRapports"

	if r.Method != http.MethodGet {
		writeError(w, rh.log, op, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}

	fill := false
	var gen int64
	if rh.cache != nil {
		cached, hit, err := rh.cache.Get(r.Context())
		if err != nil {
			rh.log.Warn("rapport cache read failed", zap.String("op", op), zap.Error(err))
		}
		if hit {
			writeJSON(w, rh.log, op, http.StatusOK, cached)
			return
		}

		gen, err = rh.cache.Generation(r.Context())
		if err != nil {
			rh.log.Warn("rapport cache generation read failed", zap.String("op", op), zap.Error(err))
		} else {
			fill = true
		}
	}

	rapports, err := rh.rapports.ListRapports(r.Context())
	if err != nil {
		rh.log.Error("couldnt list rapports", zap.String("op", op), zap.Error(err))
		writeError(w, rh.log, op, http.StatusInternalServerError, "Couldnt get rapports.")
		return
	}

	if fill {
		stored, err := rh.cache.Set(r.Context(), gen, rapports)
		if err != nil {
			rh.log.Warn("rapport cache write failed", zap.String("op", op), zap.Error(err))
		} else if !stored {
			rh.log.Debug("rapport list changed while reading, cache not filled", zap.String("op", op))
		}
	}

	writeJSON(w, rh.log, op, http.StatusOK, rapports)
}

// HandleGenerateRapport summarizes the most recent logs into a new rapport.
// GET is accepted as well as POST.
func (rh *RapportHandler) HandleGenerateRapport(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/rapports.go HandleGenerateRapport"

	if r.Method != http.MethodPost && r.Method != http.MethodGet {
		writeError(w, rh.log, op, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}

	//recent logs
	logs, err := rh.logs.RecentLogs(r.Context(), rh.window)
	if err != nil {
		rh.log.Error("couldnt load logs", zap.String("op", op), zap.Error(err))
		writeError(w, rh.log, op, http.StatusInternalServerError, "Couldnt load logs.")
		return
	}
	if len(logs) == 0 {
		writeError(w, rh.log, op, http.StatusConflict, "No logs to build a rapport from.")
		return
	}

	//get answer from ai
	response, err := rh.aiClient.Generate(r.Context(), usecases.RAPPORT_PROMPT, usecases.BuildRapportPrompt(logs))
	if err != nil {
		rh.log.Error("ai error", zap.String("op", op), zap.Error(err))
		writeError(w, rh.log, op, http.StatusBadGateway, "AI service error.")
		return
	}

	result, err := usecases.ParseRapportResponse(response)
	if err != nil {
		rh.log.Error("ai answer unusable", zap.String("op", op), zap.Error(err))
		writeError(w, rh.log, op, http.StatusBadGateway, "AI service error.")
		return
	}

	rapport := models.Rapport{
		Date:   rh.now().Format(models.DateLayout),
		Result: result,
	}
	if err := rh.rapports.CreateRapport(r.Context(), &rapport); err != nil {
		rh.log.Error("couldnt save rapport", zap.String("op", op), zap.Error(err))
		writeError(w, rh.log, op, http.StatusInternalServerError, "Couldnt save rapport.")
		return
	}

	if rh.cache != nil {
		if err := rh.cache.Invalidate(r.Context()); err != nil {
			rh.log.Warn("rapport cache invalidate failed", zap.String("op", op), zap.Error(err))
		}
	}

	rh.log.Info("rapport generated", zap.String("op", op), zap.String("id", rapport.ID), zap.Int("logs", len(logs)))
	writeJSON(w, rh.log, op, http.StatusOK, rapport)
}
