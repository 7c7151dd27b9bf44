package journal

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"digestease/internal/logger"
	"digestease/internal/models"
)

type RapportGenerator interface {
	GenerateRapport(ctx context.Context) (models.Rapport, error)
}

// Generator asks the service for a new rapport and appends it to the store.
// Calls are independent: two calls may append two rapports.
type Generator struct {
	source RapportGenerator
	store  *RapportStore
	log    *zap.Logger
}

func NewGenerator(source RapportGenerator, store *RapportStore, log *zap.Logger) *Generator {
	return &Generator{
		source: source,
		store:  store,
		log:    logger.OrNop(log),
	}
}

func (g *Generator) Generate(ctx context.Context) (models.Rapport, error) {
	op := "journal.Generate"

	rapport, err := g.source.GenerateRapport(ctx)
	if err != nil {
		g.log.Warn("rapport generation failed", zap.String("op", op), zap.Error(err))
		return models.Rapport{}, fmt.Errorf("generate rapport: %w", err)
	}

	g.store.Append(rapport)
	g.log.Info("rapport generated", zap.String("op", op), zap.String("id", rapport.ID))
	return rapport, nil
}
