package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/importer"
	"github.com/gokatarajesh/trivia-api/internal/importer/external"
	"github.com/gokatarajesh/trivia-api/internal/logging"
)

// Import source names accepted by RunImport.
const (
	SourceOpenTDB   = "opentdb"
	SourceTriviaAPI = "triviaapi"
)

// RunImport pulls amount questions from each named source into the store,
// going through the same service the API uses so change events still fire.
func RunImport(ctx context.Context, cfg *config.App, amount int, sourceNames []string) (importer.Stats, error) {
	logger := logging.New(cfg.Name, cfg.Env)

	sources, err := buildSources(cfg.Importer, sourceNames)
	if err != nil {
		return importer.Stats{}, err
	}

	c, err := newCore(ctx, cfg, logger)
	if err != nil {
		return importer.Stats{}, err
	}
	defer c.close(logger)

	return importer.New(c.service, sources, logger).Run(ctx, amount)
}

func buildSources(cfg config.Importer, names []string) ([]importer.Source, error) {
	client := &http.Client{Timeout: cfg.HTTPTimeout}
	sources := make([]importer.Source, 0, len(names))
	for _, name := range names {
		switch name {
		case SourceOpenTDB:
			sources = append(sources, external.NewOpenTDBClient(cfg.OpenTDBURL, client))
		case SourceTriviaAPI:
			sources = append(sources, external.NewTriviaAPIClient(cfg.TriviaAPIURL, cfg.TriviaAPIKey, client))
		default:
			return nil, fmt.Errorf("unknown question source %q", name)
		}
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no question sources selected")
	}
	return sources, nil
}
