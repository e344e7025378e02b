package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sportclip/highlightd/internal/common"
	"github.com/sportclip/highlightd/internal/logging"
	"github.com/sportclip/highlightd/internal/server/models"
	"github.com/sportclip/highlightd/internal/server/repositories/repomanager"
)

// QueryService reads back the records written by UploadService.
type QueryService struct {
	db      *sql.DB
	repos   repomanager.RepositoryManager
	archive Archive
	logger  logging.Logger
}

func NewQueryService(db *sql.DB, repos repomanager.RepositoryManager, archive Archive, logger logging.Logger) *QueryService {
	return &QueryService{
		db:      db,
		repos:   repos,
		archive: archive,
		logger:  logger.With("module", "query"),
	}
}

// ListRecords returns accountID's records in creation order, an empty slice
// if none exist. An unknown account fails with common.ErrorAccountNotFound.
// When archival is enabled, records with an archived source carry a
// presigned playback URL.
func (s *QueryService) ListRecords(ctx context.Context, accountID string) ([]*models.HighlightRecord, error) {

	if accountID == "" {
		return nil, fmt.Errorf("%w: no account id provided", common.ErrorValidation)
	}

	accountRepo := s.repos.Accounts(s.db)

	if _, err := accountRepo.GetByID(ctx, accountID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorAccountNotFound
		}
		return nil, fmt.Errorf("error resolving account: %w", err)
	}

	recordRepo := s.repos.Records(s.db)

	result, err := recordRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error listing records: %w", err)
	}

	if s.archive != nil && s.archive.Enabled() {
		for _, rec := range result {
			if rec.StorageKey == "" {
				continue
			}
			url, err := s.archive.PresignGet(ctx, rec.StorageKey)
			if err != nil {
				// playback links are best-effort
				s.logger.Warn(ctx, "presign failed", "record", rec.ID, "error", err.Error())
				continue
			}
			rec.PlaybackURL = url
		}
	}

	return result, nil
}
