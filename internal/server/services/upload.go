package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/sportclip/highlightd/internal/common"
	"github.com/sportclip/highlightd/internal/filex"
	"github.com/sportclip/highlightd/internal/logging"
	"github.com/sportclip/highlightd/internal/server/analyzer"
	"github.com/sportclip/highlightd/internal/server/config"
	"github.com/sportclip/highlightd/internal/server/models"
	"github.com/sportclip/highlightd/internal/server/objectstore"
	"github.com/sportclip/highlightd/internal/server/repositories/repomanager"
)

const defaultSourceName = "video.mp4"

// Archive stores uploaded source videos and issues playback links.
// A nil Archive disables archival.
type Archive interface {
	Enabled() bool
	Store(ctx context.Context, key string, path string) error
	PresignGet(ctx context.Context, key string) (string, error)
}

// UploadService orchestrates one upload: resolve the account, spool the
// payload, analyze it, persist exactly one record. The spooled payload is
// released on every exit path.
type UploadService struct {
	db       *sql.DB
	repos    repomanager.RepositoryManager
	analyzer analyzer.Analyzer
	archive  Archive
	spoolDir string
	logger   logging.Logger
}

func NewUploadService(db *sql.DB, repos repomanager.RepositoryManager, a analyzer.Analyzer, archive Archive, cfg *config.Config, logger logging.Logger) *UploadService {
	return &UploadService{
		db:       db,
		repos:    repos,
		analyzer: a,
		archive:  archive,
		spoolDir: cfg.SpoolDir,
		logger:   logger.With("module", "upload"),
	}
}

// Upload runs the upload workflow for accountID and returns the created
// record. Failure modes: common.ErrorValidation (no account id),
// common.ErrorAccountNotFound, common.ErrorNoFile, and
// common.ErrorAnalysisFailed wrapping the analyzer error
// (common.ErrorMediaTooShort or common.ErrorMediaUnreadable). No record is
// ever persisted on failure.
func (s *UploadService) Upload(ctx context.Context, accountID string, fileName string, payload io.Reader) (*models.HighlightRecord, error) {

	if accountID == "" {
		return nil, fmt.Errorf("%w: no account id provided", common.ErrorValidation)
	}
	if payload == nil {
		return nil, common.ErrorNoFile
	}

	accountRepo := s.repos.Accounts(s.db)

	account, err := accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorAccountNotFound
		}
		return nil, fmt.Errorf("error resolving account: %w", err)
	}

	spooled, err := filex.Spool(payload, s.spoolDir)
	if err != nil {
		return nil, fmt.Errorf("error spooling payload: %w", err)
	}
	defer spooled.Release()

	s.logger.Debug(ctx, "payload spooled", "account", account.ID, "bytes", spooled.Size())

	analysis, err := s.analyzer.Analyze(ctx, spooled.Path())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorAnalysisFailed, err)
	}

	if fileName == "" {
		fileName = defaultSourceName
	}

	record := &models.HighlightRecord{
		ID:              uuid.NewString(),
		AccountID:       account.ID,
		Title:           "Highlights - " + fileName,
		SourceName:      fileName,
		Location:        "unknown",
		DurationSeconds: analysis.DurationSeconds,
		Intervals:       analysis.Intervals,
	}

	if s.archive != nil && s.archive.Enabled() {
		key := objectstore.RandomStorageKey(account.ID)
		if err := s.archive.Store(ctx, key, spooled.Path()); err != nil {
			// archival is best-effort; the record is still created
			s.logger.Warn(ctx, "source video archival failed", "account", account.ID, "error", err.Error())
		} else {
			record.StorageKey = key
		}
	}

	recordRepo := s.repos.Records(s.db)

	record, err = recordRepo.Append(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("error persisting record: %w", err)
	}

	s.logger.Info(ctx, "highlight record created", "account", account.ID, "record", record.ID, "intervals", len(record.Intervals))

	return record, nil
}
