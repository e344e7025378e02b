// Package services contains server-side business logic: account
// registration and login, upload orchestration, and record queries.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sportclip/highlightd/internal/common"
	"github.com/sportclip/highlightd/internal/dbx"
	"github.com/sportclip/highlightd/internal/server/auth"
	"github.com/sportclip/highlightd/internal/server/config"
	"github.com/sportclip/highlightd/internal/server/models"
	"github.com/sportclip/highlightd/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AccountService handles registration, login, and issuing/refreshing tokens.
type AccountService struct {
	db                           *sql.DB
	repos                        repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

func NewAccountService(db *sql.DB, repos repomanager.RepositoryManager, cfg *config.Config) *AccountService {
	return &AccountService{
		db:                           db,
		repos:                        repos,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Register creates an account whose id is the chosen username. The secret is
// stored only as an argon2id hash with a fresh random salt. Empty username
// or password fails with common.ErrorValidation, a taken username with
// common.ErrorAlreadyExists.
func (s *AccountService) Register(ctx context.Context, username, password string) (*models.Account, error) {

	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrorValidation)
	}

	salt := auth.NewSalt()
	account := &models.Account{
		ID:           username,
		PasswordHash: auth.HashPassword(password, salt),
		Salt:         salt,
	}

	repo := s.repos.Accounts(s.db)

	account, err := repo.Create(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	return account, nil
}

// Login authenticates username/password and returns the account id with a
// fresh token pair. An unknown username and a wrong password both fail with
// common.ErrorUnauthorized; the caller cannot tell which half was wrong.
func (s *AccountService) Login(ctx context.Context, username, password string) (string, *TokenPair, error) {

	if username == "" || password == "" {
		return "", nil, fmt.Errorf("%w: username and password are required", common.ErrorValidation)
	}

	repo := s.repos.Accounts(s.db)

	account, err := repo.GetByID(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil, common.ErrorUnauthorized
		}
		return "", nil, common.ErrorInternal
	}

	if !auth.VerifyPassword(password, account.Salt, account.PasswordHash) {
		return "", nil, common.ErrorUnauthorized
	}

	pair, err := s.generateTokenPair(ctx, account.ID)
	if err != nil {
		return "", nil, err
	}

	return account.ID, pair, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair,
// rotating the stored token.
func (s *AccountService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {

	repo := s.repos.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrRefreshTokenExpired
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}

	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var tokenPair *TokenPair

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		txRepo := s.repos.RefreshTokens(s.dbOrTx(tx))

		if err := txRepo.Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}

		tokenPair, err = s.generateTokenPairWith(ctx, txRepo, token.AccountID)
		if err != nil {
			return fmt.Errorf("error generating token pair: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return tokenPair, nil
}

// dbOrTx prefers the transactional handle when one is available.
func (s *AccountService) dbOrTx(tx dbx.DBTX) dbx.DBTX {
	if tx != nil {
		return tx
	}
	return s.db
}

func (s *AccountService) generateTokenPair(ctx context.Context, accountID string) (*TokenPair, error) {
	return s.generateTokenPairWith(ctx, s.repos.RefreshTokens(s.db), accountID)
}

func (s *AccountService) generateTokenPairWith(ctx context.Context, repo refreshTokenCreator, accountID string) (*TokenPair, error) {
	accessToken, err := auth.GenerateToken(accountID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refreshToken, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}

	if err := repo.Create(ctx, accountID, refreshToken, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

type refreshTokenCreator interface {
	Create(ctx context.Context, accountID string, token string, validity time.Duration) error
}
