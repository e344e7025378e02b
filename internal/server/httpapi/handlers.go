package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sportclip/highlightd/internal/common"
	"github.com/sportclip/highlightd/internal/server/models"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := s.accounts.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			writeError(w, http.StatusBadRequest, "username and password are required")
		case errors.Is(err, common.ErrorAlreadyExists):
			writeError(w, http.StatusConflict, "username already exists")
		default:
			s.logger.Error(r.Context(), "registration failed", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	s.logger.Info(r.Context(), "account registered", "account", account.ID)
	writeJSON(w, http.StatusCreated, map[string]string{"accountId": account.ID})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	accountID, pair, err := s.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			writeError(w, http.StatusBadRequest, "username and password are required")
		case errors.Is(err, common.ErrorUnauthorized):
			writeError(w, http.StatusUnauthorized, "incorrect username or password")
		default:
			s.logger.Error(r.Context(), "login failed", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"accountId":    accountID,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {

	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "refresh token is required")
		return
	}

	pair, err := s.accounts.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, common.ErrRefreshTokenExpired) {
			writeError(w, http.StatusUnauthorized, "refresh token expired")
			return
		}
		s.logger.Error(r.Context(), "token refresh failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

// requestAccountID resolves the target account: an explicit field wins,
// otherwise the bearer token's account is used.
func requestAccountID(r *http.Request, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return accountFromContext(r.Context())
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {

	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	accountID := requestAccountID(r, r.FormValue("accountId"))
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "no account id provided")
		return
	}

	file, header, err := r.FormFile("video")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no video file provided")
		return
	}
	defer file.Close()

	record, err := s.upload.Upload(r.Context(), accountID, header.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAccountNotFound):
			writeError(w, http.StatusBadRequest, "unknown account id")
		case errors.Is(err, common.ErrorValidation), errors.Is(err, common.ErrorNoFile):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, common.ErrorMediaTooShort):
			writeError(w, http.StatusBadRequest, "video too short to generate highlights")
		default:
			s.logger.Error(r.Context(), "upload failed", "account", accountID, "error", err.Error())
			writeError(w, http.StatusInternalServerError, "failed to process video")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"highlights": record.Intervals,
		"record":     record,
	})
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {

	accountID := requestAccountID(r, r.URL.Query().Get("accountId"))
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "no account id provided")
		return
	}

	result, err := s.query.ListRecords(r.Context(), accountID)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAccountNotFound):
			writeError(w, http.StatusNotFound, "account not found")
		case errors.Is(err, common.ErrorValidation):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.logger.Error(r.Context(), "listing records failed", "account", accountID, "error", err.Error())
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string][]*models.HighlightRecord{"records": result})
}
