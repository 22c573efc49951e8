package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/dock/internal/build"
	"go.trai.ch/dock/internal/core/domain"
	"go.trai.ch/zerr"
)

const rootMessage = "Desktop App Framework API V0.1"

type rootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

type openAppRequest struct {
	AppName string `json:"app_name"`
}

type openAppResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Action    *string   `json:"action"`
}

type loginStatusResponse struct {
	LoggedIn  bool       `json:"logged_in"`
	Username  string     `json:"username,omitempty"`
	LoginTime *time.Time `json:"login_time,omitempty"`
}

type monitorStatusResponse struct {
	Monitoring   bool             `json:"monitoring"`
	RunID        string           `json:"run_id,omitempty"`
	StartedAt    time.Time        `json:"started_at,omitzero"`
	LastResult   domain.RunResult `json:"last_result,omitempty"`
	LastError    string           `json:"last_error,omitempty"`
	LastFinished time.Time        `json:"last_finished,omitzero"`
}

type publishResponse struct {
	RunID     string    `json:"run_id"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, rootResponse{
		Message: rootMessage,
		Version: build.APIVersion,
		Status:  "healthy",
	})
}

func (s *Server) handleApps(w http.ResponseWriter, r *http.Request) {
	body, err := encode(s.svc.ListApps())
	if err != nil {
		s.fail(w, err)
		return
	}

	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(body))
	w.Header().Set("ETag", etag)
	if matchETag(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) handleOpenApp(w http.ResponseWriter, r *http.Request) {
	var req openAppRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if strings.TrimSpace(req.AppName) == "" {
		writeError(w, http.StatusUnprocessableEntity, "app_name is required")
		return
	}

	result, err := s.svc.OpenApp(r.Context(), req.AppName)
	if errors.Is(err, domain.ErrAppNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Application '%s' not found", req.AppName))
		return
	}
	if err != nil {
		s.fail(w, err)
		return
	}

	resp := openAppResponse{
		Success:   result.Success,
		Message:   result.Message,
		Timestamp: s.now(),
	}
	if result.Action != domain.ActionNone {
		action := string(result.Action)
		resp.Action = &action
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLoginStatus(w http.ResponseWriter, _ *http.Request) {
	status := s.svc.LoginStatus()
	resp := loginStatusResponse{LoggedIn: status.LoggedIn}
	if status.LoggedIn {
		resp.Username = status.Username
		resp.LoginTime = &status.LoginTime
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLogins(w http.ResponseWriter, _ *http.Request) {
	logins, err := s.svc.Logins()
	if err != nil {
		s.fail(w, err)
		return
	}
	if logins == nil {
		logins = []domain.LoginSummary{}
	}
	writeJSON(w, http.StatusOK, logins)
}

func (s *Server) handleMonitorStatus(w http.ResponseWriter, _ *http.Request) {
	status := s.svc.MonitorStatus()
	writeJSON(w, http.StatusOK, monitorStatusResponse{
		Monitoring:   status.Active,
		RunID:        status.RunID,
		StartedAt:    status.StartedAt,
		LastResult:   status.LastResult,
		LastError:    status.LastError,
		LastFinished: status.LastFinished,
	})
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	var job domain.PublishJob
	if err := decode(w, r, &job); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	runID, err := s.svc.StartPublish(r.Context(), job)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, publishResponse{
		RunID:     runID,
		Status:    "started",
		Timestamp: s.now(),
	})
}

func (s *Server) handlePublishStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.PublishStatus())
}

// fail answers with the status code the error maps to. Server errors are logged.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(zerr.Wrap(err, "request failed"))
	}
	writeError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrAppNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrVideoNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrMonitorBusy):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotLoggedIn):
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}

func matchETag(header, etag string) bool {
	if header == "" {
		return false
	}
	for candidate := range strings.SplitSeq(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return domain.Wrap(domain.ErrInvalidRequest, err)
	}
	return nil
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, zerr.Wrap(err, "failed to encode response")
	}
	return buf.Bytes(), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := encode(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = encode(errorResponse{Detail: err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
