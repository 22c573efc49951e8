package httpapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dock/internal/adapters/catalog"
	"go.trai.ch/dock/internal/adapters/httpapi"
	"go.trai.ch/dock/internal/adapters/telemetry"
	"go.trai.ch/dock/internal/core/domain"
	"go.trai.ch/dock/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

type fakeService struct {
	apps       []domain.App
	openResult domain.OpenResult
	openErr    error
	opened     []string
	login      domain.LoginStatus
	logins     []domain.LoginSummary
	loginsErr  error
	monitor    domain.RunStatus
	publishID  string
	publishErr error
	published  []domain.PublishJob
	publish    domain.RunStatus
}

func (f *fakeService) ListApps() []domain.App { return f.apps }

func (f *fakeService) OpenApp(_ context.Context, name string) (domain.OpenResult, error) {
	f.opened = append(f.opened, name)
	return f.openResult, f.openErr
}

func (f *fakeService) LoginStatus() domain.LoginStatus { return f.login }

func (f *fakeService) Logins() ([]domain.LoginSummary, error) { return f.logins, f.loginsErr }

func (f *fakeService) MonitorStatus() domain.RunStatus { return f.monitor }

func (f *fakeService) StartPublish(_ context.Context, job domain.PublishJob) (string, error) {
	f.published = append(f.published, job)
	return f.publishID, f.publishErr
}

func (f *fakeService) PublishStatus() domain.RunStatus { return f.publish }

func newServer(t *testing.T, svc httpapi.Service) (*httpapi.Server, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	cfg := domain.DefaultConfig().Server
	cfg.AllowedOrigins = []string{"http://localhost:3000"}
	return httpapi.NewServer(svc, cfg, logger, telemetry.NewNoOpTracer(), httpapi.WithClock(func() time.Time {
		return fixedNow
	})), logger
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestRoot(t *testing.T) {
	srv, _ := newServer(t, &fakeService{})

	rec := do(t, srv.Handler(), http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"message":"Desktop App Framework API V0.1","version":"0.1.0","status":"healthy"}`,
		rec.Body.String())

	rec = do(t, srv.Handler(), http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApps_ETag(t *testing.T) {
	svc := &fakeService{apps: catalog.Defaults()}
	srv, _ := newServer(t, svc)

	rec := do(t, srv.Handler(), http.MethodGet, "/api/apps", "")
	require.Equal(t, http.StatusOK, rec.Code)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	var apps []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apps))
	require.Len(t, apps, 10)
	assert.Equal(t, "tiktok", apps[0]["id"])
	assert.Contains(t, rec.Body.String(), `"special_handler":"xiaohongshu_login"`)
	assert.Contains(t, rec.Body.String(), "小红书", "non-ASCII is not escaped")

	req := httptest.NewRequest(http.MethodGet, "/api/apps", nil)
	req.Header.Set("If-None-Match", etag)
	cached := httptest.NewRecorder()
	srv.Handler().ServeHTTP(cached, req)
	assert.Equal(t, http.StatusNotModified, cached.Code)
	assert.Empty(t, cached.Body.String())

	svc.apps = svc.apps[:3]
	req = httptest.NewRequest(http.MethodGet, "/api/apps", nil)
	req.Header.Set("If-None-Match", etag)
	changed := httptest.NewRecorder()
	srv.Handler().ServeHTTP(changed, req)
	assert.Equal(t, http.StatusOK, changed.Code)
	assert.NotEqual(t, etag, changed.Header().Get("ETag"))
}

func TestOpenApp(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		result     domain.OpenResult
		err        error
		wantStatus int
		wantJSON   string
	}{
		{
			name:       "opened",
			body:       `{"app_name":"TikTok"}`,
			result:     domain.OpenResult{Success: true, Message: "Successfully opened TikTok"},
			wantStatus: http.StatusOK,
			wantJSON: `{"success":true,"message":"Successfully opened TikTok",` +
				`"timestamp":"2024-03-05T14:07:09Z","action":null}`,
		},
		{
			name: "login popup",
			body: `{"app_name":"小红书"}`,
			result: domain.OpenResult{
				Success: true,
				Message: "请在弹出的窗口中登录小红书创作者中心",
				Action:  domain.ActionOpenPopup,
			},
			wantStatus: http.StatusOK,
			wantJSON: `{"success":true,"message":"请在弹出的窗口中登录小红书创作者中心",` +
				`"timestamp":"2024-03-05T14:07:09Z","action":"open_popup"}`,
		},
		{
			name:       "not found",
			body:       `{"app_name":"Nope"}`,
			err:        domain.Tag(domain.ErrAppNotFound, "app", "Nope"),
			wantStatus: http.StatusNotFound,
			wantJSON:   `{"detail":"Application 'Nope' not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{openResult: tt.result, openErr: tt.err}
			srv, _ := newServer(t, svc)

			rec := do(t, srv.Handler(), http.MethodPost, "/api/open-app", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantJSON, rec.Body.String())
			assert.Len(t, svc.opened, 1)
		})
	}
}

func TestOpenApp_BadRequest(t *testing.T) {
	svc := &fakeService{}
	srv, _ := newServer(t, svc)

	for _, body := range []string{`{"app_name":`, `{}`, `{"app_name":"  "}`} {
		rec := do(t, srv.Handler(), http.MethodPost, "/api/open-app", body)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, body)
		assert.NotEmpty(t, decodeBody(t, rec)["detail"])
	}
	assert.Empty(t, svc.opened)

	rec := do(t, srv.Handler(), http.MethodGet, "/api/open-app", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestLoginStatus(t *testing.T) {
	srv, _ := newServer(t, &fakeService{})
	rec := do(t, srv.Handler(), http.MethodGet, "/api/login-status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"logged_in":false}`, rec.Body.String())

	srv, _ = newServer(t, &fakeService{login: domain.LoginStatus{
		LoggedIn:  true,
		Username:  "小红薯",
		LoginTime: fixedNow,
	}})
	rec = do(t, srv.Handler(), http.MethodGet, "/api/login-status", "")
	assert.JSONEq(t,
		`{"logged_in":true,"username":"小红薯","login_time":"2024-03-05T14:07:09Z"}`,
		rec.Body.String())
}

func TestLogins(t *testing.T) {
	srv, _ := newServer(t, &fakeService{})
	rec := do(t, srv.Handler(), http.MethodGet, "/api/logins", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	srv, logger := newServer(t, &fakeService{loginsErr: errors.New("permission denied")})
	logger.EXPECT().Error(gomock.Any())
	rec = do(t, srv.Handler(), http.MethodGet, "/api/logins", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "permission denied", decodeBody(t, rec)["detail"])
}

func TestMonitorStatus_BothPaths(t *testing.T) {
	svc := &fakeService{monitor: domain.RunStatus{Active: true, RunID: "run-1", StartedAt: fixedNow}}
	srv, _ := newServer(t, svc)

	for _, path := range []string{"/api/selenium-status", "/api/monitor-status"} {
		rec := do(t, srv.Handler(), http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.JSONEq(t,
			`{"monitoring":true,"run_id":"run-1","started_at":"2024-03-05T14:07:09Z"}`,
			rec.Body.String(), path)
	}

	svc.monitor = domain.RunStatus{}
	rec := do(t, srv.Handler(), http.MethodGet, "/api/selenium-status", "")
	assert.JSONEq(t, `{"monitoring":false}`, rec.Body.String())
}

func TestPublish(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "started", body: `{"video_path":"a.mp4","title":"t"}`, wantStatus: http.StatusAccepted},
		{name: "busy", body: `{"video_path":"a.mp4","title":"t"}`, err: domain.ErrMonitorBusy, wantStatus: http.StatusConflict},
		{name: "missing field", body: `{"title":"t"}`, err: domain.Tag(domain.ErrInvalidRequest, "field", "video_path"), wantStatus: http.StatusUnprocessableEntity},
		{name: "no login", body: `{"video_path":"a.mp4","title":"t"}`, err: domain.ErrNotLoggedIn, wantStatus: http.StatusPreconditionFailed},
		{name: "no video", body: `{"video_path":"a.mp4","title":"t"}`, err: domain.Tag(domain.ErrVideoNotFound, "path", "a.mp4"), wantStatus: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{publishID: "run-7", publishErr: tt.err}
			srv, _ := newServer(t, svc)

			rec := do(t, srv.Handler(), http.MethodPost, "/api/publish", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			require.Len(t, svc.published, 1)
			if tt.err == nil {
				assert.JSONEq(t,
					`{"run_id":"run-7","status":"started","timestamp":"2024-03-05T14:07:09Z"}`,
					rec.Body.String())
			} else {
				assert.Equal(t, tt.err.Error(), decodeBody(t, rec)["detail"])
			}
		})
	}

	srv, _ := newServer(t, &fakeService{})
	rec := do(t, srv.Handler(), http.MethodPost, "/api/publish", `not json`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPublishStatus(t *testing.T) {
	svc := &fakeService{publish: domain.RunStatus{
		LastResult:   domain.RunResultSucceeded,
		LastFinished: fixedNow,
		LastURL:      "https://creator.xiaohongshu.com/publish/success",
	}}
	srv, _ := newServer(t, svc)

	rec := do(t, srv.Handler(), http.MethodGet, "/api/publish-status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"active": false,
		"last_result": "succeeded",
		"last_finished": "2024-03-05T14:07:09Z",
		"last_url": "https://creator.xiaohongshu.com/publish/success"
	}`, rec.Body.String())
}

func TestCORS(t *testing.T) {
	srv, _ := newServer(t, &fakeService{})

	req := httptest.NewRequest(http.MethodOptions, "/api/open-app", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServe_GracefulShutdown(t *testing.T) {
	srv, logger := newServer(t, &fakeService{})
	logger.EXPECT().Info(gomock.Any()).AnyTimes()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, lis)
	}()

	resp, err := http.Get("http://" + lis.Addr().String() + "/")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
