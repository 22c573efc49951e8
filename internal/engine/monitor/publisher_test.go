package monitor_test

import (
	"context"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dock/internal/adapters/telemetry"
	"go.trai.ch/dock/internal/core/domain"
	"go.trai.ch/dock/internal/core/ports/mocks"
	"go.trai.ch/dock/internal/engine/monitor"
	"go.uber.org/mock/gomock"
)

type publishFixture struct {
	browser   *mocks.MockBrowser
	store     *mocks.MockSessionStore
	logger    *mocks.MockLogger
	publisher *monitor.Publisher
}

func newPublishFixture(t *testing.T) *publishFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &publishFixture{
		browser: mocks.NewMockBrowser(ctrl),
		store:   mocks.NewMockSessionStore(ctrl),
		logger:  mocks.NewMockLogger(ctrl),
	}
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.publisher = monitor.NewPublisher(f.browser, f.store, f.logger, telemetry.NewNoOpTracer())
	return f
}

func TestPublisher_Publish(t *testing.T) {
	f := newPublishFixture(t)
	job := domain.PublishJob{VideoPath: "/videos/a.mp4", Title: "周末vlog"}

	f.store.EXPECT().Latest().Return(loggedIn(), nil)
	f.browser.EXPECT().Publish(gomock.Any(), job, loggedIn().Cookies).
		Return("https://creator.xiaohongshu.com/publish/success", nil)

	url, err := f.publisher.Publish(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, "https://creator.xiaohongshu.com/publish/success", url)

	status := f.publisher.Status()
	assert.False(t, status.Active)
	assert.Equal(t, domain.RunResultSucceeded, status.LastResult)
	assert.Equal(t, url, status.LastURL)
}

func TestPublisher_RejectsBeforeStarting(t *testing.T) {
	tests := []struct {
		name    string
		job     domain.PublishJob
		latest  *domain.LoginRecord
		wantErr error
	}{
		{
			name:    "missing video",
			job:     domain.PublishJob{Title: "t"},
			wantErr: domain.ErrInvalidRequest,
		},
		{
			name:    "blank title",
			job:     domain.PublishJob{VideoPath: "a.mp4", Title: "  "},
			wantErr: domain.ErrInvalidRequest,
		},
		{
			name:    "no saved login",
			job:     domain.PublishJob{VideoPath: "a.mp4", Title: "t"},
			wantErr: domain.ErrNotLoggedIn,
		},
		{
			name:    "login without cookies",
			job:     domain.PublishJob{VideoPath: "a.mp4", Title: "t"},
			latest:  &domain.LoginRecord{Username: "x"},
			wantErr: domain.ErrNotLoggedIn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPublishFixture(t)
			f.store.EXPECT().Latest().Return(tt.latest, nil).MaxTimes(1)

			_, err := f.publisher.StartPublish(context.Background(), tt.job)
			require.ErrorIs(t, err, tt.wantErr)
			assert.False(t, f.publisher.Status().Active)
			assert.Empty(t, f.publisher.Status().RunID)
		})
	}
}

func TestPublisher_StartPublishBusy(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newPublishFixture(t)
		job := domain.PublishJob{VideoPath: "a.mp4", Title: "t"}
		release := make(chan struct{})

		f.store.EXPECT().Latest().Return(loggedIn(), nil).Times(2)
		f.browser.EXPECT().Publish(gomock.Any(), job, gomock.Any()).
			DoAndReturn(func(context.Context, domain.PublishJob, []domain.Cookie) (string, error) {
				<-release
				return "https://creator.xiaohongshu.com/publish/success", nil
			})

		runID, err := f.publisher.StartPublish(context.Background(), job)
		require.NoError(t, err)
		synctest.Wait()
		assert.Equal(t, runID, f.publisher.Status().RunID)

		_, err = f.publisher.StartPublish(context.Background(), job)
		require.ErrorIs(t, err, domain.ErrMonitorBusy)

		close(release)
		synctest.Wait()
		assert.Equal(t, domain.RunResultSucceeded, f.publisher.Status().LastResult)
		f.publisher.Close()
	})
}

func TestPublisher_FailureIsRecorded(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newPublishFixture(t)
		job := domain.PublishJob{VideoPath: "a.mp4", Title: "t"}

		f.store.EXPECT().Latest().Return(loggedIn(), nil)
		f.browser.EXPECT().Publish(gomock.Any(), job, gomock.Any()).
			Return("", domain.Tag(domain.ErrVideoNotFound, "path", "a.mp4"))
		f.logger.EXPECT().Error(gomock.Any())

		_, err := f.publisher.StartPublish(context.Background(), job)
		require.NoError(t, err)
		synctest.Wait()

		status := f.publisher.Status()
		assert.Equal(t, domain.RunResultFailed, status.LastResult)
		assert.Equal(t, domain.ErrVideoNotFound.Error(), status.LastError)
	})
}
