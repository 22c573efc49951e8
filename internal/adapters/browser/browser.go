// Package browser drives Chrome through the DevTools protocol for the login
// watcher and the cookie-replay publisher.
package browser

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.trai.ch/dock/internal/core/domain"
	"go.trai.ch/dock/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Browser = (*Browser)(nil)

const fileInputSelector = `input[type=file]`

// Browser implements ports.Browser with chromedp.
type Browser struct {
	cfg     domain.BrowserConfig
	publish domain.PublishConfig
	logger  ports.Logger
}

// New creates a Browser.
func New(cfg domain.BrowserConfig, publish domain.PublishConfig, logger ports.Logger) *Browser {
	return &Browser{cfg: cfg, publish: publish, logger: logger}
}

// AwaitLogin opens a visible window on the login page and waits for the
// success selector. The login window is never headless since a person has
// to use it.
func (b *Browser) AwaitLogin(ctx context.Context, target domain.LoginTarget) (*domain.LoginRecord, error) {
	tabCtx, cancel, err := b.start(ctx, false)
	if err != nil {
		return nil, err
	}
	defer cancel()

	if err := chromedp.Run(tabCtx, chromedp.Navigate(target.URL)); err != nil {
		return nil, zerr.With(domain.Wrap(domain.ErrBrowserStartFailed, err), "url", target.URL)
	}
	b.logger.Info("waiting for login at " + target.URL)

	waitCtx, cancelWait := context.WithTimeout(tabCtx, target.Timeout)
	err = chromedp.Run(waitCtx, chromedp.WaitReady(target.SuccessSelector, chromedp.ByQuery))
	cancelWait()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, domain.Tag(domain.ErrLoginTimeout, "timeout", target.Timeout.String())
		}
		return nil, zerr.Wrap(err, "failed waiting for login")
	}

	var (
		cookies  []*network.Cookie
		current  string
		username string
	)
	err = chromedp.Run(tabCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			cookies, err = network.GetCookies().Do(ctx)
			return err
		}),
		chromedp.Location(&current),
		chromedp.Evaluate(innerTextJS(target.UsernameSelector), &username),
	)
	if err != nil {
		return nil, domain.Wrap(domain.ErrCookieCaptureFailed, err)
	}
	if username == "" {
		username = domain.UnknownUsername
	}

	record := &domain.LoginRecord{
		LoginTime: time.Now(),
		Cookies:   fromNetworkCookies(cookies),
		URL:       current,
		Platform:  target.Platform,
		Username:  username,
	}

	// Leave the window up briefly so the user sees the logged-in page.
	if target.Grace > 0 {
		select {
		case <-time.After(target.Grace):
		case <-ctx.Done():
		}
	}
	return record, nil
}

// Publish installs cookies on the creator home page, then uploads the video
// and submits it with the given title. It returns the URL reached afterwards.
func (b *Browser) Publish(ctx context.Context, job domain.PublishJob, cookies []domain.Cookie) (string, error) {
	video, err := filepath.Abs(job.VideoPath)
	if err != nil {
		return "", zerr.With(domain.Wrap(domain.ErrVideoNotFound, err), "path", job.VideoPath)
	}
	if info, err := os.Stat(video); err != nil || info.IsDir() {
		return "", domain.Tag(domain.ErrVideoNotFound, "path", video)
	}

	tabCtx, cancel, err := b.start(ctx, b.cfg.Headless)
	if err != nil {
		return "", err
	}
	defer cancel()

	runCtx, cancelRun := context.WithTimeout(tabCtx, b.publish.Timeout)
	defer cancelRun()

	var final string
	p := b.publish
	err = chromedp.Run(runCtx,
		chromedp.Navigate(p.HomeURL),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return network.SetCookies(toCookieParams(cookies, p.HomeURL)).Do(ctx)
		}),
		chromedp.Navigate(p.URL),
		chromedp.WaitReady(fileInputSelector, chromedp.ByQuery),
		chromedp.SetUploadFiles(fileInputSelector, []string{video}, chromedp.ByQuery),
		chromedp.Poll(textPresentJS(p.UploadDoneText), nil, chromedp.WithPollingTimeout(p.Timeout)),
		chromedp.WaitVisible(p.TitleSelector, chromedp.ByQuery),
		chromedp.SendKeys(p.TitleSelector, job.Title, chromedp.ByQuery),
		chromedp.Sleep(p.Settle),
		chromedp.Poll(enabledJS(p.PublishSelector), nil, chromedp.WithPollingTimeout(p.Timeout)),
		chromedp.Click(p.PublishSelector, chromedp.ByQuery),
		chromedp.Poll(urlContainsJS(p.SuccessURLFragment), nil, chromedp.WithPollingTimeout(p.Timeout)),
		chromedp.Location(&final),
		chromedp.Sleep(p.Settle),
	)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", zerr.With(domain.Wrap(domain.ErrPublishFailed, err), "video", video)
	}
	return final, nil
}

// start launches Chrome and opens a tab. The returned cancel closes both.
func (b *Browser) start(ctx context.Context, headless bool) (context.Context, context.CancelFunc, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocatorOptions(b.cfg, headless)...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	cancel := func() {
		cancelTab()
		cancelAlloc()
	}

	// Running with no actions starts the browser.
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return nil, nil, domain.Wrap(domain.ErrBrowserStartFailed, err)
	}
	return tabCtx, cancel, nil
}
