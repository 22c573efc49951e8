package browser

import (
	"testing"

	"github.com/chromedp/chromedp"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/dock/internal/core/domain"
)

func TestFlags(t *testing.T) {
	visible := flags(false)
	assert.Equal(t, false, visible["headless"])
	assert.Equal(t, false, visible["enable-automation"])
	assert.Equal(t, "AutomationControlled", visible["disable-blink-features"])

	assert.Equal(t, true, flags(true)["headless"])
}

func TestAllocatorOptions(t *testing.T) {
	base := len(chromedp.DefaultExecAllocatorOptions) + len(flags(false))

	assert.Len(t, allocatorOptions(domain.BrowserConfig{}, false), base)

	full := domain.BrowserConfig{ExecPath: "/usr/bin/chromium", UserDataDir: "/tmp/profile", WindowWidth: 1400, WindowHeight: 900}
	assert.Len(t, allocatorOptions(full, false), base+3)
}

func TestScripts(t *testing.T) {
	assert.Equal(t,
		`!!document.body && document.body.innerText.includes("上传成功")`,
		textPresentJS("上传成功"))
	assert.Equal(t,
		`(() => { const el = document.querySelector("button.publishBtn"); return !!el && !el.disabled; })()`,
		enabledJS("button.publishBtn"))
	assert.Equal(t,
		`window.location.href.includes("/publish/success")`,
		urlContainsJS("/publish/success"))
	assert.Equal(t,
		`(() => { const el = document.querySelector("a[title=\"x\"]"); return el ? el.innerText.trim() : ""; })()`,
		innerTextJS(`a[title="x"]`))
}
