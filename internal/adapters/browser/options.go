package browser

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/chromedp/chromedp"
	"go.trai.ch/dock/internal/core/domain"
)

// flags returns the Chrome switches layered over chromedp's defaults.
// The automation switches are turned off so sites treat the window like a
// normal browser.
func flags(headless bool) map[string]any {
	return map[string]any{
		"headless":                 headless,
		"hide-scrollbars":          headless,
		"mute-audio":               headless,
		"enable-automation":        false,
		"disable-blink-features":   "AutomationControlled",
		"disable-popup-blocking":   true,
		"no-default-browser-check": true,
	}
}

// allocatorOptions builds the exec allocator options for one browser run.
func allocatorOptions(cfg domain.BrowserConfig, headless bool) []chromedp.ExecAllocatorOption {
	opts := slices.Clone(chromedp.DefaultExecAllocatorOptions[:])

	f := flags(headless)
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		opts = append(opts, chromedp.Flag(name, f[name]))
	}

	if cfg.WindowWidth > 0 && cfg.WindowHeight > 0 {
		opts = append(opts, chromedp.WindowSize(cfg.WindowWidth, cfg.WindowHeight))
	}
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}
	if cfg.UserDataDir != "" {
		opts = append(opts, chromedp.UserDataDir(cfg.UserDataDir))
	}
	return opts
}

// jsString renders s as a JavaScript string literal.
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// textPresentJS is true once the page body contains text.
func textPresentJS(text string) string {
	return fmt.Sprintf(`!!document.body && document.body.innerText.includes(%s)`, jsString(text))
}

// enabledJS is true once the element matching selector exists and is not disabled.
func enabledJS(selector string) string {
	return fmt.Sprintf(`(() => { const el = document.querySelector(%s); return !!el && !el.disabled; })()`, jsString(selector))
}

// urlContainsJS is true once the current URL contains fragment.
func urlContainsJS(fragment string) string {
	return fmt.Sprintf(`window.location.href.includes(%s)`, jsString(fragment))
}

// innerTextJS returns the trimmed text of the element matching selector, or "".
func innerTextJS(selector string) string {
	return fmt.Sprintf(`(() => { const el = document.querySelector(%s); return el ? el.innerText.trim() : ""; })()`, jsString(selector))
}
