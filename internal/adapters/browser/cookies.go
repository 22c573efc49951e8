package browser

import (
	"math"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"go.trai.ch/dock/internal/core/domain"
)

// fromNetworkCookies converts DevTools cookies to the stored shape.
// Session cookies are stored without an expiry.
func fromNetworkCookies(cookies []*network.Cookie) []domain.Cookie {
	out := make([]domain.Cookie, 0, len(cookies))
	for _, c := range cookies {
		if c == nil {
			continue
		}
		cookie := domain.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			HTTPOnly: c.HTTPOnly,
			Secure:   c.Secure,
			SameSite: string(c.SameSite),
		}
		if !c.Session && c.Expires > 0 {
			expiry := c.Expires
			cookie.Expiry = &expiry
		}
		out = append(out, cookie)
	}
	return out
}

// toCookieParams converts stored cookies for Network.setCookies.
// Cookies without a domain are bound to fallbackURL.
func toCookieParams(cookies []domain.Cookie, fallbackURL string) []*network.CookieParam {
	params := make([]*network.CookieParam, 0, len(cookies))
	for _, c := range cookies {
		p := &network.CookieParam{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Secure:   c.Secure,
			HTTPOnly: c.HTTPOnly,
			SameSite: sameSite(c.SameSite),
		}
		if c.Domain == "" {
			p.URL = fallbackURL
		}
		if c.Expiry != nil && *c.Expiry > 0 {
			expires := cdp.TimeSinceEpoch(epochToTime(*c.Expiry))
			p.Expires = &expires
		}
		params = append(params, p)
	}
	return params
}

func sameSite(v string) network.CookieSameSite {
	switch network.CookieSameSite(v) {
	case network.CookieSameSiteStrict, network.CookieSameSiteLax, network.CookieSameSiteNone:
		return network.CookieSameSite(v)
	default:
		return ""
	}
}

func epochToTime(seconds float64) time.Time {
	whole, frac := math.Modf(seconds)
	return time.Unix(int64(whole), int64(frac*float64(time.Second)))
}
