package domain

import "time"

// Cookie is a browser cookie in the WebDriver JSON shape, so captured
// sessions stay interchangeable with other automation tooling.
type Cookie struct {
	Name     string   `json:"name"`
	Value    string   `json:"value"`
	Domain   string   `json:"domain,omitempty"`
	Path     string   `json:"path,omitempty"`
	Expiry   *float64 `json:"expiry,omitempty"`
	HTTPOnly bool     `json:"httpOnly"`
	Secure   bool     `json:"secure"`
	SameSite string   `json:"sameSite,omitempty"`
}

// UnknownUsername is recorded when the logged-in page does not expose a username.
const UnknownUsername = "Unknown"

// LoginRecord is the session captured after a successful login.
type LoginRecord struct {
	LoginTime time.Time `json:"login_time"`
	Cookies   []Cookie  `json:"cookies"`
	URL       string    `json:"url"`
	Platform  string    `json:"platform"`
	Username  string    `json:"username"`
}

// LoginSummary is the listing form of a saved login snapshot.
type LoginSummary struct {
	File      string    `json:"file"`
	LoginTime time.Time `json:"login_time"`
	Username  string    `json:"username"`
	Platform  string    `json:"platform"`
	Cookies   int       `json:"cookies"`
}

// LoginTarget describes the page to watch and how to recognise a completed login.
type LoginTarget struct {
	URL              string
	Platform         string
	SuccessSelector  string
	UsernameSelector string
	Timeout          time.Duration
	// Grace keeps the browser open after capture so the user sees the result.
	Grace time.Duration
}

// PublishJob is a single video upload to the creator center.
type PublishJob struct {
	VideoPath string `json:"video_path"`
	Title     string `json:"title"`
}

// LoginStatus reports whether a saved login exists.
type LoginStatus struct {
	LoggedIn  bool
	Username  string
	LoginTime time.Time
}
