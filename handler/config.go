package handler

// Config holds the HTTP surface configuration.
type Config struct {
	// BaseURL is the public origin of the application. Post-login redirect
	// targets must live under it.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	// CookieName names the session cookie carrying the opaque token key.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"unigrow_session"`

	// SecureCookies marks the session cookie Secure. Disable only for local
	// development over plain HTTP.
	SecureCookies bool `env:"SECURE_COOKIES" envDefault:"true"`
}
