// Package constants holds configuration values shared across layers.
package constants

// Deployment environments.
const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Pub/Sub providers.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Payment processor providers.
const (
	PaymentProviderStripe = "stripe"
	PaymentProviderMock   = "mock"
)

// Carrier providers.
const (
	CarrierProviderHTTP = "http"
	CarrierProviderMock = "mock"
)

// Credential cookie names.
const (
	CookieAccessToken  = "accessToken"
	CookieRefreshToken = "refreshToken"
)
