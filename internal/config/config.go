package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config carries everything the adapter needs at construction time.
// There is no package-level client or signer anywhere; components take
// the pieces they need through their constructors.
type Config struct {
	HTTPAddr    string `envconfig:"ONDC_HTTP_ADDR" default:":8080"`
	RedisAddr   string `envconfig:"REDIS_ADDR" default:"redis:6379"`
	KafkaBroker string `envconfig:"KAFKA_BROKER" default:"kafka:9092"`

	// Network participant identity for the Beckn context envelope.
	SubscriberID  string `envconfig:"ONDC_SUBSCRIBER_ID" default:"seller-adapter.example.in"`
	SubscriberURL string `envconfig:"ONDC_SUBSCRIBER_URL" default:"https://seller-adapter.example.in/ondc/webhooks"`
	SigningKey    string `envconfig:"ONDC_SIGNING_KEY" default:"dummy_key_for_staging"`

	// RegistryURL is the ONDC registry/gateway base URL. Empty disables
	// outbound catalog pushes; sync then only records the payload.
	RegistryURL string `envconfig:"ONDC_REGISTRY_URL" default:""`

	// SettlementUPI is published in the payment settlement block at init.
	SettlementUPI string `envconfig:"ONDC_SETTLEMENT_UPI" default:"storeswift@upi"`

	Domain      string `envconfig:"ONDC_DOMAIN" default:"nic2004:52110"`
	CoreVersion string `envconfig:"ONDC_CORE_VERSION" default:"1.0.0"`

	// Platform descriptor published as bpp/descriptor in catalog payloads.
	PlatformName      string `envconfig:"PLATFORM_NAME" default:"StoreSwift India"`
	PlatformShortDesc string `envconfig:"PLATFORM_SHORT_DESC" default:"Digital commerce platform for retailers"`
	PlatformLongDesc  string `envconfig:"PLATFORM_LONG_DESC" default:"StoreSwift India enables small retailers to sell online"`
	PlatformLogoURL   string `envconfig:"PLATFORM_LOGO_URL" default:"https://storeswift.in/logo.png"`

	AuditDir string `envconfig:"AUDIT_DIR" default:"./data/audit"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
