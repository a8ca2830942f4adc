package config

import (
	"os"
	"strings"
	"time"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName  string
	HTTPPort     string
	PostgresDSN  string
	KafkaBrokers []string

	OrgName          string
	TiePolicy        string
	RequiredSections []string

	AuditOrphanAge     time.Duration
	WorkerPollInterval time.Duration

	EnableOutboxRelay    bool
	EnableOrphanDetector bool
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "caucus"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	var brokers []string
	for _, value := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			brokers = append(brokers, value)
		}
	}
	if len(brokers) == 0 {
		brokers = []string{"localhost:9092"}
	}

	orgName := strings.TrimSpace(os.Getenv("ORG_NAME"))
	if orgName == "" {
		orgName = "The Organization"
	}

	tiePolicy := strings.TrimSpace(strings.ToLower(os.Getenv("VETTING_TIE_POLICY")))
	if tiePolicy == "" {
		tiePolicy = "reject"
	}

	var requiredSections []string
	for _, value := range strings.Split(os.Getenv("VETTING_REQUIRED_SECTIONS"), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			requiredSections = append(requiredSections, value)
		}
	}

	return Config{
		ServiceName:  service,
		HTTPPort:     port,
		PostgresDSN:  os.Getenv("POSTGRES_DSN"),
		KafkaBrokers: brokers,

		OrgName:          orgName,
		TiePolicy:        tiePolicy,
		RequiredSections: requiredSections,

		AuditOrphanAge:     envDuration("AUDIT_ORPHAN_AGE", 30*time.Minute),
		WorkerPollInterval: envDuration("WORKER_POLL_INTERVAL", 2*time.Second),

		EnableOutboxRelay:    envBool("ENABLE_OUTBOX_RELAY", true),
		EnableOrphanDetector: envBool("ENABLE_AUDIT_ORPHAN_DETECTOR", true),
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
