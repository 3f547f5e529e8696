package config

import (
	"os"
	"strconv"
)

type Config struct {
	ServerPort         int    `json:"server_port"`
	MainDomain         string `json:"main_domain"`
	APIDomain          string `json:"api_domain"`
	JWTSecretKey       string `json:"jwt_secret_key"`
	JWTExpirationHours int    `json:"jwt_expiration_hours"`
	DefaultRateLimit   int    `json:"default_rate_limit"`
	GlobalRateLimit    int    `json:"global_rate_limit"`
	TrialDays          int    `json:"trial_days"`
	UsageRetentionDays int    `json:"usage_retention_days"`
}

func Load() (*Config, error) {
	serverPort, _ := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if serverPort == 0 {
		serverPort = 8000
	}

	mainDomain := os.Getenv("MAIN_DOMAIN")
	if mainDomain == "" {
		mainDomain = "echodesk.ge"
	}

	apiDomain := os.Getenv("API_DOMAIN")
	if apiDomain == "" {
		apiDomain = "api.echodesk.ge"
	}

	jwtExpirationHours, _ := strconv.Atoi(os.Getenv("JWT_EXPIRATION_HOURS"))
	if jwtExpirationHours == 0 {
		jwtExpirationHours = 24
	}

	defaultRateLimit, _ := strconv.Atoi(os.Getenv("DEFAULT_RATE_LIMIT"))
	if defaultRateLimit == 0 {
		defaultRateLimit = 1000 // 1000 requests per minute per tenant
	}

	globalRateLimit, _ := strconv.Atoi(os.Getenv("GLOBAL_RATE_LIMIT"))
	if globalRateLimit == 0 {
		globalRateLimit = 10000 // 10000 requests per minute globally per IP
	}

	trialDays, _ := strconv.Atoi(os.Getenv("TRIAL_DAYS"))
	if trialDays == 0 {
		trialDays = 14
	}

	usageRetentionDays, _ := strconv.Atoi(os.Getenv("USAGE_RETENTION_DAYS"))
	if usageRetentionDays == 0 {
		usageRetentionDays = 90
	}

	return &Config{
		ServerPort:         serverPort,
		MainDomain:         mainDomain,
		APIDomain:          apiDomain,
		JWTSecretKey:       os.Getenv("JWT_SECRET_KEY"),
		JWTExpirationHours: jwtExpirationHours,
		DefaultRateLimit:   defaultRateLimit,
		GlobalRateLimit:    globalRateLimit,
		TrialDays:          trialDays,
		UsageRetentionDays: usageRetentionDays,
	}, nil
}
