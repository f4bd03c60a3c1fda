package models

// MConfig Structure
type MConfig struct {
	Name      string           `yaml:"name" env:"DASHBOARD_NAME"`
	Host      string           `yaml:"host" env:"DASHBOARD_HOST"`
	Port      int              `yaml:"port" env:"DASHBOARD_PORT"`
	LogLevel  string           `yaml:"log_level" env:"DASHBOARD_LOG_LEVEL"`
	GrpcHost  string           `yaml:"grpc_host" env:"DASHBOARD_GRPC_HOST"`
	GrpcPort  int              `yaml:"grpc_port" env:"DASHBOARD_GRPC_PORT"`
	Storage   MStorageConfig   `yaml:"storage"`
	Auth      MAuthConfig      `yaml:"auth"`
	RealTime  MRealTimeConfig  `yaml:"real_time"`
	RateLimit MRateLimitConfig `yaml:"rate_limit"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type" env:"DASHBOARD_DB_TYPE"`
	DBPath             string `yaml:"db_path" env:"DASHBOARD_DB_PATH"`
	DBConnectionString string `yaml:"db_connection_string" env:"DASHBOARD_DB_CONNECTION_STRING"`
	ConnectRetries     int    `yaml:"connect_retries" env:"DASHBOARD_DB_CONNECT_RETRIES"`
}

type MAuthConfig struct {
	JWTSecret       string `yaml:"jwt_secret" env:"DASHBOARD_JWT_SECRET"`
	Issuer          string `yaml:"issuer" env:"DASHBOARD_JWT_ISSUER"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes" env:"DASHBOARD_TOKEN_TTL_MINUTES"`
	BcryptCost      int    `yaml:"bcrypt_cost" env:"DASHBOARD_BCRYPT_COST"`
}

// MRealTimeConfig holds the broadcast timer periods. Seed 0 means time-seeded randomness.
type MRealTimeConfig struct {
	MetricsIntervalSeconds  int    `yaml:"metrics_interval_seconds" env:"DASHBOARD_METRICS_INTERVAL_SECONDS"`
	CampaignIntervalSeconds int    `yaml:"campaign_interval_seconds" env:"DASHBOARD_CAMPAIGN_INTERVAL_SECONDS"`
	AlertIntervalSeconds    int    `yaml:"alert_interval_seconds" env:"DASHBOARD_ALERT_INTERVAL_SECONDS"`
	Seed                    uint64 `yaml:"seed" env:"DASHBOARD_RANDOM_SEED"`
}

type MRateLimitConfig struct {
	LoginRPS   float64 `yaml:"login_rps" env:"DASHBOARD_LOGIN_RPS"`
	LoginBurst int     `yaml:"login_burst" env:"DASHBOARD_LOGIN_BURST"`
}
