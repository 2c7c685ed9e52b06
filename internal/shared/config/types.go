package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	Timezone       string   `mapstructure:"timezone"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// CacheConfig selects the backend for the shared session/stock cache record.
// "database" stores the record as a single row; "redis" stores it as a hash.
type CacheConfig struct {
	Driver string `mapstructure:"driver"`
}

// EcountConfig holds the upstream ERP credentials and tuning knobs.
// Zone is the upstream-assigned routing partition embedded into the API
// hostname (oapi{ZONE}.ecount.com). When ZoneLookup is true the zone is
// resolved through the Zone endpoint instead of taken from config.
type EcountConfig struct {
	ComCode       string `mapstructure:"com_code" json:"com_code" validate:"required"`
	UserID        string `mapstructure:"user_id" json:"user_id" validate:"required"`
	APICertKey    string `mapstructure:"api_cert_key" json:"api_cert_key" validate:"required"`
	LanType       string `mapstructure:"lan_type" json:"lan_type"`
	Zone          string `mapstructure:"zone" json:"zone"`
	ZoneLookup    bool   `mapstructure:"zone_lookup" json:"zone_lookup"`
	Sandbox       bool   `mapstructure:"sandbox" json:"sandbox"`
	WarehouseCode string `mapstructure:"warehouse_code" json:"warehouse_code"`

	SessionTTLMinutes    int `mapstructure:"session_ttl_minutes" json:"session_ttl_minutes" validate:"gte=1"`
	StockCacheTTLSeconds int `mapstructure:"stock_cache_ttl_seconds" json:"stock_cache_ttl_seconds" validate:"gte=1"`
	LoginJitterMS        int `mapstructure:"login_jitter_ms" json:"login_jitter_ms" validate:"gte=0"`
}
