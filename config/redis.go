package config

// Redis Redis配置信息
type Redis struct {
	Address  string `json:"address" yaml:"address"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Database int    `json:"database" yaml:"database"`
}

// RateLimitConfig 登录注册接口的令牌桶限流
type RateLimitConfig struct {
	Enabled        bool `json:"enabled" yaml:"enabled"`
	Capacity       int  `json:"capacity" yaml:"capacity"`
	RefillTokens   int  `json:"refill_tokens" yaml:"refill_tokens"`
	RefillInterval int  `json:"refill_interval_ms" yaml:"refill_interval_ms"`
	TTLSeconds     int  `json:"ttl_seconds" yaml:"ttl_seconds"`
}
