package config

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
	Local    bool   `yaml:"local"`
}

type JWTConfig struct {
	SecretKey       string `yaml:"secret_key"`
	AccessTokenTTL  string `yaml:"access_token_ttl"`
	RefreshTokenTTL string `yaml:"refresh_token_ttl"`
}

// ExemptRule — маршрут, который фильтр аутентификации пропускает без проверки
// токенов. Пустой метод означает любой метод.
type ExemptRule struct {
	Method string `yaml:"method"`
	Prefix string `yaml:"prefix"`
}

type AuthConfig struct {
	Exempt []ExemptRule `yaml:"exempt"`
}

type TTL struct {
	CacheSeconds   int `yaml:"cache_seconds"`
	PresignSeconds int `yaml:"presign_seconds"`
}
