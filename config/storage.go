package config

// StorageConfig contains object storage (S3-compatible) configuration for
// client document files.
type StorageConfig struct {
	Endpoint  string `env:"ENDPOINT"   envDefault:"localhost:9000"`
	AccessKey string `env:"ACCESS_KEY" envDefault:"agency"`
	SecretKey string `env:"SECRET_KEY" envDefault:"agency-secret"`
	Bucket    string `env:"BUCKET"     envDefault:"client-documents"`
	UseSSL    bool   `env:"USE_SSL"    envDefault:"false"`
}
