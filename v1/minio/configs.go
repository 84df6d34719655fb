package minio

// Config defines the configuration of a traced MinIO client.
type Config struct {
	Connection ConnectionConfig // Connection details for the S3-compatible server
	Tracing    TracingConfig    // What is recorded per request
}

// ConnectionConfig contains MinIO server connection details.
type ConnectionConfig struct {
	Endpoint        string `yaml:"endpoint" env:"MINIO_ENDPOINT"`                   // e.g. "localhost:9000"
	AccessKeyID     string `yaml:"access_key_id" env:"MINIO_ACCESS_KEY_ID"`         // MinIO access key
	SecretAccessKey string `yaml:"secret_access_key" env:"MINIO_SECRET_ACCESS_KEY"` // MinIO secret key
	UseSSL          bool   `yaml:"use_ssl" env:"MINIO_USE_SSL"`                     // "https" when true
	Region          string `yaml:"region" env:"MINIO_REGION"`                       // e.g. "us-east-1"
}

// TracingConfig controls the attributes recorded for each request.
type TracingConfig struct {
	// Service names the subsegments. Default: "s3".
	Service string `yaml:"service" env:"MINIO_TRACING_SERVICE"`

	// OmitParams drops the bucket and key from the recorded request attributes.
	OmitParams bool `yaml:"omit_params" env:"MINIO_TRACING_OMIT_PARAMS"`
}
