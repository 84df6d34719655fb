package awsv1

// Config configures the aws-sdk-go instrumentation.
type Config struct {
	// OmitParams drops the operation input from the recorded request attributes.
	OmitParams bool `yaml:"omit_params" env:"AWS_XRAY_OMIT_PARAMS"`
}
