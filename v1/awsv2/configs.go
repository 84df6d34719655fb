package awsv2

// Config configures the aws-sdk-go-v2 instrumentation.
type Config struct {
	// OmitParams drops the operation input from the recorded request attributes.
	// Enable it when inputs carry payloads or secrets that must not be traced.
	OmitParams bool `yaml:"omit_params" env:"AWS_XRAY_OMIT_PARAMS"`
}
