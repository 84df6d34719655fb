package segment

const (
	// AutomaticMode expects every traced call to find its parent entity on the context.
	AutomaticMode = "automatic"
	// ManualMode expects callers to attach a segment to the context explicitly.
	ManualMode = "manual"
)

// Config defines how the Recorder creates segments and resolves the active entity.
type Config struct {
	// ServiceName is the default name given to segments started without a name.
	ServiceName string `yaml:"service_name" env:"XRAY_SERVICE_NAME"`

	// ContextMode is either "automatic" or "manual". It only changes how missing
	// context is reported; resolution always reads the context.
	// Default: "automatic"
	ContextMode string `yaml:"context_mode" env:"XRAY_CONTEXT_MODE"`

	// Sampled is the sampling decision for segments that do not continue an
	// upstream trace header.
	// Default: true
	Sampled *bool `yaml:"sampled" env:"XRAY_SAMPLED"`
}

func (c Config) sampled() bool {
	if c.Sampled == nil {
		return true
	}
	return *c.Sampled
}

func (c Config) automatic() bool {
	return c.ContextMode != ManualMode
}
