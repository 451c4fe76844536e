package eval

// Config holds the resource-governor knobs recognized by the evaluator.
// Zero/negative MaxOperations, MaxModules, MaxStringSize, MaxArraySize,
// and MaxMapSize all mean "unlimited".
type Config struct {
	MaxCallStackDepth    int
	MaxExprDepth         int // enforced by the parser, not this package; kept for host parity
	MaxFunctionExprDepth int // enforced by the parser, not this package; kept for host parity
	MaxOperations        int64
	MaxModules           int
	MaxStringSize        int64
	MaxArraySize         int64
	MaxMapSize           int64
}

// DefaultConfig returns the release-build defaults.
func DefaultConfig() Config {
	return Config{
		MaxCallStackDepth:    128,
		MaxExprDepth:         128,
		MaxFunctionExprDepth: 32,
		MaxOperations:        0,
		MaxModules:           0,
		MaxStringSize:        0,
		MaxArraySize:         0,
		MaxMapSize:           0,
	}
}

// DebugConfig returns tighter limits, for hosts that want stricter
// bounds during development.
func DebugConfig() Config {
	c := DefaultConfig()
	c.MaxCallStackDepth = 16
	c.MaxExprDepth = 32
	c.MaxFunctionExprDepth = 16
	return c
}

// Option configures a Config via the functional-options pattern.
type Option func(*Config)

func WithMaxCallStackDepth(n int) Option { return func(c *Config) { c.MaxCallStackDepth = n } }
func WithMaxOperations(n int64) Option   { return func(c *Config) { c.MaxOperations = n } }
func WithMaxModules(n int) Option        { return func(c *Config) { c.MaxModules = n } }
func WithMaxStringSize(n int64) Option   { return func(c *Config) { c.MaxStringSize = n } }
func WithMaxArraySize(n int64) Option    { return func(c *Config) { c.MaxArraySize = n } }
func WithMaxMapSize(n int64) Option      { return func(c *Config) { c.MaxMapSize = n } }

// NewConfig builds a Config starting from DefaultConfig and applying
// opts in order.
func NewConfig(opts ...Option) Config {
	c := DefaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
