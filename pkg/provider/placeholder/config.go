package placeholder

type Config struct {
	model string

	sampleRate int

	normalizeDB float64
}

type Option func(*Config)

func WithSampleRate(rate int) Option {
	return func(c *Config) {
		c.sampleRate = rate
	}
}

func WithNormalizeDB(db float64) Option {
	return func(c *Config) {
		c.normalizeDB = db
	}
}
