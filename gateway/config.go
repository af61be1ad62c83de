package gateway

// Config is the static merchant configuration injected into Builder and
// Processor at construction. It is immutable after that; nothing in this
// package reads ambient state at call time.
type Config struct {
	TmnCode    string // merchant code issued by the gateway
	HashSecret string // shared secret for request/callback signing
	PayURL     string // gateway checkout base URL
	ReturnURL  string // where the gateway sends the customer's browser back
	IPNURL     string // advertised to the gateway for server-to-server notifications
	Version    string
	Command    string
	CurrCode   string
	Locale     string
}

// Defaults for the protocol fields that merchants rarely override.
const (
	DefaultVersion  = "2.1.0"
	DefaultCommand  = "pay"
	DefaultCurrCode = "VND"
	DefaultLocale   = "vn"
)

// WithDefaults returns a copy with the optional protocol fields filled in
// where they were left empty.
func (c Config) WithDefaults() Config {
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	if c.Command == "" {
		c.Command = DefaultCommand
	}
	if c.CurrCode == "" {
		c.CurrCode = DefaultCurrCode
	}
	if c.Locale == "" {
		c.Locale = DefaultLocale
	}
	return c
}
