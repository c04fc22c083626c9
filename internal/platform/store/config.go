package store

// Config aggregates per backend configuration
type Config struct {
	AppName string

	// Driver selects the sql backend; empty opens no sql seam
	Driver Dialect

	PG   PGConfig
	Lite LiteConfig
	CH   CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int
}

// LiteConfig configures the embedded sqlite file
type LiteConfig struct {
	Path          string
	LogSQL        bool
	SlowQueryMs   int
	BusyTimeoutMs int
}

// CHConfig configures the optional clickhouse history mirror
type CHConfig struct {
	Enabled bool
	URL     string
	LogSQL  bool

	// reported to the server as client info products
	ClientName string
	ClientTag  string
}
