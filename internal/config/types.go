// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package config

// Config represents the root structure of the YAML configuration file.
// This struct is used to unmarshal configuration data from Viper.
type Config struct {
	API       API       `mapstructure:"api"        mask:"struct"`
	Database  Database  `mapstructure:"database"   mask:"struct"`
	Audit     Audit     `mapstructure:"audit"`
	NATS      NATS      `mapstructure:"nats"       mask:"struct"`
	RateLimit RateLimit `mapstructure:"rate_limit" mask:"struct"`
	Telemetry Telemetry `mapstructure:"telemetry"`
	// Debug enable or disable debug option set from CLI.
	Debug bool `mapstructure:"debug"`
}

// Telemetry configuration settings.
type Telemetry struct {
	Tracing TracingConfig `mapstructure:"tracing,omitempty"`
	Metrics MetricsConfig `mapstructure:"metrics,omitempty"`
}

// MetricsConfig configuration settings for Prometheus metrics.
type MetricsConfig struct {
	// Path is the HTTP path for the Prometheus scrape endpoint.
	// Defaults to "/metrics" when empty.
	Path string `mapstructure:"path"`
}

// TracingConfig configuration settings for distributed tracing.
type TracingConfig struct {
	// Enabled enables or disables tracing.
	Enabled bool `mapstructure:"enabled"`
	// Exporter selects the trace exporter: "stdout" or "otlp".
	Exporter string `mapstructure:"exporter"`
	// OTLPEndpoint is the gRPC endpoint for the OTLP exporter (e.g., "localhost:4317").
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	// SampleRatio is the fraction of root traces kept. Zero keeps all.
	SampleRatio float64 `mapstructure:"sample_ratio" validate:"gte=0,lte=1"`
	// Environment is reported as deployment.environment on every span.
	Environment string `mapstructure:"environment"`
}

// API configuration settings.
type API struct {
	Server `mapstructure:"server" mask:"struct"`
}

// Server configuration settings.
type Server struct {
	// Port the server will bind to.
	Port int `mapstructure:"port"`
	// Security contains security-related configuration for the server.
	Security ServerSecurity `mapstructure:"security" mask:"struct"`
	// Webhooks holds the shared secrets for inbound third-party callbacks.
	Webhooks Webhooks `mapstructure:"webhooks" mask:"struct"`
}

// ServerSecurity represents security-related settings for the server.
type ServerSecurity struct {
	// CORS Cross-Origin Resource Sharing (CORS) settings for the server.
	CORS CORS `mapstructure:"cors"`
	// SigningKey is the key used for signing and verifying session tokens.
	SigningKey string `mapstructure:"signing_key" validate:"required,min=16" mask:"password"`
	// AccessTTL is the lifetime of access tokens (e.g. "168h").
	AccessTTL string `mapstructure:"access_ttl"`
	// RefreshTTL is the lifetime of refresh tokens (e.g. "720h").
	RefreshTTL string `mapstructure:"refresh_ttl"`
	// MaxFailedLogins is the number of consecutive failed logins before lockout.
	MaxFailedLogins int `mapstructure:"max_failed_logins" validate:"gte=0"`
	// LockoutDuration is how long an account stays locked (e.g. "2h").
	LockoutDuration string `mapstructure:"lockout_duration"`
	// TrustedProxies lists CIDRs whose X-Forwarded-For is believed. Empty
	// means the peer address is always the client address.
	TrustedProxies []string `mapstructure:"trusted_proxies" validate:"omitempty,dive,cidr"`
}

// Webhooks holds one shared secret per third-party source.
type Webhooks struct {
	AICallback string `mapstructure:"ai_callback" mask:"password"`
	GPSystem   string `mapstructure:"gp_system"   mask:"password"`
	Pharmacy   string `mapstructure:"pharmacy"    mask:"password"`
}

// CORS represents the CORS (Cross-Origin Resource Sharing) settings.
type CORS struct {
	// List of origins allowed to access the server (e.g., "foo").
	AllowOrigins []string `mapstructure:"allow_origins,omitempty"`
}

// Database configuration for the staff and care record store.
type Database struct {
	// DSN is the PostgreSQL connection string.
	DSN string `mapstructure:"dsn" validate:"required" mask:"password"`
	// MaxOpenConns caps the connection pool.
	MaxOpenConns int `mapstructure:"max_open_conns"`
	// MaxIdleConns caps idle pooled connections.
	MaxIdleConns int `mapstructure:"max_idle_conns"`
	// ConnMaxLifetime is e.g. "15m".
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
}

// Audit configuration for the audit recorder and its sink.
type Audit struct {
	// Sink selects where audit entries are appended: "nats" or "file".
	Sink string `mapstructure:"sink" validate:"omitempty,oneof=nats file"`
	// QueueSize is the bounded queue length; 0 writes synchronously.
	QueueSize int `mapstructure:"queue_size" validate:"gte=0"`
	// File holds settings for the append-only JSON lines sink.
	File AuditFile `mapstructure:"file"`
	// NATS holds settings for the JetStream KV sink.
	NATS NATSAudit `mapstructure:"nats"`
}

// AuditFile configuration for the file sink.
type AuditFile struct {
	// Path of the JSON lines file.
	Path string `mapstructure:"path"`
}

// NATSAudit configuration for the audit log KV bucket.
type NATSAudit struct {
	// Bucket is the KV bucket name for audit log entries.
	Bucket   string `mapstructure:"bucket"`
	TTL      string `mapstructure:"ttl"` // e.g. "720h" (30 days)
	MaxBytes int64  `mapstructure:"max_bytes"`
	Storage  string `mapstructure:"storage"` // "file" or "memory"
	Replicas int    `mapstructure:"replicas"`
}

// NATS configuration settings.
type NATS struct {
	Server NATSServer     `mapstructure:"server,omitempty" mask:"struct"`
	Client NATSConnection `mapstructure:"client,omitempty" mask:"struct"`
}

// NATSServer configuration settings for the embedded NATS server.
type NATSServer struct {
	// Host the server will bind to.
	Host string `mapstructure:"host"`
	// Port the server will bind to.
	Port int `mapstructure:"port"`
	// StoreDir the directory for JetStream file storage.
	StoreDir string `mapstructure:"store_dir"`
	// Username and Password enable user/password auth when both are set.
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password" mask:"password"`
}

// NATSConnection is a reusable NATS connection configuration block.
type NATSConnection struct {
	// Host the NATS server hostname.
	Host string `mapstructure:"host"`
	// Port the NATS server port.
	Port int `mapstructure:"port"`
	// ClientName the NATS client name for identification.
	ClientName string `mapstructure:"client_name"`
	// Username for user/password auth.
	Username string `mapstructure:"username"`
	// Password for user/password auth.
	Password string `mapstructure:"password" mask:"password"`
}

// RateLimit configuration for the authentication endpoints.
type RateLimit struct {
	// Backend is "memory" or "redis".
	Backend string `mapstructure:"backend" validate:"omitempty,oneof=memory redis"`
	// Requests allowed per Window per client IP.
	Requests int `mapstructure:"requests" validate:"gte=0"`
	// Window is e.g. "15m".
	Window string `mapstructure:"window"`
	// Redis connection settings for the redis backend.
	Redis Redis `mapstructure:"redis" mask:"struct"`
}

// Redis connection settings.
type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password" mask:"password"`
	DB       int    `mapstructure:"db"`
}
