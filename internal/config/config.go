package config

import (
	"strings"
	"time"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Supabase   SupabaseConfig   `yaml:"supabase"`
	Store      StoreConfig      `yaml:"store"`
	Auth       AuthConfig       `yaml:"auth"`
	SMTP       SMTPConfig       `yaml:"smtp"`
	Newsletter NewsletterConfig `yaml:"newsletter"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Reminder   ReminderConfig   `yaml:"reminder"`
	CORS       CORSConfig       `yaml:"cors"`
	Log        LogConfig        `yaml:"log"`
}

type ServerConfig struct {
	Host            string        `yaml:"host"             env:"HOST"                    env-default:"0.0.0.0"`
	Port            string        `yaml:"port"             env:"PORT"                    env-default:"8080"`
	GinMode         string        `yaml:"gin_mode"         env:"GIN_MODE"                env-default:"debug"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL settings. DSN wins over the discrete fields.
type DatabaseConfig struct {
	DSN      string `yaml:"dsn"       env:"DATABASE_URL"`
	Host     string `yaml:"host"      env:"DB_HOST"      env-default:"localhost"`
	Port     string `yaml:"port"      env:"DB_PORT"      env-default:"5432"`
	User     string `yaml:"user"      env:"DB_USER"      env-default:"postgres"`
	Password string `yaml:"password"  env:"DB_PASSWORD"`
	DBName   string `yaml:"name"      env:"DB_NAME"      env-default:"confhub"`
	SSLMode  string `yaml:"ssl_mode"  env:"DB_SSLMODE"   env-default:"require"`
	MaxConns int32  `yaml:"max_conns" env:"DB_MAX_CONNS" env-default:"10"`
	MinConns int32  `yaml:"min_conns" env:"DB_MIN_CONNS" env-default:"1"`
}

type SupabaseConfig struct {
	URL            string `yaml:"url"              env:"SUPABASE_URL"`
	AnonKey        string `yaml:"anon_key"         env:"SUPABASE_ANON_KEY"`
	ServiceRoleKey string `yaml:"service_role_key" env:"SUPABASE_SERVICE_ROLE_KEY"`
	Schema         string `yaml:"schema"           env:"SUPABASE_SCHEMA"           env-default:"public"`
}

// StoreConfig selects where events are read from and written to.
type StoreConfig struct {
	Backend string `yaml:"backend" env:"EVENT_STORE" env-default:"postgres"`
}

type AuthConfig struct {
	JWTSecret  string        `yaml:"jwt_secret"  env:"JWT_SECRET"`
	JWTIssuer  string        `yaml:"jwt_issuer"  env:"JWT_ISSUER"  env-default:"confhub"`
	JWTExpiry  time.Duration `yaml:"jwt_expiry"  env:"JWT_EXPIRY"  env-default:"24h"`
	CodeTTL    time.Duration `yaml:"code_ttl"    env:"AUTH_CODE_TTL"    env-default:"10m"`
	CodeLength int           `yaml:"code_length" env:"AUTH_CODE_LENGTH" env-default:"6"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"     env:"SMTP_HOST"     env-default:"smtp.gmail.com"`
	Port     string `yaml:"port"     env:"SMTP_PORT"     env-default:"587"`
	Email    string `yaml:"email"    env:"SMTP_EMAIL"`
	Password string `yaml:"password" env:"SMTP_PASSWORD"`
}

type NewsletterConfig struct {
	Endpoint   string        `yaml:"endpoint"    env:"NEWSLETTER_ENDPOINT"    env-default:"https://api.getwaitlist.com/api/v1/waiter"`
	WaitlistID string        `yaml:"waitlist_id" env:"NEWSLETTER_WAITLIST_ID" env-default:"22521"`
	Timeout    time.Duration `yaml:"timeout"     env:"NEWSLETTER_TIMEOUT"     env-default:"10s"`
}

type CatalogConfig struct {
	Timezone   string        `yaml:"timezone"    env:"DISPLAY_TIMEZONE" env-default:"UTC"`
	Path       string        `yaml:"path"        env:"CATALOG_PATH"`
	BatchSize  int           `yaml:"batch_size"  env:"SEED_BATCH_SIZE"  env-default:"5"`
	BatchPause time.Duration `yaml:"batch_pause" env:"SEED_BATCH_PAUSE" env-default:"500ms"`
}

type ReminderConfig struct {
	Enabled   bool   `yaml:"enabled"    env:"REMINDER_ENABLED"    env-default:"true"`
	Schedule  string `yaml:"schedule"   env:"REMINDER_SCHEDULE"   env-default:"0 8 * * *"`
	SendEmail bool   `yaml:"send_email" env:"REMINDER_SEND_EMAIL" env-default:"false"`
}

type CORSConfig struct {
	Origins string `yaml:"origins" env:"CORS_ORIGINS" env-default:"http://localhost:5173"`
}

type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

func (c *Config) GetDatabaseURL() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	return c.buildDatabaseURL()
}

func (c *Config) buildDatabaseURL() string {
	var sb strings.Builder

	sb.WriteString("postgres://")
	sb.WriteString(c.Database.User)
	if c.Database.Password != "" {
		sb.WriteString(":")
		sb.WriteString(c.Database.Password)
	}
	sb.WriteString("@")
	sb.WriteString(c.Database.Host)
	sb.WriteString(":")
	sb.WriteString(c.Database.Port)
	sb.WriteString("/")
	sb.WriteString(c.Database.DBName)

	if c.Database.SSLMode != "" {
		sb.WriteString("?sslmode=")
		sb.WriteString(c.Database.SSLMode)
	}

	return sb.String()
}

func (c *Config) GetCORSOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORS.Origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c *Config) UsesSupabaseStore() bool {
	return strings.EqualFold(c.Store.Backend, "supabase")
}
