package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (tokens, channel ids, DB
//   connection) and anything security sensitive
// - default: Values common across all environments (timeouts, intervals, price)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	Discord DiscordConfig
	Shop    ShopConfig
	Rates   RatesConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Tokyo"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"false"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tokyo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

// DiscordConfig identifies the guild surface the bot operates on. AdminUserID
// is the single operator identity allowed through the approval gate.
type DiscordConfig struct {
	Token            string `envconfig:"DISCORD_TOKEN" required:"true"`
	GuildID          string `envconfig:"GUILD_ID" required:"true"`
	AdminUserID      string `envconfig:"ADMIN_USER_ID" required:"true"`
	AdminChannelID   string `envconfig:"ADMIN_CHANNEL_ID" required:"true"`
	TicketCategoryID string `envconfig:"TICKET_CATEGORY_ID" default:""`
	ShopChannelName  string `envconfig:"SHOP_CHANNEL_NAME" default:"order-ticket"`
}

type ShopConfig struct {
	// 1アカウントあたりの価格（セント単位）
	UnitPriceCents int64 `envconfig:"ACCOUNT_PRICE_CENTS" default:"50"`
	MinQuantity    int   `envconfig:"MIN_QUANTITY" default:"2"`
	MaxQuantity    int   `envconfig:"MAX_QUANTITY" default:"100"`
	// Reservation hold and its background expiry. The sweep can be turned off
	// entirely, in which case holds persist until the operator acts.
	ReservationTTL time.Duration `envconfig:"RESERVATION_TTL" default:"2h"`
	SweepEnabled   bool          `envconfig:"RESERVATION_SWEEP_ENABLED" default:"true"`
	SweepInterval  time.Duration `envconfig:"RESERVATION_SWEEP_INTERVAL" default:"5m"`
}

type RatesConfig struct {
	BaseURL string        `envconfig:"RATES_BASE_URL" default:"https://api.coingecko.com"`
	Timeout time.Duration `envconfig:"RATES_TIMEOUT" default:"5s"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Tokyo",
		},
		CORS: CORSConfig{
			AllowOrigins:  []string{"http://localhost:3000"},
			AllowMethods:  []string{"GET", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Tokyo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
		Discord: DiscordConfig{
			Token:          "test-token",
			GuildID:        "100000000000000001",
			AdminUserID:    "100000000000000002",
			AdminChannelID: "100000000000000003",
		},
		Shop: ShopConfig{
			UnitPriceCents: 50,
			MinQuantity:    2,
			MaxQuantity:    100,
			ReservationTTL: 2 * time.Hour,
			SweepEnabled:   true,
			SweepInterval:  5 * time.Minute,
		},
	}
}
