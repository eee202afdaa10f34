package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Client   ClientConfig
	Cart     CartConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Observ   ObservabilityConfig
}

type ServerConfig struct {
	Port      string
	Env       string
	StaticDir string
}

// UpstreamConfig holds the services the proxy forwards to.
type UpstreamConfig struct {
	ProductAPIBase string
	OrderAPIBase   string
	Timeout        time.Duration
}

// ClientConfig holds the endpoints the cart client talks to, normally the proxy.
type ClientConfig struct {
	ProductAPIURL string
	OrderAPIURL   string
}

type CartConfig struct {
	Key     string
	Backend string
	Dir     string
	TTL     time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers       []string
	TopicOrder    string
	ConsumerGroup string
}

type ObservabilityConfig struct {
	JaegerEndpoint string
}

func Load() *Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	upstreamTimeout, _ := strconv.Atoi(getEnv("UPSTREAM_TIMEOUT_SECONDS", "10"))
	cartTTL, _ := strconv.Atoi(getEnv("CART_TTL_HOURS", "0"))

	cfg := &Config{
		Server: ServerConfig{
			Port:      getEnv("PORT", "3000"),
			Env:       getEnv("ENV", "development"),
			StaticDir: getEnv("STATIC_DIR", ""),
		},
		Upstream: UpstreamConfig{
			ProductAPIBase: getEnv("PRODUCT_API_BASE", "http://product-service:4000/api/products"),
			OrderAPIBase:   getEnv("ORDER_API_BASE", "http://order-service:4001/api/orders"),
			Timeout:        time.Duration(upstreamTimeout) * time.Second,
		},
		Client: ClientConfig{
			ProductAPIURL: getEnv("PRODUCT_API_BASE_URL", "http://localhost:3000/api/products"),
			OrderAPIURL:   getEnv("ORDER_API_BASE_URL", "http://localhost:3000/api/orders"),
		},
		Cart: CartConfig{
			Key:     getEnv("CART_KEY", "bestbuy-demo-cart"),
			Backend: getEnv("CART_STORE", "file"),
			Dir:     getEnv("CART_DIR", defaultCartDir()),
			TTL:     time.Duration(cartTTL) * time.Hour,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers:       splitList(getEnv("KAFKA_BROKERS", "")),
			TopicOrder:    getEnv("KAFKA_TOPIC_ORDER_EVENTS", "storefront-order-events"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "storefront-audit-group"),
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", ""),
		},
	}

	log.Printf("Config loaded: env=%s, port=%s", cfg.Server.Env, cfg.Server.Port)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func defaultCartDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".storefront"
	}
	return filepath.Join(home, ".storefront")
}
