package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string          `yaml:"env" env-default:"local"`
	StoragePath string          `yaml:"storage_path" env:"LIVEPOLL_STORAGE_PATH"`
	HTTP        HTTPConfig      `yaml:"http"`
	GRPC        GRPCConfig      `yaml:"grpc"`
	Engine      EngineConfig    `yaml:"engine"`
	WebSocket   WebSocketConfig `yaml:"websocket"`
}

type HTTPConfig struct {
	Port           int      `yaml:"port" env:"LIVEPOLL_HTTP_PORT" env-default:"8080"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"LIVEPOLL_ALLOWED_ORIGINS" env-separator:","`
}

type GRPCConfig struct {
	IdentityAddress string        `yaml:"identity_address" env:"LIVEPOLL_IDENTITY_ADDRESS"`
	Timeout         time.Duration `yaml:"timeout" env-default:"3s"`
}

type EngineConfig struct {
	TickInterval    time.Duration `yaml:"tick_interval" env-default:"1s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

type WebSocketConfig struct {
	SendBuffer int           `yaml:"send_buffer" env-default:"64"`
	PingPeriod time.Duration `yaml:"ping_period" env-default:"30s"`
}

// MustLoad reads the config from the -config flag or CONFIG_PATH.
func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		log.Fatal("config path is empty")
	}

	return Load(path)
}

func Load(path string) *Config {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", path)
	}

	var config Config
	err := cleanenv.ReadConfig(path, &config)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &config
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
