package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Matching struct {
		LanguageWeight     float64 `yaml:"language_weight"`
		DistanceWeight     float64 `yaml:"distance_weight"`
		AvailabilityWeight float64 `yaml:"availability_weight"`
		MaxDistanceKM      float64 `yaml:"max_distance_km"`
		ProposalTTLHours   int     `yaml:"proposal_ttl_hours"`
	} `yaml:"matching"`

	Journey struct {
		InactivityDays   int `yaml:"inactivity_days"`
		MaturityWeeks    int `yaml:"maturity_weeks"`
		MinContactVolume int `yaml:"min_contact_volume"`
	} `yaml:"journey"`

	Organization struct {
		DistanceWeight float64 `yaml:"distance_weight"`
		CapacityWeight float64 `yaml:"capacity_weight"`
		MinCapacity    int     `yaml:"min_capacity"`
		MaxCapacity    int     `yaml:"max_capacity"`
	} `yaml:"organization"`

	Geo struct {
		PostalTablePath string `yaml:"postal_table_path"`
	} `yaml:"geo"`
}

var AppConfig *Config

// LoadConfig reads config.yaml, or falls back to environment variables when
// DATABASE_URL is set (test mode). A .env file is honored when present.
func LoadConfig() {
	var cfg Config

	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	log.Println("Loading configuration from environment (test mode)")

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 60

	applyDefaults(&cfg)
	AppConfig = &cfg
}

// applyDefaults fills the matching constants that are configuration, not data.
func applyDefaults(cfg *Config) {
	if cfg.Matching.LanguageWeight == 0 && cfg.Matching.DistanceWeight == 0 && cfg.Matching.AvailabilityWeight == 0 {
		cfg.Matching.LanguageWeight = 0.4
		cfg.Matching.DistanceWeight = 0.3
		cfg.Matching.AvailabilityWeight = 0.3
	}
	if cfg.Matching.MaxDistanceKM == 0 {
		cfg.Matching.MaxDistanceKM = 50
	}
	if cfg.Matching.ProposalTTLHours == 0 {
		cfg.Matching.ProposalTTLHours = 72
	}

	if cfg.Journey.InactivityDays == 0 {
		cfg.Journey.InactivityDays = 14
	}
	if cfg.Journey.MaturityWeeks == 0 {
		cfg.Journey.MaturityWeeks = 12
	}
	if cfg.Journey.MinContactVolume == 0 {
		cfg.Journey.MinContactVolume = 10
	}

	if cfg.Organization.DistanceWeight == 0 && cfg.Organization.CapacityWeight == 0 {
		cfg.Organization.DistanceWeight = 0.7
		cfg.Organization.CapacityWeight = 0.3
	}
	if cfg.Organization.MinCapacity == 0 {
		cfg.Organization.MinCapacity = 1
	}
	if cfg.Organization.MaxCapacity == 0 {
		cfg.Organization.MaxCapacity = 100
	}

	if cfg.Geo.PostalTablePath == "" {
		cfg.Geo.PostalTablePath = "config/postal_codes.yaml"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
