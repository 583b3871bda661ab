package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr          string         `yaml:"addr"`
	DatabasePath  string         `yaml:"database_path"`
	UploadDir     string         `yaml:"upload_dir"`
	SessionSecret string         `yaml:"session_secret"`
	SessionTTL    time.Duration  `yaml:"session_ttl"`
	APITimeout    time.Duration  `yaml:"timeout"`
	Bootstrap     BootstrapAdmin `yaml:"bootstrap_admin"`
}

// BootstrapAdmin seeds the credential store on first start when the admins
// table is empty.
type BootstrapAdmin struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

func LoadConfig(path string) (*Config, error) {
	// optional .env for local development; missing file is fine
	_ = godotenv.Load()

	cfg := &Config{
		Addr:          getEnv("AMCO_ADDR", ":8080"),
		DatabasePath:  getEnv("AMCO_DATABASE_PATH", "amco.db"),
		UploadDir:     getEnv("AMCO_UPLOAD_DIR", "uploads"),
		SessionSecret: getEnv("AMCO_SESSION_SECRET", "supersecretkey"),
		SessionTTL:    12 * time.Hour,
		APITimeout:    15 * time.Second,
		Bootstrap: BootstrapAdmin{
			Username: getEnv("AMCO_ADMIN_USERNAME", "admin"),
			Password: getEnv("AMCO_ADMIN_PASSWORD", "admin"),
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
