package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host            string
		DebugHost       string
		ShutdownTimeout time.Duration
	}

	DirectoryConfig struct {
		AdminID         string
		AdminName       string
		AdminEmail      string
		AdminPassword   string
		StudentPassword string
		Latency         time.Duration // simulated round trip on login & register
		SessionDir      string
		SessionSlot     string
		Seed            bool
	}

	Config struct {
		Env             string // DEV (local; default), TEST, QA, PROD
		Build           string
		Debug           bool
		TestMode        bool
		AppName         string
		WorkDir         string
		FrontendBaseURL string
		RollbarToken    string
		SendgridApiKey  string
		Server          ServerConfig
		Directory       DirectoryConfig

		defaultFromEmail     string
		defaultFromEmailName string
	}
)

func (c *Config) DefaultFromEmail() mail.Address {
	return mail.Address{Name: c.defaultFromEmailName, Address: c.defaultFromEmail}
}

// NewConfig reads the configuration from the environment (and the optional config/.env.<env> file).
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("build", "develop")
	v.SetDefault("appName", "Placement Portal")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("defaultFromEmailName", "Placement Cell")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("testMode", false)

	v.SetDefault("server.host", ":8000")
	v.SetDefault("server.debugHost", ":4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)

	v.SetDefault("directory.adminID", "a1")
	v.SetDefault("directory.adminName", "Admin User")
	v.SetDefault("directory.adminEmail", "admin@example.com")
	v.SetDefault("directory.adminPassword", "admin123")
	v.SetDefault("directory.studentPassword", "student123")
	v.SetDefault("directory.latency", time.Duration(0))
	v.SetDefault("directory.sessionDir", filepath.Join(os.TempDir(), "placement"))
	v.SetDefault("directory.sessionSlot", "user")
	v.SetDefault("directory.seed", true)

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("config.os.Getwd: %v", err)
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Env:             env,
		Build:           v.GetString("build"),
		Debug:           v.GetBool("debug"),
		TestMode:        v.GetBool("testMode"),
		AppName:         v.GetString("appName"),
		WorkDir:         wd,
		FrontendBaseURL: v.GetString("frontendBaseURL"),
		RollbarToken:    v.GetString("rollbarToken"),
		SendgridApiKey:  v.GetString("sendgridApiKey"),
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			DebugHost:       v.GetString("server.debugHost"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
		},
		Directory: DirectoryConfig{
			AdminID:         v.GetString("directory.adminID"),
			AdminName:       v.GetString("directory.adminName"),
			AdminEmail:      v.GetString("directory.adminEmail"),
			AdminPassword:   v.GetString("directory.adminPassword"),
			StudentPassword: v.GetString("directory.studentPassword"),
			Latency:         v.GetDuration("directory.latency"),
			SessionDir:      v.GetString("directory.sessionDir"),
			SessionSlot:     v.GetString("directory.sessionSlot"),
			Seed:            v.GetBool("directory.seed"),
		},
		defaultFromEmail:     v.GetString("defaultFromEmail"),
		defaultFromEmailName: v.GetString("defaultFromEmailName"),
	}
}

// NewTestConfig returns a Config suitable for tests: no latency, no remote services.
func NewTestConfig() *Config {
	conf := NewConfig()
	conf.Env = "TEST"
	conf.TestMode = true
	conf.Directory.Latency = 0
	conf.RollbarToken = ""
	conf.SendgridApiKey = ""
	return conf
}
