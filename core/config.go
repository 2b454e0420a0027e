package core

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host            string        `mapstructure:"host"`
		Address         string        `mapstructure:"address"`
		DisableReqLogs  bool          `mapstructure:"disablereqlogs"`
		ReadTimeout     time.Duration `mapstructure:"readtimeout"`
		WriteTimeout    time.Duration `mapstructure:"writetimeout"`
		ShutdownTimeout time.Duration `mapstructure:"shutdowntimeout"`
	}

	CatalogConfig struct {
		// Path to a YAML schema catalog replacing the embedded one. Optional.
		Path string `mapstructure:"path"`
	}

	Config struct {
		Env          string        `mapstructure:"env"` // DEV (local; default), TEST, QA, PROD
		Debug        bool          `mapstructure:"debug"`
		TestMode     bool          `mapstructure:"testmode"`
		AppName      string        `mapstructure:"appname"`
		Build        string        `mapstructure:"build"`
		RollbarToken string        `mapstructure:"rollbartoken"`
		Server       ServerConfig  `mapstructure:"server"`
		Catalog      CatalogConfig `mapstructure:"catalog"`
	}
)

// NewConfig loads the configuration from defaults, an optional `config/.env.<env>` file
// and the environment. Environment keys are prefixed by the env name, e.g. DEV_SERVER_ADDRESS.
func NewConfig() (*Config, error) {
	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}

	v := viper.New()
	v.SetDefault("env", env)
	v.SetDefault("debug", env == "DEV")
	v.SetDefault("testMode", env == "TEST")
	v.SetDefault("appName", "Masomo")
	v.SetDefault("build", "dev")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.disableReqLogs", false)
	v.SetDefault("server.readTimeout", 5*time.Second)
	v.SetDefault("server.writeTimeout", 10*time.Second)
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("catalog.path", "")

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(configDir(), ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "stat %s", dotEnvPath)
	}

	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	conf := new(Config)
	if err := v.Unmarshal(conf); err != nil {
		return nil, errors.Wrap(err, "unmarshalling config")
	}
	conf.Env = env
	return conf, nil
}

func configDir() string {
	if dir := os.Getenv("CONFIG_DIR"); dir != "" {
		return dir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "config"
	}
	return filepath.Join(wd, "config")
}
