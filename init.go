package main

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/imroc/req/v3"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"googletrans-local/pkg"
)

type config struct {
	ServiceURLs []string      `mapstructure:"service_urls"`
	Proxies     []string      `mapstructure:"proxies"`
	UserAgent   string        `mapstructure:"user_agent"`
	Listen      string        `mapstructure:"listen"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Env         string        `mapstructure:"env"`
}

func loadConfig() (config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("configs")
	v.SetDefault("service_urls", []string{"translate.google.com"})
	v.SetDefault("listen", "0.0.0.0:62156")
	v.SetDefault("timeout", "10s")
	v.SetDefault("env", "production")
	v.SetEnvPrefix("GT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Defaults and env cover everything; a missing file is fine.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config{}, err
		}
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func setupLogger(env string) *zap.Logger {
	if env == "development" {
		logger, _ := zap.NewDevelopment()
		return logger
	}
	logger, _ := zap.NewProduction()
	return logger
}

// sweepHosts probes the configured hosts concurrently and keeps the
// reachable ones. When everything fails (offline start, captive
// network) the configured list is kept as-is rather than starting with
// nothing to pick from.
func sweepHosts(hosts []string, logger *zap.Logger) []string {
	client := req.C().SetTimeout(3 * time.Second)
	valid := make([]string, 0, len(hosts))
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(8)
	for _, host := range hosts {
		p.Go(func() {
			ok, err := pkg.CheckHostAvailability(client, host)
			if err != nil || !ok {
				logger.Warn("service host unreachable", zap.String("host", host), zap.Error(err))
				return
			}
			mu.Lock()
			valid = append(valid, host)
			mu.Unlock()
		})
	}
	p.Wait()

	if len(valid) == 0 {
		logger.Warn("no service host passed the probe, keeping configured list")
		return hosts
	}
	logger.Info("service hosts available", zap.Int("count", len(valid)))
	return valid
}
