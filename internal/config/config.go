package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret string
}

// SchedulerConfig carries the tunable scheduling policy. Weather profiles
// map a site key to its winter months.
type SchedulerConfig struct {
	HoursPerTech        float64
	HeavyHoursThreshold float64
	CouplingCeilingKW   float64
	DefaultProfile      string
	WeatherProfiles     map[string][]time.Month
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Scheduler   SchedulerConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Scheduler: SchedulerConfig{
			HoursPerTech:        v.GetFloat64("SCHED_HOURS_PER_TECH"),
			HeavyHoursThreshold: v.GetFloat64("SCHED_HEAVY_HOURS_THRESHOLD"),
			CouplingCeilingKW:   v.GetFloat64("SCHED_COUPLING_CEILING_KW"),
			DefaultProfile:      v.GetString("SCHED_DEFAULT_WEATHER_PROFILE"),
			WeatherProfiles:     parseWeatherProfiles(v.GetString("SCHED_WEATHER_PROFILES")),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7093
	}
	if cfg.Scheduler.HoursPerTech == 0 {
		cfg.Scheduler.HoursPerTech = 8
	}
	if cfg.Scheduler.HeavyHoursThreshold == 0 {
		cfg.Scheduler.HeavyHoursThreshold = 6
	}
	if cfg.Scheduler.CouplingCeilingKW == 0 {
		cfg.Scheduler.CouplingCeilingKW = 500
	}
	if cfg.Scheduler.DefaultProfile == "" {
		cfg.Scheduler.DefaultProfile = "temperate"
	}
	if len(cfg.Scheduler.WeatherProfiles) == 0 {
		cfg.Scheduler.WeatherProfiles = defaultWeatherProfiles()
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if _, ok := cfg.Scheduler.WeatherProfiles[cfg.Scheduler.DefaultProfile]; !ok {
		return fmt.Errorf("SCHED_DEFAULT_WEATHER_PROFILE %q has no profile entry", cfg.Scheduler.DefaultProfile)
	}
	return nil
}

func defaultWeatherProfiles() map[string][]time.Month {
	return map[string][]time.Month{
		"temperate": {time.December, time.January, time.February},
		"cold":      {time.November, time.December, time.January, time.February, time.March},
		"none":      {},
	}
}

// parseWeatherProfiles reads "key:MON|MON,key2:" entries, e.g.
// "temperate:DEC|JAN|FEB,none:".
func parseWeatherProfiles(raw string) map[string][]time.Month {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	profiles := make(map[string][]time.Month)
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		if key == "" {
			continue
		}
		months := []time.Month{}
		for _, name := range strings.Split(parts[1], "|") {
			if m, ok := parseMonth(name); ok {
				months = append(months, m)
			}
		}
		profiles[key] = months
	}
	if len(profiles) == 0 {
		return nil
	}
	return profiles
}

func parseMonth(raw string) (time.Month, bool) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	for m := time.January; m <= time.December; m++ {
		if strings.ToUpper(m.String()[:3]) == raw {
			return m, true
		}
	}
	return 0, false
}
