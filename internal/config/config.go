package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/CristiGvl/picoSensingKit/internal/platform"
	"github.com/CristiGvl/picoSensingKit/internal/sensor"
)

const (
	BackendNative    = "native"
	BackendSynthetic = "synthetic"
)

type AppConfig struct {
	General  GeneralConfig
	Server   ServerConfig
	Platform PlatformConfig
	Sensors  SensorsConfig
	MQTT     MQTTConfig
	Recorder RecorderConfig
}

type GeneralConfig struct {
	LogLevel string
}

type ServerConfig struct {
	Bind string
	Port int
}

type PlatformConfig struct {
	Backend  string
	APILevel platform.APILevel
}

type SensorsConfig struct {
	Enabled []sensor.Kind
}

type MQTTConfig struct {
	Enabled     bool
	Broker      string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
	Codec       string
}

type RecorderConfig struct {
	Enabled bool
	Dir     string
}

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"port":      "server.port",
	"bind":      "server.bind",
	"backend":   "platform.backend",
	"log-level": "general.log_level",
}

func setDefaults(v *viper.Viper) {
	native := make([]string, 0, len(sensor.NativeKinds()))
	for _, k := range sensor.NativeKinds() {
		native = append(native, k.String())
	}

	v.SetDefault("general.log_level", "info")
	v.SetDefault("server.bind", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("platform.backend", BackendNative)
	v.SetDefault("platform.api_level", int(platform.CurrentAPILevel))
	v.SetDefault("sensors.enabled", native)
	v.SetDefault("mqtt.enabled", false)
	v.SetDefault("mqtt.client_id", "picosensingkit")
	v.SetDefault("mqtt.topic_prefix", "sensingkit")
	v.SetDefault("mqtt.codec", "json")
	v.SetDefault("recorder.enabled", false)
	v.SetDefault("recorder.dir", "./recordings")
}

// Load reads sensingkit.yaml, PICOSENSINGKIT_* environment variables and the
// given flags, in increasing order of precedence. A missing config file is
// not an error unless --config names one explicitly.
func Load(flags *pflag.FlagSet) (AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("picosensingkit")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var explicit string
	if flags != nil {
		if f := flags.Lookup("config"); f != nil {
			explicit = f.Value.String()
		}
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return AppConfig{}, errors.Wrapf(err, "binding flag --%s", name)
				}
			}
		}
	}

	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName("sensingkit")
		v.AddConfigPath(".")
		v.AddConfigPath("config")
		v.AddConfigPath("/etc/picosensingkit")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return AppConfig{}, errors.Wrap(err, "reading config file")
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (AppConfig, error) {
	cfg := AppConfig{
		General: GeneralConfig{
			LogLevel: v.GetString("general.log_level"),
		},
		Server: ServerConfig{
			Bind: v.GetString("server.bind"),
			Port: v.GetInt("server.port"),
		},
		Platform: PlatformConfig{
			Backend:  strings.ToLower(v.GetString("platform.backend")),
			APILevel: platform.APILevel(v.GetInt("platform.api_level")),
		},
		MQTT: MQTTConfig{
			Enabled:     v.GetBool("mqtt.enabled"),
			Broker:      v.GetString("mqtt.broker"),
			ClientID:    v.GetString("mqtt.client_id"),
			Username:    v.GetString("mqtt.username"),
			Password:    v.GetString("mqtt.password"),
			TopicPrefix: v.GetString("mqtt.topic_prefix"),
			Codec:       v.GetString("mqtt.codec"),
		},
		Recorder: RecorderConfig{
			Enabled: v.GetBool("recorder.enabled"),
			Dir:     v.GetString("recorder.dir"),
		},
	}

	switch cfg.Platform.Backend {
	case BackendNative, BackendSynthetic:
	default:
		return AppConfig{}, errors.Errorf("unknown platform backend %q", cfg.Platform.Backend)
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return AppConfig{}, errors.Errorf("invalid server port %d", cfg.Server.Port)
	}

	if cfg.MQTT.Enabled && cfg.MQTT.Broker == "" {
		return AppConfig{}, errors.New("mqtt.broker is required when mqtt is enabled")
	}

	for _, name := range v.GetStringSlice("sensors.enabled") {
		kind, err := sensor.ParseKind(name)
		if err != nil {
			return AppConfig{}, errors.Wrap(err, "sensors.enabled")
		}
		cfg.Sensors.Enabled = append(cfg.Sensors.Enabled, kind)
	}

	return cfg, nil
}
