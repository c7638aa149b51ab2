package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type TelemetryConfig struct {
	LogLevel     string `yaml:"log_level"`
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	OTLPInsecure bool   `yaml:"otlp_insecure"`
}

type HTTPConfig struct {
	Bind string `yaml:"bind"`
	Port int    `yaml:"port"`
}

type BusConfig struct {
	Embedded       bool     `yaml:"embedded"`
	Port           int      `yaml:"port"`
	Servers        []string `yaml:"servers"`
	Username       string   `yaml:"username"`
	Password       string   `yaml:"password"`
	Token          string   `yaml:"token"`
	TLSInsecure    bool     `yaml:"tls_insecure"`
	ConnectTimeout int      `yaml:"connect_timeout_ms"`
}

type TTSConfig struct {
	Mode               string `yaml:"mode"` // mock, edge
	Voice              string `yaml:"voice"`
	Pitch              string `yaml:"pitch"`
	Rate               string `yaml:"rate"`
	Volume             string `yaml:"volume"`
	OutputFormat       string `yaml:"output_format"`
	Proxy              string `yaml:"proxy"` // socks5 host:port, empty for direct
	HandshakeTimeoutMS int    `yaml:"handshake_timeout_ms"`
	RequestTimeoutMS   int    `yaml:"request_timeout_ms"`
}

type Config struct {
	RuntimeName string          `yaml:"runtime_name"`
	Environment string          `yaml:"environment"`
	HTTP        HTTPConfig      `yaml:"http"`
	Telemetry   TelemetryConfig `yaml:"telemetry"`
	Bus         BusConfig       `yaml:"bus"`
	TTS         TTSConfig       `yaml:"tts"`
}

func Default() Config {
	return Config{
		RuntimeName: "edgevoice-runtime",
		Environment: "development",
		HTTP: HTTPConfig{
			Bind: "0.0.0.0",
			Port: 8080,
		},
		Telemetry: TelemetryConfig{
			LogLevel:     "info",
			OTLPEndpoint: "",
			OTLPInsecure: true,
		},
		Bus: BusConfig{
			Embedded:       true,
			Port:           4222,
			Servers:        []string{"nats://localhost:4222"},
			ConnectTimeout: 2000,
		},
		TTS: TTSConfig{
			Mode:               "edge",
			Voice:              "en-US-AriaNeural",
			Pitch:              "default",
			Rate:               "default",
			Volume:             "default",
			OutputFormat:       "audio-24khz-48kbitrate-mono-mp3",
			HandshakeTimeoutMS: 10000,
			RequestTimeoutMS:   45000,
		},
	}
}

func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return cfg, fmt.Errorf("config file not found: %w", err)
			}
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	overrideString(&cfg.RuntimeName, "EDGEVOICE_RUNTIME_NAME")
	overrideString(&cfg.Environment, "EDGEVOICE_RUNTIME_ENVIRONMENT")
	overrideString(&cfg.HTTP.Bind, "EDGEVOICE_HTTP_BIND")
	overrideInt(&cfg.HTTP.Port, "EDGEVOICE_HTTP_PORT")
	overrideString(&cfg.Telemetry.LogLevel, "EDGEVOICE_TELEMETRY_LOG_LEVEL")
	overrideString(&cfg.Telemetry.OTLPEndpoint, "EDGEVOICE_TELEMETRY_OTLP_ENDPOINT")
	overrideBool(&cfg.Telemetry.OTLPInsecure, "EDGEVOICE_TELEMETRY_OTLP_INSECURE")
	overrideBool(&cfg.Bus.Embedded, "EDGEVOICE_BUS_EMBEDDED")
	overrideInt(&cfg.Bus.Port, "EDGEVOICE_BUS_PORT")
	overrideStringSlice(&cfg.Bus.Servers, "EDGEVOICE_BUS_SERVERS")
	overrideString(&cfg.Bus.Username, "EDGEVOICE_BUS_USERNAME")
	overrideString(&cfg.Bus.Password, "EDGEVOICE_BUS_PASSWORD")
	overrideString(&cfg.Bus.Token, "EDGEVOICE_BUS_TOKEN")
	overrideBool(&cfg.Bus.TLSInsecure, "EDGEVOICE_BUS_TLS_INSECURE")
	overrideInt(&cfg.Bus.ConnectTimeout, "EDGEVOICE_BUS_CONNECT_TIMEOUT_MS")
	overrideString(&cfg.TTS.Mode, "EDGEVOICE_TTS_MODE")
	overrideString(&cfg.TTS.Voice, "EDGEVOICE_TTS_VOICE")
	overrideString(&cfg.TTS.Pitch, "EDGEVOICE_TTS_PITCH")
	overrideString(&cfg.TTS.Rate, "EDGEVOICE_TTS_RATE")
	overrideString(&cfg.TTS.Volume, "EDGEVOICE_TTS_VOLUME")
	overrideString(&cfg.TTS.OutputFormat, "EDGEVOICE_TTS_OUTPUT_FORMAT")
	overrideString(&cfg.TTS.Proxy, "EDGEVOICE_TTS_PROXY")
	overrideInt(&cfg.TTS.HandshakeTimeoutMS, "EDGEVOICE_TTS_HANDSHAKE_TIMEOUT_MS")
	overrideInt(&cfg.TTS.RequestTimeoutMS, "EDGEVOICE_TTS_REQUEST_TIMEOUT_MS")
}

func overrideString(target *string, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok && strings.TrimSpace(value) != "" {
		*target = value
	}
}

func overrideInt(target *int, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
		}
	}
}

func overrideBool(target *bool, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			*target = parsed
		}
	}
}

func overrideStringSlice(target *[]string, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		parts := strings.Split(value, ",")
		var trimmed []string
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				trimmed = append(trimmed, s)
			}
		}
		if len(trimmed) > 0 {
			*target = trimmed
		}
	}
}

func validate(cfg Config) error {
	if cfg.RuntimeName == "" {
		return errors.New("runtime_name must not be empty")
	}
	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return errors.New("http.port must be between 1 and 65535")
	}
	if cfg.Bus.Embedded {
		if cfg.Bus.Port <= 0 || cfg.Bus.Port > 65535 {
			return errors.New("bus.port must be between 1 and 65535 when embedded mode is enabled")
		}
	} else {
		if len(cfg.Bus.Servers) == 0 {
			return errors.New("bus.servers must not be empty when embedded mode is disabled")
		}
	}
	switch cfg.TTS.Mode {
	case "mock", "edge":
	default:
		return errors.New("tts.mode must be one of mock|edge")
	}
	if cfg.TTS.Voice == "" {
		return errors.New("tts.voice must not be empty")
	}
	if cfg.TTS.OutputFormat == "" {
		return errors.New("tts.output_format must not be empty")
	}
	if cfg.TTS.HandshakeTimeoutMS <= 0 {
		return errors.New("tts.handshake_timeout_ms must be positive")
	}
	if cfg.TTS.RequestTimeoutMS <= 0 {
		return errors.New("tts.request_timeout_ms must be positive")
	}
	return nil
}
