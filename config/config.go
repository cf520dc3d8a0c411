// Package config loads engine configuration from the environment,
// with an optional .env file for local runs.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Engine EngineConfig
	Kafka  KafkaConfig
	Log    LogConfig
}

type ServerConfig struct {
	// ListenAddr is the TCP address for the text protocol. Empty
	// means serve a single session over stdin/stdout.
	ListenAddr string
}

type EngineConfig struct {
	WALDir           string
	WALSegmentSize   int64
	OutboxDir        string
	JournalEnabled   bool
	RetireRingSize   uint64
	EpochInterval    time.Duration
	SnapshotInterval time.Duration
}

type KafkaConfig struct {
	Brokers       []string
	FillsTopic    string
	DepthTopic    string
	DrainInterval time.Duration
}

type LogConfig struct {
	Level string
}

// Load reads configuration from the environment. A missing .env file
// is not an error.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			ListenAddr: getEnvString("MATCHBOOK_LISTEN_ADDR", ""),
		},
		Engine: EngineConfig{
			WALDir:           getEnvString("MATCHBOOK_WAL_DIR", "./data/wal"),
			WALSegmentSize:   int64(getEnvInt("MATCHBOOK_WAL_SEGMENT_SIZE", 2*1024*1024)),
			OutboxDir:        getEnvString("MATCHBOOK_OUTBOX_DIR", "./data/outbox"),
			JournalEnabled:   getEnvBool("MATCHBOOK_JOURNAL_ENABLED", true),
			RetireRingSize:   uint64(getEnvInt("MATCHBOOK_RETIRE_RING_SIZE", 1<<18)),
			EpochInterval:    getEnvDuration("MATCHBOOK_EPOCH_INTERVAL", 2*time.Second),
			SnapshotInterval: getEnvDuration("MATCHBOOK_SNAPSHOT_INTERVAL", 2*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:       getEnvList("MATCHBOOK_KAFKA_BROKERS", nil),
			FillsTopic:    getEnvString("MATCHBOOK_KAFKA_FILLS_TOPIC", "matchbook.fills"),
			DepthTopic:    getEnvString("MATCHBOOK_KAFKA_DEPTH_TOPIC", "matchbook.depth"),
			DrainInterval: getEnvDuration("MATCHBOOK_KAFKA_DRAIN_INTERVAL", 250*time.Millisecond),
		},
		Log: LogConfig{
			Level: getEnvString("MATCHBOOK_LOG_LEVEL", "info"),
		},
	}
}

// BroadcastEnabled reports whether any Kafka brokers are configured.
func (c *Config) BroadcastEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}

func getEnvString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
