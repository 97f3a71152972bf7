// Package config loads the tombola server's configuration: a small
// key=value text file (host, port, logging, logpath), with an optional
// .env overlay for deploy secrets such as DATABASE_URL.
package config

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/bellapacxx/tombola-server/utils/logger"
)

// ServerConfig is the process's resolved configuration.
type ServerConfig struct {
	Host       string
	Port       int
	Logging    logger.Mode
	LogPath    string
	DatabaseURL string
}

// Default returns the spec's documented defaults.
func Default() ServerConfig {
	return ServerConfig{
		Host:    "127.0.0.1",
		Port:    3000,
		Logging: logger.Console,
		LogPath: "./logs",
	}
}

// Load reads path (a key=value text file, '#'-comments and blank lines
// skipped) and overlays it onto the defaults. A missing file is not an
// error: defaults apply. DATABASE_URL, if present in the environment or a
// sibling .env file, is attached for the optional audit sink.
func Load(path string) (ServerConfig, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil {
		logger.Infof("no .env file found, reading environment variables")
	}
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Infof("no config file at %q, using defaults", path)
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()

	kv, err := parse(f)
	if err != nil {
		return cfg, err
	}

	if v, ok := kv["host"]; ok {
		cfg.Host = v
	}
	if v, ok := kv["port"]; ok {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v, ok := kv["logging"]; ok {
		switch logger.Mode(strings.ToLower(v)) {
		case logger.Console, logger.File, logger.Both:
			cfg.Logging = logger.Mode(strings.ToLower(v))
		}
	}
	if v, ok := kv["logpath"]; ok {
		cfg.LogPath = v
	}

	return cfg, nil
}

func parse(f *os.File) (map[string]string, error) {
	out := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
