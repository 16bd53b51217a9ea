package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeSync(); err != nil {
		return err
	}
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.HistoryDB) == "" {
		c.Paths.HistoryDB = defaultHistoryDB
	}
	if c.Paths.HistoryDB, err = expandPath(c.Paths.HistoryDB); err != nil {
		return fmt.Errorf("paths.history_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeSync() error {
	var err error
	c.Sync.ModelPath = strings.TrimSpace(c.Sync.ModelPath)
	if c.Sync.ModelPath == "" {
		if value, ok := os.LookupEnv("SUBLIGN_MODEL"); ok {
			c.Sync.ModelPath = strings.TrimSpace(value)
		}
	}
	if c.Sync.ModelPath != "" {
		if c.Sync.ModelPath, err = expandPath(c.Sync.ModelPath); err != nil {
			return fmt.Errorf("sync.model_path: %w", err)
		}
	}
	c.Sync.ONNXRuntimeLibrary = strings.TrimSpace(c.Sync.ONNXRuntimeLibrary)
	if c.Sync.ONNXRuntimeLibrary == "" {
		if value, ok := os.LookupEnv("ONNXRUNTIME_SHARED_LIBRARY_PATH"); ok {
			c.Sync.ONNXRuntimeLibrary = strings.TrimSpace(value)
		}
	}
	if c.Sync.ONNXRuntimeLibrary != "" {
		if c.Sync.ONNXRuntimeLibrary, err = expandPath(c.Sync.ONNXRuntimeLibrary); err != nil {
			return fmt.Errorf("sync.onnxruntime_library: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
