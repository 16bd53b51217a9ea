package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateSync(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAudio() error {
	if err := ensurePositiveMap(map[string]int{
		"audio.sample_rate":           c.Audio.SampleRate,
		"audio.hop_length":            c.Audio.HopLength,
		"audio.fft_size":              c.Audio.FFTSize,
		"audio.mel_bands":             c.Audio.MelBands,
		"audio.coefficients":          c.Audio.Coefficients,
		"audio.max_transcode_seconds": c.Audio.MaxTranscodeSeconds,
	}); err != nil {
		return err
	}
	if c.Audio.HopLength > c.Audio.FFTSize {
		return errors.New("audio.hop_length must not exceed audio.fft_size")
	}
	if c.Audio.Coefficients > c.Audio.MelBands {
		return errors.New("audio.coefficients must not exceed audio.mel_bands")
	}
	return nil
}

func (c *Config) validateSync() error {
	if c.Sync.MarginSeconds <= 0 {
		return errors.New("sync.margin_seconds must be positive")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
