package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeDownloader(); err != nil {
		return err
	}
	c.normalizeTranscriber()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.AudioDir) == "" {
		c.Paths.AudioDir = defaultAudioDir
	}
	if c.Paths.AudioDir, err = expandPath(c.Paths.AudioDir); err != nil {
		return fmt.Errorf("paths.audio_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.TranscriptDir) == "" {
		c.Paths.TranscriptDir = defaultTranscriptDir
	}
	if c.Paths.TranscriptDir, err = expandPath(c.Paths.TranscriptDir); err != nil {
		return fmt.Errorf("paths.transcript_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDownloader() error {
	var err error
	c.Downloader.BinaryPath = strings.TrimSpace(c.Downloader.BinaryPath)
	if c.Downloader.BinaryPath != "" {
		if c.Downloader.BinaryPath, err = expandPath(c.Downloader.BinaryPath); err != nil {
			return fmt.Errorf("downloader.binary_path: %w", err)
		}
	}
	c.Downloader.CookiesFile = strings.TrimSpace(c.Downloader.CookiesFile)
	if c.Downloader.CookiesFile != "" {
		if c.Downloader.CookiesFile, err = expandPath(c.Downloader.CookiesFile); err != nil {
			return fmt.Errorf("downloader.cookies_file: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeTranscriber() {
	c.Transcriber.Model = strings.TrimSpace(c.Transcriber.Model)
	if c.Transcriber.Model == "" {
		c.Transcriber.Model = defaultTranscriberModel
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
