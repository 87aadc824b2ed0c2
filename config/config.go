package config

import (
	"os"
	"strconv"
	"time"
)

func GetHost() string {
	value, exists := os.LookupEnv("FORENSIC_AUDIO_HOST")
	if exists {
		return value
	}
	return "0.0.0.0"
}

func GetPort() string {
	value, exists := os.LookupEnv("FORENSIC_AUDIO_PORT")
	if exists {
		return value
	}
	return "8000"
}

// directory where per-request input/output files are staged
func GetTempDir() string {
	value, exists := os.LookupEnv("FORENSIC_AUDIO_TEMP_DIR")
	if exists {
		return value
	}
	return "/tmp/audio_processing"
}

func GetConfigDir() string {
	value, exists := os.LookupEnv("FORENSIC_AUDIO_CONFIG_DIR")
	if exists {
		return value
	}
	return "config"
}

// bound on each external ffmpeg/ffprobe invocation; 0 disables the timeout
func GetProcessTimeout() time.Duration {
	value, exists := os.LookupEnv("FORENSIC_AUDIO_PROCESS_TIMEOUT")
	if !exists {
		return 10 * time.Minute
	}
	secs, err := strconv.Atoi(value)
	if err != nil || secs < 0 {
		return 10 * time.Minute
	}
	return time.Duration(secs) * time.Second
}
