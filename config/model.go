package config

import "github.com/covlens/covlens/pkg/lumber"

// Model definition for configuration

// Config is the application's configuration
type Config struct {
	Config         string
	Port           string
	PayloadAddress string `json:"payloadAddress"`
	PolicyFile     string `json:"policyFile"`
	LogFile        string
	LogConfig      lumber.LoggingConfig
	ServeAPI       bool   `json:"serve"`
	Env            string
	Verbose        bool
	Azure          Azure  `env:"AZURE"`
	LocalRunner    bool   `env:"local"`
	ReporterHost   string `env:"reporterhost"`
}

// Azure provides the baseline storage configuration.
type Azure struct {
	ContainerName      string `env:"CONTAINER_NAME"`
	StorageAccountName string `env:"STORAGE_ACCOUNT"`
	StorageAccessKey   string `env:"STORAGE_ACCESS_KEY"`
}
