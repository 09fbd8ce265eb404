package testutils

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"runtime"

	"github.com/covlens/covlens/config"
	"github.com/covlens/covlens/pkg/core"
	"github.com/covlens/covlens/pkg/errs"
	"github.com/covlens/covlens/pkg/lumber"
)

// getCurrentWorkingDir give the file path of this file
func getCurrentWorkingDir() (string, error) {
	_, filename, _, ok := runtime.Caller(1)
	if !ok {
		return "", errs.New("runtime.Calller(1) was unable to recover information")
	}
	filepath := path.Join(path.Dir(filename), "../")
	return filepath, nil
}

// GetConfig returns a dummy Config using the json file pointed by ApplicationConfigPath
func GetConfig() (*config.Config, error) {
	cwd, err := getCurrentWorkingDir()
	if err != nil {
		return nil, err
	}
	configJSON, err := os.ReadFile(cwd + ApplicationConfigPath)
	if err != nil {
		return nil, err
	}
	var cfg *config.Config
	err = json.Unmarshal(configJSON, &cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetLogger returns a dummy lumber.Logger.
func GetLogger() (lumber.Logger, error) {
	logger, err := lumber.NewLogger(lumber.LoggingConfig{ConsoleLevel: lumber.Debug}, true, 1)
	if err != nil {
		return nil, err
	}

	return logger, nil
}

// GetPayload returns a dummy core.Payload using the json file pointed by PayloadPath.
func GetPayload() (*core.Payload, error) {
	cwd, err := getCurrentWorkingDir()
	if err != nil {
		return nil, err
	}
	payloadJSON, err := os.ReadFile(cwd + PayloadPath)
	if err != nil {
		return nil, err
	}
	var p *core.Payload
	err = json.Unmarshal(payloadJSON, &p)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetRecords returns dummy coverage records using the json file pointed by RecordsPath.
func GetRecords() ([]core.CoverageRecord, error) {
	cwd, err := getCurrentWorkingDir()
	if err != nil {
		return nil, err
	}
	recordsJSON, err := os.ReadFile(cwd + RecordsPath)
	if err != nil {
		return nil, err
	}
	var records []core.CoverageRecord
	err = json.Unmarshal(recordsJSON, &records)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func LoadFile(relativePath string) ([]byte, error) {
	cwd, err := getCurrentWorkingDir()
	if err != nil {
		return nil, err
	}
	absPath := fmt.Sprintf("%s/%s", cwd, relativePath)
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, err
	}
	return data, err
}
