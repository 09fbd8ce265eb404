// Package policymanager is used for fetching and validating the threshold
// policy file of a repository.
package policymanager

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/covlens/covlens/pkg/core"
	"github.com/covlens/covlens/pkg/errs"
	"github.com/covlens/covlens/pkg/global"
	"github.com/covlens/covlens/pkg/lumber"
)

// policyManager represents an instance of PolicyManager instance
type policyManager struct {
	logger   lumber.Logger
	validate *validator.Validate
}

// NewPolicyManager creates and returns a new PolicyManager instance
func NewPolicyManager(logger lumber.Logger) core.PolicyManager {
	return &policyManager{logger: logger, validate: validator.New()}
}

// defaultPolicy is applied when the repository carries no policy file.
func defaultPolicy() *core.ThresholdPolicy {
	return &core.ThresholdPolicy{
		MinAggregate:      0,
		MaxFileRegression: 100,
		Noise:             global.NoiseThreshold,
		Badge: core.BadgeConfig{
			OKColor:   "brightgreen",
			WarnColor: "yellow",
			FailColor: "red",
			WarnBelow: 80,
		},
	}
}

// LoadPolicy reads the policy yml at the given path. A missing file yields the
// built-in defaults; a present but malformed or out-of-range file is an error.
func (pm *policyManager) LoadPolicy(ctx context.Context, path string) (*core.ThresholdPolicy, error) {
	if path == "" {
		path = global.PolicyFileName
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		pm.logger.Debugf("no policy file at %s, using defaults", path)
		return defaultPolicy(), nil
	}

	ymlContent, err := ioutil.ReadFile(path)
	if err != nil {
		pm.logger.Errorf("Error while reading file, error %v", err)
		return nil, errs.New(fmt.Sprintf("Error while reading policy file at path: %s", path))
	}
	return pm.validateYML(ctx, ymlContent, path)
}

func (pm *policyManager) validateYML(ctx context.Context, ymlContent []byte, path string) (*core.ThresholdPolicy, error) {
	policy := defaultPolicy()
	if err := yaml.Unmarshal(ymlContent, policy); err != nil {
		pm.logger.Errorf("Error while unmarshaling policy file, error %v", err)
		return nil, errs.New(fmt.Sprintf("`%s` policy file contains invalid format. Please correct the `%s` file", path, path))
	}
	if err := pm.validate.StructCtx(ctx, policy); err != nil {
		pm.logger.Errorf("policy validation failed, error %v", err)
		return nil, errs.New(fmt.Sprintf("`%s` policy file failed validation: %v", path, err))
	}
	if policy.Badge.WarnBelow < policy.MinAggregate {
		return nil, errs.New(fmt.Sprintf("`%s` policy file invalid: badge warnBelow must not be below minAggregate", path))
	}
	return policy, nil
}
