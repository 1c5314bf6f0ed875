package repositories

import (
	"context"

	"shipfee/internal/models"
)

// BuiltinPolicyLoader serves models.DefaultPolicySpec.
type BuiltinPolicyLoader struct{}

func NewBuiltinPolicyLoader() *BuiltinPolicyLoader {
	return &BuiltinPolicyLoader{}
}

func (l *BuiltinPolicyLoader) Source() string { return "builtin" }

func (l *BuiltinPolicyLoader) Load(ctx context.Context) (models.PolicySpec, string, error) {
	spec := models.DefaultPolicySpec()
	version, err := specVersion(spec)
	if err != nil {
		return models.PolicySpec{}, "", err
	}
	return spec, version, nil
}
