package repositories

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"shipfee/internal/models"

	"gopkg.in/yaml.v3"
)

// FilePolicyLoader reads a YAML policy file. The version is the sha256 of the
// file content, so replicas reading the same file agree on it.
type FilePolicyLoader struct {
	path string
}

func NewFilePolicyLoader(path string) *FilePolicyLoader {
	return &FilePolicyLoader{path: path}
}

func (l *FilePolicyLoader) Source() string { return "file:" + l.path }

func (l *FilePolicyLoader) Load(ctx context.Context) (models.PolicySpec, string, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return models.PolicySpec{}, "", err
	}

	spec, err := ParsePolicyYAML(data)
	if err != nil {
		return models.PolicySpec{}, "", fmt.Errorf("parsing %s: %w", l.path, err)
	}

	return spec, versionOf(data), nil
}

// ParsePolicyYAML decodes a policy document. Unknown keys are rejected so a
// misspelled field fails the load instead of silently pricing at zero.
func ParsePolicyYAML(data []byte) (models.PolicySpec, error) {
	var spec models.PolicySpec
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return models.PolicySpec{}, err
	}
	return spec, nil
}
