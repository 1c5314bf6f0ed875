package repositories

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"shipfee/internal/config"
	"shipfee/internal/models"
	"shipfee/internal/services/shipping"

	"gorm.io/gorm"
)

// NewPolicyLoader returns the loader for the configured policy source. db is
// only required for the postgres source.
func NewPolicyLoader(cfg config.Config, db *gorm.DB) (shipping.PolicyLoader, error) {
	switch cfg.PolicySource {
	case config.PolicySourceBuiltin, "":
		return NewBuiltinPolicyLoader(), nil
	case config.PolicySourceFile:
		return NewFilePolicyLoader(cfg.PolicyFile), nil
	case config.PolicySourcePostgres:
		if db == nil {
			return nil, fmt.Errorf("policy source %q requires a database connection", cfg.PolicySource)
		}
		return NewDBPolicyLoader(db), nil
	default:
		return nil, fmt.Errorf("unknown policy source %q", cfg.PolicySource)
	}
}

func versionOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// specVersion hashes the canonical JSON form of spec. encoding/json sorts map
// keys, so equal specs always hash the same.
func specVersion(spec models.PolicySpec) (string, error) {
	data, err := json.Marshal(spec)
	if err != nil {
		return "", fmt.Errorf("failed to encode policy: %w", err)
	}
	return versionOf(data), nil
}
