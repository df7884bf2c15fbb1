package repository

import (
	"encoding/json"
	"fmt"

	"github.com/credora/creatorscore/internal/domain/model"
)

// Factor lists persist as serialized JSON text inside each platform score
// row. The codec lives at the storage boundary so the in-memory model stays
// a native ordered slice; round-trips reproduce the sequence exactly,
// including weights and descriptions.

// EncodeFactors serializes an ordered factor list for storage.
func EncodeFactors(factors []model.ScoringFactor) (string, error) {
	b, err := json.Marshal(factors)
	if err != nil {
		return "", fmt.Errorf("encode factors: %w", err)
	}
	return string(b), nil
}

// DecodeFactors restores a factor list from its stored form.
func DecodeFactors(data string) ([]model.ScoringFactor, error) {
	if data == "" {
		return nil, nil
	}
	var factors []model.ScoringFactor
	if err := json.Unmarshal([]byte(data), &factors); err != nil {
		return nil, fmt.Errorf("decode factors: %w", err)
	}
	return factors, nil
}
