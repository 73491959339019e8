package service

import (
	"strings"

	pgvector "github.com/pgvector/pgvector-go"
)

// generateEmbedding produces a cheap deterministic 3-dim vector for meal
// text similarity: normalized length, vowel ratio, consonant ratio. Good
// enough for "meals like this one" ordering without an embedding API call.
func generateEmbedding(text string) pgvector.Vector {
	normalized := strings.ToLower(strings.TrimSpace(text))

	var vowels, consonants int
	for _, r := range normalized {
		switch r {
		case 'a', 'e', 'i', 'o', 'u':
			vowels++
		default:
			if r >= 'a' && r <= 'z' {
				consonants++
			}
		}
	}

	length := float32(len(normalized))
	if length == 0 {
		return pgvector.NewVector([]float32{0, 0, 0})
	}

	return pgvector.NewVector([]float32{
		length / 1000.0,
		float32(vowels) / length,
		float32(consonants) / length,
	})
}
