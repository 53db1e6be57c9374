package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Source describes an uploaded file.
type Source struct {
	Filename  string `json:"filename"`
	Format    Format `json:"format"`
	Bytes     int    `json:"bytes"`
	Timestamp string `json:"timestamp"` // RFC3339
	Hash      string `json:"hash"`      // SHA256 hex digest of the raw upload
}

func newSource(filename string, format Format, data []byte) Source {
	return Source{
		Filename:  filename,
		Format:    format,
		Bytes:     len(data),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(data),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
