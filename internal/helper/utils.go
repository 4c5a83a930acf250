package helper

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"pdf-rag/internal/parser"
)

// GenerateUUID creates a random unique UUID string
func GenerateUUID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate UUID: %w", err)
	}
	return id.String(), nil
}

// pretty print
func PrettyPrint(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Warn().Err(err).Msg("Error pretty printing")
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// LoadUploads reads files from disk as uploads named by their base name.
func LoadUploads(paths []string) ([]parser.Upload, error) {
	uploads := make([]parser.Upload, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		uploads = append(uploads, parser.Upload{Name: filepath.Base(p), Data: data})
	}
	return uploads, nil
}
