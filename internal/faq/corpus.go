package faq

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Entry is a single immutable corpus record. NormalizedQuestion is the
// lowercase, whitespace-collapsed form of OriginalQuestion, precomputed in
// the export.
type Entry struct {
	OriginalQuestion   string `json:"original_question"`
	NormalizedQuestion string `json:"normalized_question"`
	Category           string `json:"category"`
	Answer             string `json:"answer"`
}

// Corpus holds the static FAQ data. Loaded once at startup and read-only
// thereafter.
type Corpus struct {
	Entries    []Entry
	Categories []string
}

type corpusExport struct {
	Index          []Entry  `json:"index"`
	Categories     []string `json:"categories"`
	TotalQuestions int      `json:"total_questions"`
}

// LoadCorpus reads the FAQ export file. The service must not start without
// a corpus, so any failure here is returned for the caller to treat as fatal.
func LoadCorpus(path string, logger *zap.Logger) (*Corpus, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus file %s: %w", path, err)
	}

	var export corpusExport
	if err := json.Unmarshal(raw, &export); err != nil {
		return nil, fmt.Errorf("parse corpus file %s: %w", path, err)
	}
	if len(export.Index) == 0 {
		return nil, fmt.Errorf("corpus file %s contains no questions", path)
	}

	for i := range export.Index {
		if export.Index[i].NormalizedQuestion == "" {
			export.Index[i].NormalizedQuestion = Normalize(export.Index[i].OriginalQuestion)
		}
	}

	logger.Info("loaded FAQ corpus",
		zap.String("path", path),
		zap.Int("questions", len(export.Index)),
		zap.Int("categories", len(export.Categories)))

	return &Corpus{Entries: export.Index, Categories: export.Categories}, nil
}
