package db

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jonathan/skill-matcher/internal/types"
)

// previewLength is the number of characters of each document kept with a record
const previewLength = 100

// Analysis is a stored match between a resume and a job description
type Analysis struct {
	ID               uuid.UUID          `json:"id"`
	ResumePreview    string             `json:"resume_preview"`
	JobPreview       string             `json:"job_preview"`
	ResumeFile       string             `json:"resume_file,omitempty"`
	JobFile          string             `json:"job_file,omitempty"`
	OverallScore     float64            `json:"overall_score"`
	Result           *types.MatchResult `json:"result,omitempty"` // nil in list views
	ProcessingTimeMS int64              `json:"processing_time_ms"`
	CreatedAt        time.Time          `json:"created_at"`
}

// Statistics summarizes the stored analyses
type Statistics struct {
	Count        int     `json:"count"`
	AverageScore float64 `json:"average_score"`
	BestScore    float64 `json:"best_score"`
}

// NewAnalysis builds a record for a finished match. The ID and timestamp are
// assigned here so every backend stores the same values.
func NewAnalysis(resumeText, jobText, resumeFile, jobFile string, result *types.MatchResult, elapsed time.Duration) *Analysis {
	a := &Analysis{
		ID:               uuid.New(),
		ResumePreview:    Preview(resumeText),
		JobPreview:       Preview(jobText),
		ResumeFile:       resumeFile,
		JobFile:          jobFile,
		Result:           result,
		ProcessingTimeMS: elapsed.Milliseconds(),
		CreatedAt:        time.Now().UTC(),
	}
	if result != nil {
		a.OverallScore = result.OverallScore
	}
	return a
}

// Preview returns the first 100 characters of text, with "..." appended when truncated
func Preview(text string) string {
	if utf8.RuneCountInString(text) <= previewLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:previewLength]) + "..."
}
