package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/skill-matcher/internal/db"
	"github.com/jonathan/skill-matcher/internal/types"
)

// ExtractRequest represents the request body for /extract
type ExtractRequest struct {
	Text     string `json:"text"`
	Insights bool   `json:"insights,omitempty"`
}

// ExtractResponse represents the response for /extract
type ExtractResponse struct {
	*types.ExtractionResult
	Insights *types.SkillInsights `json:"insights,omitempty"`
}

// MatchRequest represents the request body for /match and /recommend
type MatchRequest struct {
	ResumeText string `json:"resume_text"`
	JobText    string `json:"job_text"`
	ResumeFile string `json:"resume_file,omitempty" validate:"max=255"`
	JobFile    string `json:"job_file,omitempty" validate:"max=255"`
}

// MatchResponse represents the response for /match
type MatchResponse struct {
	AnalysisID string             `json:"analysis_id,omitempty"`
	Result     *types.MatchResult `json:"result"`
}

// RecommendResponse represents the response for /recommend
type RecommendResponse struct {
	Recommendations []types.Recommendation `json:"recommendations"`
	SkillGaps       []types.SkillGap       `json:"skill_gaps"`
	LearningPath    *types.LearningPath    `json:"learning_path"`
}

// LearningPathRequest represents the request body for /learning-path
type LearningPathRequest struct {
	CurrentSkills []string `json:"current_skills" validate:"max=500,dive,max=100"`
	TargetSkills  []string `json:"target_skills" validate:"required,min=1,max=500,dive,max=100"`
}

// ListResponse represents the response for GET /analyses
type ListResponse struct {
	Analyses []db.Analysis `json:"analyses"`
	Limit    int           `json:"limit"`
	Offset   int           `json:"offset"`
}

// decode reads a JSON body into v and validates it
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return &ErrValidation{Field: "body", Message: "empty request body"}
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	if err := s.validate.Struct(v); err != nil {
		return validationError(err)
	}
	return nil
}

// handleExtract extracts skills from a single document
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := s.decode(w, r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	result, err := s.service.ExtractText(r.Context(), req.Text)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	resp := ExtractResponse{ExtractionResult: result}
	if req.Insights {
		if resp.Insights, err = s.service.Insights(r.Context(), result, req.Text); err != nil {
			s.errorResponse(w, err)
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleMatch scores a resume against a job description and records the analysis
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := s.decode(w, r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	start := time.Now()
	result, err := s.service.Match(r.Context(), req.ResumeText, req.JobText)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	resp := MatchResponse{Result: result}
	if s.store != nil {
		record := db.NewAnalysis(req.ResumeText, req.JobText, req.ResumeFile, req.JobFile, result, time.Since(start))
		// a failed save does not fail the match
		if err := s.store.SaveAnalysis(r.Context(), record); err != nil {
			s.logger.Warn("saving analysis", zap.Error(err))
		} else {
			resp.AnalysisID = record.ID.String()
		}
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleRecommend returns recommendations, gaps and a learning path for a match
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := s.decode(w, r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	ctx := r.Context()
	result, err := s.service.Match(ctx, req.ResumeText, req.JobText)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	path, err := s.service.LearningPath(ctx, result.MatchedSkills, append(append([]string{}, result.MatchedSkills...), result.MissingSkills...))
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, RecommendResponse{
		Recommendations: result.Recommendations,
		SkillGaps:       result.SkillGaps,
		LearningPath:    path,
	})
}

// handleLearningPath stages target skills that the current set lacks
func (s *Server) handleLearningPath(w http.ResponseWriter, r *http.Request) {
	var req LearningPathRequest
	if err := s.decode(w, r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	path, err := s.service.LearningPath(r.Context(), req.CurrentSkills, req.TargetSkills)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, path)
}

// handleListAnalyses returns stored analyses newest first
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, &ErrHistoryDisabled{})
		return
	}

	limit, err := queryInt(r, "limit", db.DefaultListLimit)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	limit = min(limit, db.MaxListLimit)
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	analyses, err := s.store.ListAnalyses(r.Context(), limit, offset)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ListResponse{Analyses: analyses, Limit: limit, Offset: offset})
}

// handleGetAnalysis returns one stored analysis with its full result
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, &ErrHistoryDisabled{})
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	analysis, err := s.store.GetAnalysis(r.Context(), id)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	if analysis == nil {
		s.errorResponse(w, &ErrNotFound{ID: id.String()})
		return
	}
	s.jsonResponse(w, http.StatusOK, analysis)
}

// handleDeleteAnalysis removes a stored analysis
func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, &ErrHistoryDisabled{})
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	if err := s.store.DeleteAnalysis(r.Context(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			err = &ErrNotFound{ID: id.String()}
		}
		s.errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleStatistics summarizes the stored analyses
func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, &ErrHistoryDisabled{})
		return
	}
	stats, err := s.store.Statistics(r.Context())
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, stats)
}

func pathID(r *http.Request) (uuid.UUID, error) {
	raw := r.PathValue("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "invalid UUID"}
	}
	return id, nil
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, &ErrValidation{Field: name, Message: "must be a non-negative integer"}
	}
	return v, nil
}
