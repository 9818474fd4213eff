package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jonathan/resume-fit/internal/parsing"
	"github.com/jonathan/resume-fit/internal/pipeline"
	"github.com/jonathan/resume-fit/internal/server/middleware"
	"github.com/jonathan/resume-fit/internal/types"
	"go.uber.org/zap"
)

// maxJSONBodyBytes bounds a JSON body holding two documents.
const maxJSONBodyBytes = 2*types.MaxTextBytes + 64<<10

// validatable is implemented by request bodies.
type validatable interface {
	Validate() error
}

// decodeRequest reads a bounded JSON body into req and validates it.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, req validatable) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return maxBytesErr
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	if err := req.Validate(); err != nil {
		return NewValidationError(err)
	}
	return nil
}

// requestLogger tags the logger with the authenticated user when present.
func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	if userID, err := middleware.GetUserID(r); err == nil {
		return s.log.With(zap.String("user_id", userID.String()))
	}
	return s.log
}

// handleAnalyze runs one analysis and returns the report
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	run, err := s.analyzer.Run(r.Context(), pipeline.Request{
		ResumeText: req.ResumeText,
		JobText:    req.JobText,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.metrics.ObserveRun(run)

	s.requestLogger(r).Info("analysis served",
		zap.String("run_id", run.RunID.String()),
		zap.Float64("compatibility", run.Report.CompatibilityScore))
	s.jsonResponse(w, http.StatusOK, types.NewAnalyzeResponse(run))
}

// handleAnalyzeStream runs one analysis and streams progress via SSE
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	log := s.requestLogger(r)
	run, err := s.analyzer.Run(r.Context(), pipeline.Request{
		ResumeText: req.ResumeText,
		JobText:    req.JobText,
		OnProgress: func(event pipeline.ProgressEvent) {
			if err := sse.WriteEvent("step", event); err != nil {
				log.Warn("failed to write SSE event", zap.String("step", event.Step), zap.Error(err))
			}
		},
	})
	if err != nil {
		log.Warn("streaming analysis aborted", zap.Error(err))
		sse.WriteError(err.Error())
		return
	}
	s.metrics.ObserveRun(run)

	sse.WriteComplete(types.NewAnalyzeResponse(run))
	log.Info("streaming analysis completed", zap.String("run_id", run.RunID.String()))
}

// handleExtractSkills returns the skill set of a single text
func (s *Server) handleExtractSkills(w http.ResponseWriter, r *http.Request) {
	var req types.ExtractSkillsRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	set := s.analyzer.Extractor().Extract(r.Context(), parsing.NormalizeText(req.Text))
	if err := r.Context().Err(); err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.ExtractSkillsResponse{Skills: set, Count: set.Len()})
}

// handleSentiment returns the polarity breakdown of a single text
func (s *Server) handleSentiment(w http.ResponseWriter, r *http.Request) {
	var req types.SentimentRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, s.analyzer.Sentiment().Score(parsing.NormalizeText(req.Text)))
}
