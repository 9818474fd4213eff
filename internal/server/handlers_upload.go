package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jonathan/resume-fit/internal/fetch"
	"github.com/jonathan/resume-fit/internal/ingestion"
	"github.com/jonathan/resume-fit/internal/pipeline"
	"github.com/jonathan/resume-fit/internal/types"
	"go.uber.org/zap"
)

// Multipart field names accepted by /analyze/upload. Each side is a file, a
// text field, or (job only) a URL.
const (
	fieldResumeFile = "resume"
	fieldResumeText = "resume_text"
	fieldJobFile    = "job"
	fieldJobText    = "job_text"
	fieldJobURL     = "job_url"
)

// handleAnalyzeUpload decodes uploaded documents and runs one analysis
func (s *Server) handleAnalyzeUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.writeError(w, maxBytesErr)
			return
		}
		s.writeError(w, &ErrValidation{Field: "body", Message: "invalid multipart form: " + err.Error()})
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	log := s.requestLogger(r)

	resumeText, resumeSupplied, err := s.formDocument(r, fieldResumeFile, fieldResumeText, log)
	if err != nil {
		s.writeError(w, err)
		return
	}

	jobText, jobSupplied, err := s.formJob(r, log)
	if err != nil {
		s.writeError(w, err)
		return
	}

	// A supplied side that decoded to nothing degrades the report; only a
	// request naming no document at all is rejected.
	if !resumeSupplied && !jobSupplied {
		s.writeError(w, &ErrMissingPart{Name: "resume, resume_text, job, job_text or job_url"})
		return
	}
	docs := types.UploadedDocuments{ResumeText: resumeText, JobText: jobText}
	if err := docs.Validate(); err != nil {
		s.writeError(w, NewValidationError(err))
		return
	}

	run, err := s.analyzer.Run(r.Context(), pipeline.Request{ResumeText: resumeText, JobText: jobText})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.metrics.ObserveRun(run)

	log.Info("upload analysis served", zap.String("run_id", run.RunID.String()))
	s.jsonResponse(w, http.StatusOK, types.NewAnalyzeResponse(run))
}

// formJob reads the job side from a file, a text field or a URL. supplied
// reports whether the request named a job document at all.
func (s *Server) formJob(r *http.Request, log *zap.Logger) (text string, supplied bool, err error) {
	jobURL := strings.TrimSpace(r.FormValue(fieldJobURL))
	if jobURL == "" {
		return s.formDocument(r, fieldJobFile, fieldJobText, log)
	}

	if err := fetch.ValidateURL(jobURL); err != nil {
		return "", true, &ErrValidation{Field: fieldJobURL, Message: err.Error()}
	}
	text, metadata, err := ingestion.IngestFromURL(r.Context(), jobURL, ingestion.URLOptions{
		UseBrowser: s.fetchCfg.UseBrowser,
		Renderer:   s.renderer,
		Fetch:      &fetch.Options{Timeout: s.fetchCfg.Timeout, Logger: log},
		Logger:     log,
	})
	if unreadable(err) {
		log.Warn("job posting unreadable, analyzing without it",
			zap.String("url", jobURL), zap.Error(err))
		return "", true, nil
	}
	if err != nil {
		return "", true, err
	}
	log.Info("job posting fetched",
		zap.String("url", jobURL),
		zap.String("platform", metadata.Platform),
		zap.Int("chars", metadata.Chars),
		zap.Bool("rendered", metadata.Rendered))
	return text, true, nil
}

// formDocument reads one side of the analysis from a file part or a text
// field. A document that decodes to no text, or fails to decode, degrades to
// an empty side instead of failing the request.
func (s *Server) formDocument(r *http.Request, fileField, textField string, log *zap.Logger) (text string, supplied bool, err error) {
	file, header, err := r.FormFile(fileField)
	if errors.Is(err, http.ErrMissingFile) {
		text = r.FormValue(textField)
		return text, text != "", nil
	}
	if err != nil {
		return "", true, &ErrValidation{Field: fileField, Message: err.Error()}
	}
	defer func() { _ = file.Close() }()

	kind, err := ingestion.DetectKind(header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		return "", true, fmt.Errorf("%s: %w", fileField, err)
	}

	text, metadata, err := ingestion.IngestReader(kind, file, header.Filename)
	switch {
	case unreadable(err):
		log.Warn("uploaded document unreadable, analyzing without it",
			zap.String("field", fileField),
			zap.String("filename", header.Filename),
			zap.Error(err))
		return "", true, nil
	case err != nil:
		return "", true, &ErrValidation{Field: fileField, Message: err.Error()}
	}

	log.Debug("document ingested",
		zap.String("field", fileField),
		zap.String("kind", string(metadata.Kind)),
		zap.Int("chars", metadata.Chars),
		zap.String("hash", metadata.Hash))
	return text, true, nil
}

// unreadable reports ingestion errors that leave a side without usable text.
func unreadable(err error) bool {
	return errors.Is(err, ingestion.ErrNoText) || errors.Is(err, ingestion.ErrContentExtractionFailed)
}
