package types

import (
	"github.com/go-playground/validator/v10"
)

// MaxTextBytes bounds each document submitted as raw text.
const MaxTextBytes = 1 << 20

// AnalyzeRequest is the body of an analysis request. At least one of the
// two texts must be present; an empty side degrades the report instead of
// failing it.
type AnalyzeRequest struct {
	ResumeText string `json:"resume_text" validate:"required_without=JobText,max=1048576"`
	JobText    string `json:"job_text" validate:"required_without=ResumeText,max=1048576"`
}

// UploadedDocuments holds the texts decoded from an upload. Either side may
// be empty when its document had no readable text.
type UploadedDocuments struct {
	ResumeText string `validate:"max=1048576"`
	JobText    string `validate:"max=1048576"`
}

// ExtractSkillsRequest is the body of a skill extraction request.
type ExtractSkillsRequest struct {
	Text string `json:"text" validate:"required,max=1048576"`
}

// SentimentRequest is the body of a sentiment scoring request.
type SentimentRequest struct {
	Text string `json:"text" validate:"required,max=1048576"`
}

// ExtractSkillsResponse lists the skills found in a text.
type ExtractSkillsResponse struct {
	Skills SkillSet `json:"skills"`
	Count  int      `json:"count"`
}

// AnalyzeResponse wraps a report with the identity of the run that produced it.
type AnalyzeResponse struct {
	RunID        string          `json:"run_id"`
	ResumeSkills SkillSet        `json:"resume_skills"`
	JobSkills    SkillSet        `json:"job_skills"`
	Report       *AnalysisReport `json:"report"`
}

// NewAnalyzeResponse builds the response body for a completed run.
func NewAnalyzeResponse(run *AnalysisRun) *AnalyzeResponse {
	return &AnalyzeResponse{
		RunID:        run.RunID.String(),
		ResumeSkills: run.ResumeSkills,
		JobSkills:    run.JobSkills,
		Report:       run.Report,
	}
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate checks the decoded texts against the per-document size limit.
func (r *UploadedDocuments) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ExtractSkillsRequest using the validator.
func (r *ExtractSkillsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SentimentRequest using the validator.
func (r *SentimentRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
