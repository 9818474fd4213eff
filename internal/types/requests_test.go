package types

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAnalyzeRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     AnalyzeRequest
		wantErr bool
	}{
		{"both texts", AnalyzeRequest{ResumeText: "go", JobText: "python"}, false},
		{"resume only", AnalyzeRequest{ResumeText: "go"}, false},
		{"job only", AnalyzeRequest{JobText: "python"}, false},
		{"neither", AnalyzeRequest{}, true},
		{"oversized resume", AnalyzeRequest{ResumeText: strings.Repeat("a", MaxTextBytes+1), JobText: "x"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUploadedDocuments_Validate(t *testing.T) {
	// Both sides empty is a degraded upload, not an invalid one.
	assert.NoError(t, (&UploadedDocuments{}).Validate())
	assert.NoError(t, (&UploadedDocuments{JobText: "python"}).Validate())
	assert.Error(t, (&UploadedDocuments{JobText: strings.Repeat("a", MaxTextBytes+1)}).Validate())
}

func TestExtractSkillsRequest_Validate(t *testing.T) {
	assert.NoError(t, (&ExtractSkillsRequest{Text: "python and sql"}).Validate())
	assert.Error(t, (&ExtractSkillsRequest{}).Validate())
}

func TestSentimentRequest_Validate(t *testing.T) {
	assert.NoError(t, (&SentimentRequest{Text: "great team"}).Validate())
	assert.Error(t, (&SentimentRequest{}).Validate())
}

func TestNewAnalyzeResponse(t *testing.T) {
	run := &AnalysisRun{
		RunID:        uuid.New(),
		ResumeSkills: NewSkillSet("go"),
		JobSkills:    NewSkillSet("go", "sql"),
		Report:       &AnalysisReport{CompatibilityScore: 42},
	}

	resp := NewAnalyzeResponse(run)
	assert.Equal(t, run.RunID.String(), resp.RunID)
	assert.Equal(t, 2, resp.JobSkills.Len())
	assert.Same(t, run.Report, resp.Report)
}
