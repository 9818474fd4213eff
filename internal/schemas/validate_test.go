package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-fit/internal/scoring"
	"github.com/jonathan/resume-fit/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *types.AnalysisReport {
	result := types.NewSkillAnalysisResult()
	result.Add(types.SkillMatch{JobSkill: "python", ResumeSkill: "python", Similarity: 1, Tier: types.TierHigh})
	result.Add(types.SkillMatch{JobSkill: "java", ResumeSkill: "javascript", Similarity: 0.6, Tier: types.TierPartial})
	result.Add(types.SkillMatch{JobSkill: "docker", Tier: types.TierMissing})
	result.OverallMatchPercent = 33.33
	result.SimilaritySource = "heuristic"
	return scoring.NewScorer(scoring.DefaultWeights).Score(result, 0.4, 0.2)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{AnalysisReport, SkillSet}, Names())
}

func TestValidateReport_Valid(t *testing.T) {
	assert.NoError(t, ValidateReport(sampleReport()))
}

func TestValidateReport_EmptyResult(t *testing.T) {
	report := scoring.NewScorer(scoring.DefaultWeights).Score(nil, 0, 0)
	report.SkillAnalysis.SimilaritySource = "none"
	assert.NoError(t, ValidateReport(report))
}

func TestValidateReport_Nil(t *testing.T) {
	err := ValidateReport(nil)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidateReport_Violations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *types.AnalysisReport)
		field  string
	}{
		{"score above range", func(r *types.AnalysisReport) { r.CompatibilityScore = 120 }, "compatibility_score"},
		{"unknown band", func(r *types.AnalysisReport) { r.Assessment.Band = "great" }, "assessment.band"},
		{"no recommendations", func(r *types.AnalysisReport) { r.Recommendations = []string{} }, "recommendations"},
		{"unknown source", func(r *types.AnalysisReport) { r.SkillAnalysis.SimilaritySource = "magic" }, "skill_analysis.similarity_source"},
		{"similarity above one", func(r *types.AnalysisReport) { r.SkillAnalysis.HighMatches[0].Similarity = 1.5 }, "skill_analysis.high_matches.0.similarity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := sampleReport()
			tt.mutate(report)

			err := ValidateReport(report)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, AnalysisReport, validationErr.Schema)

			fields := make([]string, 0, len(validationErr.Errors))
			for _, fe := range validationErr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidateSkillSet(t *testing.T) {
	assert.NoError(t, ValidateSkillSet(types.NewSkillSet("Go", "Python", "go")))
	assert.NoError(t, ValidateSkillSet(types.SkillSet{}))

	err := ValidateBytes(SkillSet, []byte(`["go", "go"]`))
	assert.Error(t, err, "duplicates violate uniqueItems")

	err = ValidateBytes(SkillSet, []byte(`["Go"]`))
	assert.Error(t, err, "skills are lower-cased")
}

func TestValidateBytes_UnknownSchema(t *testing.T) {
	err := ValidateBytes("resume_plan", []byte(`{}`))
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "unknown schema")
}

func TestValidateBytes_MalformedDocument(t *testing.T) {
	err := ValidateBytes(AnalysisReport, []byte(`{ not json`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load JSON document")
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")
	data, err := json.Marshal(sampleReport())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	assert.NoError(t, ValidateFile(AnalysisReport, path))

	err = ValidateFile(AnalysisReport, filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"name": "x"}`))

	err := ValidateJSONString(schema, `{"name": 3}`)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "name", validationErr.Errors[0].Field)
	assert.Contains(t, err.Error(), "validation failed")
}
