package scoring

import "github.com/jonathan/resume-fit/internal/types"

type band struct {
	min     float64
	band    types.Band
	message string
}

// bands are ordered from highest minimum to lowest.
var bands = []band{
	{80, types.BandExcellent, "Excellent Match! Your skills strongly align with the job requirements."},
	{60, types.BandGood, "Good Match! You have most required skills with minor gaps."},
	{40, types.BandModerate, "Moderate Match. You have some key skills but significant gaps to address."},
	{0, types.BandPoor, "Poor Match. Consider developing more relevant skills for this role."},
}

// Assess maps a compatibility score to its band and message. It never alters the score.
func Assess(score float64) types.Assessment {
	for _, b := range bands {
		if score >= b.min {
			return types.Assessment{Band: b.band, Message: b.message}
		}
	}
	last := bands[len(bands)-1]
	return types.Assessment{Band: last.band, Message: last.message}
}

var (
	gapRecommendations = []string{
		"Focus on learning the missing skills listed above",
		"Take online courses or work on practical projects",
		"Build a portfolio to showcase your new skills",
		"Network with professionals who have these skills",
	}
	strengthRecommendations = []string{
		"Highlight your strong skills in job applications",
		"Prepare specific examples for interview questions",
		"Continue learning to stay current in your field",
		"Consider mentoring others in your strong areas",
	}
)

// Recommendations returns next steps for the candidate: closing gaps when any
// job skill is missing, otherwise making the most of existing strengths.
func Recommendations(result *types.SkillAnalysisResult) []string {
	src := strengthRecommendations
	if result != nil && result.MissingCount() > 0 {
		src = gapRecommendations
	}
	return append([]string(nil), src...)
}
