package domain

// Budget selects the computation tier for a reasoning run.
type Budget string

// Budget tiers accepted by the reasoning service.
const (
	BudgetLow    Budget = "low"
	BudgetMedium Budget = "medium"
	BudgetHigh   Budget = "high"
)

// Requirement is a declarative rule constraining the shape and content
// of the reasoning service's output. Requirements are static
// configuration, not derived from data.
type Requirement struct {
	Name        string
	Description string
}

// RequirementResult reports how well the response satisfied a single
// requirement.
type RequirementResult struct {
	Name  string
	Score float64
}

// Analysis is the reasoning service's output for one screening request.
// It exists only for the duration of that request.
type Analysis struct {
	// Result is the free-form analysis text.
	Result string

	// Score is the overall requirements-compliance score.
	Score float64

	// Requirements holds the per-requirement compliance breakdown,
	// when the service returns one.
	Requirements []RequirementResult
}

// DefaultRequirements returns the requirements every screening analysis
// must satisfy.
func DefaultRequirements() []Requirement {
	return []Requirement{
		{
			Name:        "maximum_of_3_candidates",
			Description: "Ensure that the analysis only considers a maximum of 3 candidates. If more than 3 candidates are found, prioritize the top 3 based on relevance to the job description.",
		},
		{
			Name:        "extract_candidate_source",
			Description: "Extract the source filename of the candidate's resumé (e.g., 'ResumesPDF/cv ({cv_no}).pdf'). If multiple sources are present, identify the primary one.",
		},
		{
			Name:        "provide_suitability_score",
			Description: "Provide a suitability score for the candidate on a scale of 1 to 10, where 10 is a perfect match for the job description. The output must be an integer.",
		},
		{
			Name:        "list_matching_skills",
			Description: "List at least 3, but no more than 7, key skills from the resumé that directly match the requirements in the job description.",
		},
		{
			Name:        "list_matching_things",
			Description: "List at least 3, but no more than 7, key experiences qualifications, achievements, or other relevant things from the resumé that directly match the requirements in the job description.",
		},
		{
			Name:        "write_summary",
			Description: "Write a concise summary (40-60 words) explaining the reasoning for the suitability score.",
		},
		{
			Name:        "check_word_count",
			Description: "The entire response must not exceed 250 words.",
		},
	}
}
