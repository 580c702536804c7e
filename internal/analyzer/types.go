package analyzer

// IssueRef identifies the issue to analyze. Immutable once submitted.
type IssueRef struct {
	RepoURL     string `json:"repo_url"`
	IssueNumber int    `json:"issue_number"`
}

// Analysis is the structured result returned by the analysis backend. It is
// returned exactly as the backend produced it; no field is recomputed on the
// client side.
type Analysis struct {
	Summary         string   `json:"summary"`
	Type            string   `json:"type"`
	PriorityScore   string   `json:"priority_score"`
	SuggestedLabels []string `json:"suggested_labels"`
	PotentialImpact string   `json:"potential_impact"`
}

// Known issue types. The backend may return values outside this set; they
// are kept verbatim and only degrade to "other" at display time.
const (
	TypeBug            = "bug"
	TypeFeatureRequest = "feature_request"
	TypeDocumentation  = "documentation"
	TypeQuestion       = "question"
	TypeOther          = "other"
)
