package entity

type MatchResult struct {
	Name               string  `json:"name"`
	ProfileSummary     string  `json:"profile_summary"`
	CompatibilityScore float64 `json:"compatibility_score"`
	Reason             string  `json:"reason"`
}
