package facematch

// MatchResult is the outcome of comparing one query embedding with the roster.
// Score is reported even when Matched is false.
type MatchResult struct {
	IdentityID string  `json:"identity_id,omitempty"`
	Name       string  `json:"name,omitempty"`
	GroupID    *string `json:"group_id,omitempty"`
	Score      float64 `json:"score"`
	Matched    bool    `json:"matched"`
	Threshold  float64 `json:"threshold"`
}
