package tenant

// MatchType records which site field a directory match came from.
type MatchType string

const (
	MatchByFinalDomain MatchType = "final_domain"
	MatchBySandboxURL  MatchType = "sandbox_url"
)

// MatchStatus classifies the outcome of matching one site against the
// directory. Ambiguity is not resolved locally; the backfill driver decides
// what to do with it (it aborts the whole run).
type MatchStatus int

const (
	MatchNotFound MatchStatus = iota
	MatchFound
	MatchAmbiguous
)

// Candidate is one directory hit for a site's domain field.
type Candidate struct {
	TenantID   uint      `json:"tenant_id"`
	Host       string    `json:"host"`
	MatchType  MatchType `json:"match_type"`
	MatchValue string    `json:"match_value"`
}

// MatchResult is the typed outcome of site-to-tenant matching.
type MatchResult struct {
	Status     MatchStatus
	Candidates []Candidate
}

// Best returns the candidate to apply. Only valid when Status is MatchFound.
func (m MatchResult) Best() Candidate {
	return m.Candidates[0]
}

// ResolveCandidates classifies a candidate list: no hits, one distinct
// tenant id, or several distinct tenant ids (ambiguous).
func ResolveCandidates(candidates []Candidate) MatchResult {
	if len(candidates) == 0 {
		return MatchResult{Status: MatchNotFound}
	}

	distinct := make(map[uint]struct{}, len(candidates))
	for _, c := range candidates {
		distinct[c.TenantID] = struct{}{}
	}
	if len(distinct) > 1 {
		return MatchResult{Status: MatchAmbiguous, Candidates: candidates}
	}

	return MatchResult{Status: MatchFound, Candidates: candidates}
}
