package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCandidates(t *testing.T) {
	t.Run("no candidates", func(t *testing.T) {
		result := ResolveCandidates(nil)
		assert.Equal(t, MatchNotFound, result.Status)
		assert.Empty(t, result.Candidates)
	})

	t.Run("single candidate", func(t *testing.T) {
		result := ResolveCandidates([]Candidate{
			{TenantID: 5, Host: "artist5.example.com", MatchType: MatchByFinalDomain},
		})
		assert.Equal(t, MatchFound, result.Status)
		assert.Equal(t, uint(5), result.Best().TenantID)
	})

	t.Run("two candidates agreeing on the tenant", func(t *testing.T) {
		result := ResolveCandidates([]Candidate{
			{TenantID: 5, MatchType: MatchByFinalDomain},
			{TenantID: 5, MatchType: MatchBySandboxURL},
		})
		assert.Equal(t, MatchFound, result.Status)
		assert.Equal(t, MatchByFinalDomain, result.Best().MatchType)
	})

	t.Run("distinct tenants are ambiguous", func(t *testing.T) {
		result := ResolveCandidates([]Candidate{
			{TenantID: 5, MatchType: MatchByFinalDomain},
			{TenantID: 7, MatchType: MatchBySandboxURL},
		})
		assert.Equal(t, MatchAmbiguous, result.Status)
		assert.Len(t, result.Candidates, 2)
	})
}
