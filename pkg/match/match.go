// Package match ranks community catalog entries against a user's
// profile scores with additive keyword rules. It is pure and
// side-effect free: the scores it consumes are computed elsewhere.
package match

import (
	"sort"
	"strings"

	"github.com/ryuzo-k/kokoro-graph/pkg/common"
)

// CommunityMatch pairs a candidate community with its score and the
// reason strings accumulated by the rules that fired.
type CommunityMatch struct {
	Community  common.Community `json:"community"`
	MatchScore int              `json:"match_score"`
	Reasons    []string         `json:"reasons"`
}

const (
	// minMatchScore is a strict lower bound: candidates scoring exactly
	// at it are filtered out.
	minMatchScore = 15
	maxMatches    = 5
)

var (
	technicalKeywords = []string{"tech", "engineer", "developer", "hack", "code"}
	businessKeywords  = []string{"business", "founder", "startup", "venture"}
	creativeKeywords  = []string{"design", "product", "creative", "maker"}
	fintechKeywords   = []string{"fintech", "finance", "crypto", "invest"}
)

func nameContainsAny(name string, keywords []string) bool {
	lowered := strings.ToLower(name)
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

func scoreAbove(score *int, threshold int) bool {
	return score != nil && *score > threshold
}

// Score evaluates every candidate against the profile and returns the
// matches above the cutoff, sorted by descending score and truncated
// to the top five. Candidate order breaks score ties, so output is
// deterministic for a given catalog order.
func Score(profile common.Profile, candidates []common.Community) []CommunityMatch {
	matches := make([]CommunityMatch, 0, len(candidates))

	hasAnyScore := profile.GithubScore != nil ||
		profile.LinkedinScore != nil ||
		profile.PortfolioScore != nil

	for _, c := range candidates {
		score := 0
		reasons := make([]string, 0)

		if nameContainsAny(c.Name, technicalKeywords) && scoreAbove(profile.GithubScore, 70) {
			score += 30
			reasons = append(reasons, "strong GitHub activity fits this technical community")
		}
		if nameContainsAny(c.Name, businessKeywords) && scoreAbove(profile.LinkedinScore, 60) {
			score += 25
			reasons = append(reasons, "solid professional network fits this business community")
		}
		if nameContainsAny(c.Name, creativeKeywords) && scoreAbove(profile.PortfolioScore, 50) {
			score += 20
			reasons = append(reasons, "portfolio work fits this product and design community")
		}
		if nameContainsAny(c.Name, fintechKeywords) &&
			(scoreAbove(profile.GithubScore, 60) || scoreAbove(profile.LinkedinScore, 60)) {
			score += 15
			reasons = append(reasons, "technical and professional background fits fintech")
		}

		if hasAnyScore {
			score += 10
			reasons = append(reasons, "profile has verified activity scores")
		}
		if profile.FraudRiskLevel == common.FraudRiskLow {
			score += 5
			reasons = append(reasons, "low fraud risk")
		}

		if score > minMatchScore {
			matches = append(matches, CommunityMatch{
				Community:  c,
				MatchScore: score,
				Reasons:    reasons,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})
	if len(matches) > maxMatches {
		matches = matches[:maxMatches]
	}
	return matches
}
