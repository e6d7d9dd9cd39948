package match

import (
	"testing"

	"github.com/ryuzo-k/kokoro-graph/pkg/common"
)

func intPtr(v int) *int { return &v }

func TestScoreEmptyInputs(t *testing.T) {
	if got := Score(common.Profile{}, nil); len(got) != 0 {
		t.Errorf("Score() with no candidates = %v, want empty", got)
	}

	candidates := []common.Community{{ID: "c1", Name: "Tokyo Tech Builders"}}
	if got := Score(common.Profile{}, candidates); len(got) != 0 {
		t.Errorf("Score() with empty profile = %v, want empty", got)
	}
}

func TestScoreTechnicalRule(t *testing.T) {
	profile := common.Profile{GithubScore: intPtr(85)}
	candidates := []common.Community{
		{ID: "c1", Name: "Tokyo Tech Builders"},
		{ID: "c2", Name: "Weekend Hikers"},
	}

	got := Score(profile, candidates)
	if len(got) != 1 {
		t.Fatalf("Score() returned %d matches, want 1", len(got))
	}
	// technical rule (30) + active-profile bonus (10)
	if got[0].Community.ID != "c1" || got[0].MatchScore != 40 {
		t.Errorf("match = %s with score %d, want c1 with 40", got[0].Community.ID, got[0].MatchScore)
	}
	if len(got[0].Reasons) != 2 {
		t.Errorf("reasons = %v, want rule reason plus activity bonus", got[0].Reasons)
	}
}

func TestScoreThresholdIsStrict(t *testing.T) {
	// Fintech rule alone: GithubScore 61 > 60 fires (+15), plus the
	// activity bonus (+10) lands exactly on 25. Remove the rule (score
	// 60) and only the +10 bonus remains, under the cutoff.
	candidates := []common.Community{{ID: "c1", Name: "Fintech Founders"}}

	atBoundary := Score(common.Profile{GithubScore: intPtr(60)}, candidates)
	if len(atBoundary) != 0 {
		t.Errorf("score at rule boundary produced matches: %v", atBoundary)
	}

	aboveBoundary := Score(common.Profile{GithubScore: intPtr(61)}, candidates)
	if len(aboveBoundary) != 1 || aboveBoundary[0].MatchScore != 25 {
		t.Errorf("score above boundary = %v, want one match at 25", aboveBoundary)
	}
}

func TestScoreExactCutoffExcluded(t *testing.T) {
	// Activity bonus + low-fraud bonus = 15 exactly; the cutoff is
	// strictly greater-than, so no match.
	profile := common.Profile{
		GithubScore:    intPtr(10),
		FraudRiskLevel: common.FraudRiskLow,
	}
	candidates := []common.Community{{ID: "c1", Name: "Weekend Hikers"}}

	if got := Score(profile, candidates); len(got) != 0 {
		t.Errorf("score of exactly 15 included: %v", got)
	}
}

func TestScoreRulesStack(t *testing.T) {
	profile := common.Profile{
		GithubScore:    intPtr(90),
		LinkedinScore:  intPtr(75),
		FraudRiskLevel: common.FraudRiskLow,
	}
	candidates := []common.Community{{ID: "c1", Name: "Fintech Engineers Guild"}}

	got := Score(profile, candidates)
	if len(got) != 1 {
		t.Fatalf("Score() returned %d matches, want 1", len(got))
	}
	// technical (30) + fintech (15) + activity (10) + low fraud (5)
	if got[0].MatchScore != 60 {
		t.Errorf("MatchScore = %d, want 60", got[0].MatchScore)
	}
	if len(got[0].Reasons) != 4 {
		t.Errorf("reasons = %v, want 4 entries", got[0].Reasons)
	}
}

func TestScoreSortedAndCapped(t *testing.T) {
	profile := common.Profile{
		GithubScore:    intPtr(90),
		LinkedinScore:  intPtr(80),
		PortfolioScore: intPtr(70),
		FraudRiskLevel: common.FraudRiskLow,
	}
	candidates := []common.Community{
		{ID: "c1", Name: "Morning Runners"},
		{ID: "c2", Name: "Product Makers"},
		{ID: "c3", Name: "Fintech Engineers"},
		{ID: "c4", Name: "Startup Founders"},
		{ID: "c5", Name: "Code Dojo"},
		{ID: "c6", Name: "Design Crit Circle"},
		{ID: "c7", Name: "Venture Tech Collective"},
	}

	got := Score(profile, candidates)
	if len(got) != maxMatches {
		t.Fatalf("Score() returned %d matches, want %d", len(got), maxMatches)
	}
	for i := 1; i < len(got); i++ {
		if got[i].MatchScore > got[i-1].MatchScore {
			t.Errorf("matches not sorted descending at index %d: %d > %d", i, got[i].MatchScore, got[i-1].MatchScore)
		}
	}
	if got[0].Community.ID != "c7" {
		t.Errorf("top match = %s, want c7 (technical + business + fintech)", got[0].Community.ID)
	}
	for _, m := range got {
		if m.Community.ID == "c1" {
			t.Errorf("non-matching community c1 included with score %d", m.MatchScore)
		}
	}
}

func TestScoreTieBreakIsStable(t *testing.T) {
	profile := common.Profile{GithubScore: intPtr(85)}
	candidates := []common.Community{
		{ID: "first", Name: "Tech Alpha"},
		{ID: "second", Name: "Tech Beta"},
	}

	got := Score(profile, candidates)
	if len(got) != 2 {
		t.Fatalf("Score() returned %d matches, want 2", len(got))
	}
	if got[0].Community.ID != "first" || got[1].Community.ID != "second" {
		t.Errorf("tie order = [%s, %s], want catalog order preserved", got[0].Community.ID, got[1].Community.ID)
	}
}
