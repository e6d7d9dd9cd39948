package ai

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

const ProfileScoringPrompt = `
# Task Context
You are an assistant that evaluates a person's professional profile for a
social networking application. You will be given the person's public links,
extracted portfolio text, and free-text feedback left by people who met them.

# Background Data
%s

# Detailed Task Description & Rules
- Score each available channel from 0 to 100: github_score for code activity
  and quality signals, linkedin_score for professional history signals,
  portfolio_score for the quality of the portfolio text.
- Score only channels with data; use 0 for channels with no data at all.
- Assess fraud_risk_level as "low", "medium" or "high": inconsistencies
  between channels, implausible claims, or feedback alleging dishonesty raise
  the risk.
- Keep the summary to two or three sentences, factual, no flattery.

# Output Formatting
Return a JSON object with this structure:
{
  "github_score": <0-100>,
  "linkedin_score": <0-100>,
  "portfolio_score": <0-100>,
  "fraud_risk_level": "<low|medium|high>",
  "summary": "<short assessment>"
}
`

// feedbackTokenBudget caps how much meeting feedback goes into the
// prompt. Everything else in the prompt is small and predictable;
// feedback is the only unbounded part.
const feedbackTokenBudget = 2000

// BuildProfilePrompt assembles the scoring prompt from the input,
// truncating feedback to the token budget, oldest entries dropped first.
func BuildProfilePrompt(input ProfileInput) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", input.Name)
	if input.GithubURL != "" {
		fmt.Fprintf(&b, "GitHub: %s\n", input.GithubURL)
	}
	if input.LinkedinURL != "" {
		fmt.Fprintf(&b, "LinkedIn: %s\n", input.LinkedinURL)
	}
	if input.PortfolioURL != "" {
		fmt.Fprintf(&b, "Portfolio: %s\n", input.PortfolioURL)
	}
	if input.PortfolioText != "" {
		fmt.Fprintf(&b, "\nPortfolio text:\n%s\n", input.PortfolioText)
	}

	if len(input.Feedback) > 0 {
		feedback, err := truncateFeedback(input.Feedback, feedbackTokenBudget)
		if err != nil {
			return "", err
		}
		if len(feedback) > 0 {
			b.WriteString("\nFeedback from meetings:\n")
			for _, f := range feedback {
				fmt.Fprintf(&b, "- %s\n", f)
			}
		}
	}

	return fmt.Sprintf(ProfileScoringPrompt, b.String()), nil
}

// truncateFeedback keeps the newest feedback entries that fit the
// budget. Entries are assumed newest-last; the kept suffix preserves
// input order.
func truncateFeedback(feedback []string, budget int) ([]string, error) {
	enc, err := tiktoken.GetEncoding("o200k_base")
	if err != nil {
		return nil, err
	}

	total := 0
	keepFrom := len(feedback)
	for i := len(feedback) - 1; i >= 0; i-- {
		total += len(enc.Encode(feedback[i], nil, nil))
		if total > budget {
			break
		}
		keepFrom = i
	}
	return feedback[keepFrom:], nil
}
