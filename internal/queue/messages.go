package queue

// ImportMessage carries one bulk meeting import. CSV holds the raw
// uploaded file; imports are bounded by the HTTP body limit, so the
// payload travels inline rather than through object storage.
type ImportMessage struct {
	OwnerID string `json:"owner_id"`
	CSV     []byte `json:"csv"`
}

// ProfileRefresh asks the analyze worker to re-score the owner's
// profile through the oracle with the given public links.
type ProfileRefresh struct {
	Name         string `json:"name"`
	GithubURL    string `json:"github_url,omitempty"`
	LinkedinURL  string `json:"linkedin_url,omitempty"`
	PortfolioURL string `json:"portfolio_url,omitempty"`
}

// AnalyzeMessage triggers a relationship rebuild for one owner, with an
// optional oracle profile refresh.
type AnalyzeMessage struct {
	OwnerID string          `json:"owner_id"`
	Refresh *ProfileRefresh `json:"refresh,omitempty"`
}

// ExportMessage triggers a network snapshot export to object storage.
type ExportMessage struct {
	OwnerID string `json:"owner_id"`
}
