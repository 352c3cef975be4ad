package models

type SummonerRequest struct {
	SummonerName string `json:"summonerName" validate:"required"`
	TagLine      string `json:"tagLine"`
}

type RosterEntry struct {
	SummonerName string `json:"summonerName" validate:"required"`
	TagLine      string `json:"tagLine"`
}

type UpdateAllMatchesRequest struct {
	FriendsList []RosterEntry `json:"friendsList" validate:"required,min=1,dive"`
}

// RosterResult is one entry's slot in a bulk ingestion response. A failed
// entry carries its own error and never aborts its siblings.
type RosterResult struct {
	Summoner         string `json:"summoner"`
	MatchesProcessed int    `json:"matchesProcessed"`
	Status           string `json:"status"`
	Error            string `json:"error,omitempty"`
}

type UpdateAllMatchesResponse struct {
	RunID   string         `json:"runId"`
	Results []RosterResult `json:"results"`
}
