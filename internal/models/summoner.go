package models

import "time"

// Summoner is a tracked roster member, keyed by puuid. Rows are upserted on
// every successful account resolution (last write wins).
type Summoner struct {
	Puuid         string    `json:"puuid"`
	SummonerName  string    `json:"summonerName"`
	TagLine       string    `json:"tagLine"`
	SummonerLevel int64     `json:"summonerLevel"`
	ProfileIconID int       `json:"profileIconId"`
	LastUpdated   time.Time `json:"lastUpdated"`
}
