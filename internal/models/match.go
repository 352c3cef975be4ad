package models

import "time"

// Match is one stored game, keyed by match id. RawData keeps the full
// upstream payload for audit only; nothing downstream depends on its shape.
type Match struct {
	MatchID      string    `json:"matchId"`
	GameCreation time.Time `json:"gameCreation"`
	GameDuration int       `json:"gameDuration"` // seconds
	GameMode     string    `json:"gameMode"`
	GameType     string    `json:"gameType"`
	GameVersion  string    `json:"gameVersion"`
	MapID        int       `json:"mapId"`
	QueueID      int       `json:"queueId"`
	RawData      []byte    `json:"-"`
}

// Participant is one player's line in one match, keyed by (matchId, puuid).
type Participant struct {
	MatchID          string `json:"matchId"`
	Puuid            string `json:"puuid"`
	SummonerName     string `json:"summonerName"`
	ChampionID       int    `json:"championId"`
	ChampionName     string `json:"championName"`
	TeamID           int    `json:"teamId"`
	Position         string `json:"position"`
	Kills            int    `json:"kills"`
	Deaths           int    `json:"deaths"`
	Assists          int    `json:"assists"`
	GoldEarned       int    `json:"goldEarned"`
	TotalDamageDealt int    `json:"totalDamageDealt"`
	VisionScore      int    `json:"visionScore"`
	WardsPlaced      int    `json:"wardsPlaced"`
	WardsKilled      int    `json:"wardsKilled"`
	CS               int    `json:"cs"`
	Win              bool   `json:"win"`
	FirstBloodKill   bool   `json:"firstBloodKill"`
	FirstBloodAssist bool   `json:"firstBloodAssist"`
	PentaKills       int    `json:"pentaKills"`
	TimeSpentDead    int    `json:"timeSpentDead"` // seconds
	Summoner1ID      int    `json:"summoner1Id"`
	Summoner2ID      int    `json:"summoner2Id"`
	RawData          []byte `json:"-"`
}

// ParticipantRow is a participant joined with its summoner identity and the
// parent match context. This is the row set the aggregator folds over.
type ParticipantRow struct {
	Participant
	TagLine      string `json:"tagLine"`
	GameDuration int    `json:"gameDuration"` // seconds
	GameMode     string `json:"gameMode"`
	QueueID      int    `json:"queueId"`
}
