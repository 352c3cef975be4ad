package riot

// Account is the account-v1 by-riot-id response.
type Account struct {
	Puuid    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// Summoner is the summoner-v4 by-puuid response.
type Summoner struct {
	ID            string `json:"id"`
	AccountID     string `json:"accountId"`
	Puuid         string `json:"puuid"`
	SummonerLevel int64  `json:"summonerLevel"`
	ProfileIconID int    `json:"profileIconId"`
}

// Match is the match-v5 match detail response. Raw keeps the verbatim
// response body so the store can retain it for audit.
type Match struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
	Raw      []byte        `json:"-"`
}

type MatchMetadata struct {
	MatchID string `json:"matchId"`
}

type MatchInfo struct {
	GameCreation int64         `json:"gameCreation"` // unix millis
	GameDuration int           `json:"gameDuration"` // seconds
	GameMode     string        `json:"gameMode"`
	GameType     string        `json:"gameType"`
	GameVersion  string        `json:"gameVersion"`
	MapID        int           `json:"mapId"`
	QueueID      int           `json:"queueId"`
	Participants []Participant `json:"participants"`
}

type Participant struct {
	Puuid                       string `json:"puuid"`
	SummonerName                string `json:"summonerName"`
	ChampionID                  int    `json:"championId"`
	ChampionName                string `json:"championName"`
	TeamID                      int    `json:"teamId"`
	TeamPosition                string `json:"teamPosition"`
	Kills                       int    `json:"kills"`
	Deaths                      int    `json:"deaths"`
	Assists                     int    `json:"assists"`
	GoldEarned                  int    `json:"goldEarned"`
	TotalDamageDealtToChampions int    `json:"totalDamageDealtToChampions"`
	VisionScore                 int    `json:"visionScore"`
	WardsPlaced                 int    `json:"wardsPlaced"`
	WardsKilled                 int    `json:"wardsKilled"`
	TotalMinionsKilled          int    `json:"totalMinionsKilled"`
	NeutralMinionsKilled        int    `json:"neutralMinionsKilled"`
	Win                         bool   `json:"win"`
	FirstBloodKill              bool   `json:"firstBloodKill"`
	FirstBloodAssist            bool   `json:"firstBloodAssist"`
	PentaKills                  int    `json:"pentaKills"`
	TotalTimeSpentDead          int    `json:"totalTimeSpentDead"`
	Summoner1ID                 int    `json:"summoner1Id"`
	Summoner2ID                 int    `json:"summoner2Id"`
}
