package models

// PlayerAggregate is the core per-player performance view, recomputed from
// the stored participant rows on every request. Percentage fields carry one
// decimal, KDA two; formatting happens once, after the fold.
type PlayerAggregate struct {
	Puuid        string `json:"puuid"`
	SummonerName string `json:"summonerName"`
	TagLine      string `json:"tagLine"`

	TotalGames         int `json:"totalGames"`
	Wins               int `json:"wins"`
	Kills              int `json:"kills"`
	Deaths             int `json:"deaths"`
	Assists            int `json:"assists"`
	FirstBloodDeaths   int `json:"firstBloodDeaths"`
	PentaKills         int `json:"pentaKills"`
	TotalTimeSpentDead int `json:"totalTimeSpentDead"`
	WardsPlaced        int `json:"wardsPlaced"`
	VisionScore        int `json:"visionScore"`
	TotalDamage        int `json:"totalDamage"`
	GoldEarned         int `json:"goldEarned"`
	CS                 int `json:"cs"`

	ChampionPoolSize     int               `json:"championPoolSize"`
	WinRate              string            `json:"winRate"`
	KDA                  string            `json:"kda"`
	AvgKills             string            `json:"avgKills"`
	AvgDeaths            string            `json:"avgDeaths"`
	AvgAssists           string            `json:"avgAssists"`
	FirstBloodVictimRate string            `json:"firstBloodVictimRate"`
	AvgTimeSpentDead     string            `json:"avgTimeSpentDead"`
	AvgWardsPerGame      string            `json:"avgWardsPerGame"`
	AvgVisionScore       string            `json:"avgVisionScore"`
	PentaKillRate        string            `json:"pentaKillRate"`
	AvgDamagePerGame     int               `json:"avgDamagePerGame"`
	AvgGoldPerGame       int               `json:"avgGoldPerGame"`
	AvgCSPerGame         string            `json:"avgCSPerGame"`
	PositionWinRates     map[string]string `json:"positionWinRates"`
}

// ChampionLine is one champion's slice of a player's histogram. Performance
// is kill participation minus deaths, summed over that champion's games.
type ChampionLine struct {
	Games       int `json:"games"`
	Performance int `json:"performance"`
}

// MemeAggregate is the behavioral classifier view used by the meme
// leaderboards. The *Value fields duplicate the formatted rates as numbers so
// the ranker sorts without re-parsing strings; they stay out of the JSON.
type MemeAggregate struct {
	Puuid        string `json:"puuid"`
	SummonerName string `json:"summonerName"`
	TagLine      string `json:"tagLine"`

	TotalGames       int `json:"totalGames"`
	FirstBloodDeaths int `json:"firstBloodDeaths"`
	SoloDeaths       int `json:"soloDeaths"`
	GreedyDeaths     int `json:"greedyDeaths"`
	FlashGames       int `json:"flashGames"`
	SuspiciousDeaths int `json:"suspiciousDeaths"`
	BacklineDeaths   int `json:"backlineDeaths"`
	VisionMemes      int `json:"visionMemes"`
	HighKillLowWin   int `json:"highKillLowWin"`
	LowKillHighWin   int `json:"lowKillHighWin"`
	DamageDealt      int `json:"damageDealt"`

	FirstBloodVictimRate string                  `json:"firstBloodVictimRate"`
	SoloDeathRate        string                  `json:"soloDeathRate"`
	GreedyDeathRate      string                  `json:"greedyDeathRate"`
	FlashIntoWallRate    string                  `json:"flashIntoWallRate"`
	BacklineIntRate      string                  `json:"backlineIntRate"`
	WardSlackRate        string                  `json:"wardSlackRate"`
	CarriageRate         string                  `json:"carriageRate"`
	CarriedRate          string                  `json:"carriedRate"`
	OneChampPony         map[string]ChampionLine `json:"oneChampPony"`
	OneChampPonyName     string                  `json:"oneChampPonyName"`
	OneChampPonyRate     string                  `json:"oneChampPonyRate"`
	ChampionPoolSize     int                     `json:"championPoolSize"`
	LateGameWinRate      string                  `json:"lateGameWinRate"`
	EarlyGameWinRate     string                  `json:"earlyGameWinRate"`
	AvgDamagePerGame     int                     `json:"avgDamagePerGame"`

	FirstBloodVictimRateValue float64 `json:"-"`
	SoloDeathRateValue        float64 `json:"-"`
	FlashIntoWallRateValue    float64 `json:"-"`
	CarriageRateValue         float64 `json:"-"`
	CarriedRateValue          float64 `json:"-"`
	OneChampPonyRateValue     float64 `json:"-"`
}

// MemeLeaderboards holds the seven ranked top-5 boards.
type MemeLeaderboards struct {
	MostLikelyToDieFirst  []MemeAggregate `json:"mostLikelyToDieFirst"`
	FlashIntoWallKing     []MemeAggregate `json:"flashIntoWallKing"`
	SoloDeathSpecialist   []MemeAggregate `json:"soloDeathSpecialist"`
	BestCarriagePotential []MemeAggregate `json:"bestCarriagePotential"`
	MostCarried           []MemeAggregate `json:"mostCarried"`
	BiggestOneChampPony   []MemeAggregate `json:"biggestOneChampPony"`
	MostVersatile         []MemeAggregate `json:"mostVersatile"`
}

// MemeLeaderboardResponse is the /api/meme-leaderboard payload.
type MemeLeaderboardResponse struct {
	PlayerStats  []MemeAggregate  `json:"playerStats"`
	Leaderboards MemeLeaderboards `json:"leaderboards"`
}
