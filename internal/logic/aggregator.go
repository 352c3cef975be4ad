package logic

import (
	"fmt"
	"math"
	"sort"

	"github.com/AlexandForests/lolvsfriends/internal/models"
)

// Classifier thresholds. These are tuned for the friend group's queue mix
// and are intentionally crude; the boards are for banter, not coaching.
const (
	flashSpellID = 4

	suspiciousDamageCeiling = 10000
	soloDeathAssistFactor   = 0.3
	greedyGoldFloor         = 12000
	greedyDeathFloor        = 5
	visionScoreFloor        = 15
	visionGameFloorSeconds  = 1200
	highKillFloor           = 10
	lowKillCeiling          = 3
	backlineDeathFloor      = 6

	earlyGameCeilingSeconds = 1200
	lateGameFloorSeconds    = 1800
)

type positionAccum struct {
	games int
	wins  int
}

type championAccum struct {
	games       int
	performance int
}

type playerAccum struct {
	summonerName string
	tagLine      string

	totalGames         int
	wins               int
	kills              int
	deaths             int
	assists            int
	firstBloodDeaths   int
	pentaKills         int
	totalTimeSpentDead int
	wardsPlaced        int
	visionScore        int
	totalDamage        int
	goldEarned         int
	cs                 int

	soloDeaths       int
	greedyDeaths     int
	flashGames       int
	suspiciousDeaths int
	backlineDeaths   int
	visionMemes      int
	highKillLowWin   int
	lowKillHighWin   int

	earlyGames int
	earlyWins  int
	lateGames  int
	lateWins   int

	champions map[string]*championAccum
	positions map[string]*positionAccum
}

// Aggregate folds the joined participant rows into both derived views in a
// single pass. The fold is order independent (counters only, no row order
// dependencies) and the output is sorted by puuid, so the same row set always
// produces the same result regardless of how the store returned it.
func Aggregate(rows []models.ParticipantRow) ([]models.PlayerAggregate, []models.MemeAggregate) {
	accums := make(map[string]*playerAccum)

	for _, row := range rows {
		acc := accums[row.Puuid]
		if acc == nil {
			acc = &playerAccum{
				summonerName: row.SummonerName,
				tagLine:      row.TagLine,
				champions:    make(map[string]*championAccum),
				positions:    make(map[string]*positionAccum),
			}
			accums[row.Puuid] = acc
		}
		foldRow(acc, row)
	}

	puuids := make([]string, 0, len(accums))
	for puuid := range accums {
		puuids = append(puuids, puuid)
	}
	sort.Strings(puuids)

	players := make([]models.PlayerAggregate, 0, len(puuids))
	memes := make([]models.MemeAggregate, 0, len(puuids))
	for _, puuid := range puuids {
		players = append(players, finishPlayer(puuid, accums[puuid]))
		memes = append(memes, finishMeme(puuid, accums[puuid]))
	}
	return players, memes
}

func foldRow(acc *playerAccum, row models.ParticipantRow) {
	acc.totalGames++
	if row.Win {
		acc.wins++
	}
	acc.kills += row.Kills
	acc.deaths += row.Deaths
	acc.assists += row.Assists
	acc.pentaKills += row.PentaKills
	acc.totalTimeSpentDead += row.TimeSpentDead
	acc.wardsPlaced += row.WardsPlaced
	acc.visionScore += row.VisionScore
	acc.totalDamage += row.TotalDamageDealt
	acc.goldEarned += row.GoldEarned
	acc.cs += row.CS

	// A death in a game where the player took no part in first blood counts
	// as a first blood victim. Riot does not expose the actual victim flag.
	if row.Deaths > 0 && !row.FirstBloodKill && !row.FirstBloodAssist {
		acc.firstBloodDeaths++
	}

	hasFlash := row.Summoner1ID == flashSpellID || row.Summoner2ID == flashSpellID
	if hasFlash {
		acc.flashGames++
		if row.Deaths > 0 && row.TotalDamageDealt < suspiciousDamageCeiling {
			acc.suspiciousDeaths++
		}
	}

	if float64(row.Deaths) > float64(row.Assists)*soloDeathAssistFactor {
		acc.soloDeaths++
	}
	if row.GoldEarned > greedyGoldFloor && row.Deaths > greedyDeathFloor {
		acc.greedyDeaths++
	}
	if row.VisionScore < visionScoreFloor && row.GameDuration > visionGameFloorSeconds {
		acc.visionMemes++
	}
	if row.Kills >= highKillFloor && !row.Win {
		acc.highKillLowWin++
	}
	if row.Kills <= lowKillCeiling && row.Win {
		acc.lowKillHighWin++
	}
	if (row.Position == "BOTTOM" || row.Position == "MIDDLE") && row.Deaths > backlineDeathFloor {
		acc.backlineDeaths++
	}

	champ := acc.champions[row.ChampionName]
	if champ == nil {
		champ = &championAccum{}
		acc.champions[row.ChampionName] = champ
	}
	champ.games++
	champ.performance += row.Kills + row.Assists - row.Deaths

	if row.Position != "" {
		pos := acc.positions[row.Position]
		if pos == nil {
			pos = &positionAccum{}
			acc.positions[row.Position] = pos
		}
		pos.games++
		if row.Win {
			pos.wins++
		}
	}

	switch {
	case row.GameDuration > lateGameFloorSeconds:
		acc.lateGames++
		if row.Win {
			acc.lateWins++
		}
	case row.GameDuration < earlyGameCeilingSeconds:
		acc.earlyGames++
		if row.Win {
			acc.earlyWins++
		}
	}
}

func finishPlayer(puuid string, acc *playerAccum) models.PlayerAggregate {
	positionWinRates := make(map[string]string, len(acc.positions))
	for pos, p := range acc.positions {
		positionWinRates[pos] = pct1(p.wins, p.games)
	}

	return models.PlayerAggregate{
		Puuid:        puuid,
		SummonerName: acc.summonerName,
		TagLine:      acc.tagLine,

		TotalGames:         acc.totalGames,
		Wins:               acc.wins,
		Kills:              acc.kills,
		Deaths:             acc.deaths,
		Assists:            acc.assists,
		FirstBloodDeaths:   acc.firstBloodDeaths,
		PentaKills:         acc.pentaKills,
		TotalTimeSpentDead: acc.totalTimeSpentDead,
		WardsPlaced:        acc.wardsPlaced,
		VisionScore:        acc.visionScore,
		TotalDamage:        acc.totalDamage,
		GoldEarned:         acc.goldEarned,
		CS:                 acc.cs,

		ChampionPoolSize:     len(acc.champions),
		WinRate:              pct1(acc.wins, acc.totalGames),
		KDA:                  kda(acc.kills, acc.deaths, acc.assists),
		AvgKills:             avg1(acc.kills, acc.totalGames),
		AvgDeaths:            avg1(acc.deaths, acc.totalGames),
		AvgAssists:           avg1(acc.assists, acc.totalGames),
		FirstBloodVictimRate: pct1(acc.firstBloodDeaths, acc.totalGames),
		AvgTimeSpentDead:     avg0(acc.totalTimeSpentDead, acc.totalGames),
		AvgWardsPerGame:      avg1(acc.wardsPlaced, acc.totalGames),
		AvgVisionScore:       avg1(acc.visionScore, acc.totalGames),
		PentaKillRate:        pct2(acc.pentaKills, acc.totalGames),
		AvgDamagePerGame:     roundDiv(acc.totalDamage, acc.totalGames),
		AvgGoldPerGame:       roundDiv(acc.goldEarned, acc.totalGames),
		AvgCSPerGame:         avg1(acc.cs, acc.totalGames),
		PositionWinRates:     positionWinRates,
	}
}

func finishMeme(puuid string, acc *playerAccum) models.MemeAggregate {
	agg := models.MemeAggregate{
		Puuid:        puuid,
		SummonerName: acc.summonerName,
		TagLine:      acc.tagLine,

		TotalGames:       acc.totalGames,
		FirstBloodDeaths: acc.firstBloodDeaths,
		SoloDeaths:       acc.soloDeaths,
		GreedyDeaths:     acc.greedyDeaths,
		FlashGames:       acc.flashGames,
		SuspiciousDeaths: acc.suspiciousDeaths,
		BacklineDeaths:   acc.backlineDeaths,
		VisionMemes:      acc.visionMemes,
		HighKillLowWin:   acc.highKillLowWin,
		LowKillHighWin:   acc.lowKillHighWin,
		DamageDealt:      acc.totalDamage,

		ChampionPoolSize: len(acc.champions),
		AvgDamagePerGame: roundDiv(acc.totalDamage, acc.totalGames),
	}

	agg.OneChampPony = make(map[string]models.ChampionLine, len(acc.champions))
	for name, c := range acc.champions {
		agg.OneChampPony[name] = models.ChampionLine{Games: c.games, Performance: c.performance}
	}

	agg.FirstBloodVictimRateValue = ratio(acc.firstBloodDeaths, acc.totalGames)
	agg.SoloDeathRateValue = ratio(acc.soloDeaths, acc.totalGames)
	agg.CarriageRateValue = ratio(acc.highKillLowWin, acc.totalGames)
	agg.CarriedRateValue = ratio(acc.lowKillHighWin, acc.totalGames)

	agg.FirstBloodVictimRate = pct1(acc.firstBloodDeaths, acc.totalGames)
	agg.SoloDeathRate = pct1(acc.soloDeaths, acc.totalGames)
	agg.GreedyDeathRate = pct1(acc.greedyDeaths, acc.totalGames)
	agg.BacklineIntRate = pct1(acc.backlineDeaths, acc.totalGames)
	agg.WardSlackRate = pct1(acc.visionMemes, acc.totalGames)
	agg.CarriageRate = pct1(acc.highKillLowWin, acc.totalGames)
	agg.CarriedRate = pct1(acc.lowKillHighWin, acc.totalGames)

	// Flash rate is conditioned on games where flash was actually taken.
	if acc.flashGames > 0 {
		agg.FlashIntoWallRateValue = ratio(acc.suspiciousDeaths, acc.flashGames)
		agg.FlashIntoWallRate = pct1(acc.suspiciousDeaths, acc.flashGames)
	} else {
		agg.FlashIntoWallRate = "0.0"
	}

	name, games := mostPlayedChampion(acc.champions)
	if name == "" {
		agg.OneChampPonyName = "None"
		agg.OneChampPonyRate = "0.0"
	} else {
		agg.OneChampPonyName = name
		agg.OneChampPonyRateValue = ratio(games, acc.totalGames)
		agg.OneChampPonyRate = pct1(games, acc.totalGames)
	}

	agg.LateGameWinRate = bucketWinRate(acc.lateWins, acc.lateGames)
	agg.EarlyGameWinRate = bucketWinRate(acc.earlyWins, acc.earlyGames)

	return agg
}

// mostPlayedChampion prefers more games, then the lexicographically smaller
// name so ties resolve the same way on every run.
func mostPlayedChampion(champions map[string]*championAccum) (string, int) {
	var bestName string
	var bestGames int
	for name, c := range champions {
		if c.games > bestGames || (c.games == bestGames && bestName != "" && name < bestName) {
			bestName = name
			bestGames = c.games
		}
	}
	return bestName, bestGames
}

func bucketWinRate(wins, games int) string {
	if games == 0 {
		return "N/A"
	}
	return pct1(wins, games)
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d) * 100
}

func pct1(n, d int) string {
	return fmt.Sprintf("%.1f", ratio(n, d))
}

func pct2(n, d int) string {
	return fmt.Sprintf("%.2f", ratio(n, d))
}

func avg1(sum, games int) string {
	if games == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(games))
}

func avg0(sum, games int) string {
	if games == 0 {
		return "0"
	}
	return fmt.Sprintf("%.0f", float64(sum)/float64(games))
}

func kda(kills, deaths, assists int) string {
	return fmt.Sprintf("%.2f", float64(kills+assists)/math.Max(float64(deaths), 1))
}

func roundDiv(sum, games int) int {
	if games == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(games)))
}
