package logic

import (
	"sort"

	"github.com/AlexandForests/lolvsfriends/internal/models"
)

const boardSize = 5

// Rank builds the seven top-5 boards from the meme view. Sorting is stable
// and works on copies, so the caller's slice keeps its puuid order and equal
// scores keep their relative positions.
func Rank(memes []models.MemeAggregate) models.MemeLeaderboards {
	return models.MemeLeaderboards{
		MostLikelyToDieFirst: topBy(memes, func(a, b models.MemeAggregate) bool {
			return a.FirstBloodVictimRateValue > b.FirstBloodVictimRateValue
		}),
		FlashIntoWallKing: topBy(memes, func(a, b models.MemeAggregate) bool {
			return a.FlashIntoWallRateValue > b.FlashIntoWallRateValue
		}),
		SoloDeathSpecialist: topBy(memes, func(a, b models.MemeAggregate) bool {
			return a.SoloDeathRateValue > b.SoloDeathRateValue
		}),
		BestCarriagePotential: topBy(memes, func(a, b models.MemeAggregate) bool {
			return a.CarriageRateValue > b.CarriageRateValue
		}),
		MostCarried: topBy(memes, func(a, b models.MemeAggregate) bool {
			return a.CarriedRateValue > b.CarriedRateValue
		}),
		BiggestOneChampPony: topBy(memes, func(a, b models.MemeAggregate) bool {
			return a.OneChampPonyRateValue > b.OneChampPonyRateValue
		}),
		MostVersatile: topBy(memes, func(a, b models.MemeAggregate) bool {
			return a.ChampionPoolSize > b.ChampionPoolSize
		}),
	}
}

func topBy(memes []models.MemeAggregate, less func(a, b models.MemeAggregate) bool) []models.MemeAggregate {
	ranked := make([]models.MemeAggregate, len(memes))
	copy(ranked, memes)
	sort.SliceStable(ranked, func(i, j int) bool { return less(ranked[i], ranked[j]) })
	if len(ranked) > boardSize {
		ranked = ranked[:boardSize]
	}
	return ranked
}
