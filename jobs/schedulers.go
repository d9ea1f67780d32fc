package jobs

import (
	"log"
	"time"

	"toto/database"
	"toto/models"
	"toto/services"
)

// StartSchedulers launches the recurring sweeps. Every sweep is
// idempotent: finished work is skipped on re-run via the settled/paid
// flags, so overlapping or repeated ticks are harmless.
func StartSchedulers() {
	tickerSettle := time.NewTicker(1 * time.Minute)
	go func() {
		for {
			<-tickerSettle.C
			runSettleSweep()
		}
	}()

	tickerVoid := time.NewTicker(5 * time.Minute)
	go func() {
		for {
			<-tickerVoid.C
			runVoidSweep()
		}
	}()

	tickerSettlements := time.NewTicker(24 * time.Hour)
	go func() {
		for {
			<-tickerSettlements.C
			runWeeklySettlements()
		}
	}()
}

// runSettleSweep settles matches that have a stored result but no
// settlement yet.
func runSettleSweep() {
	var matches []models.Match
	if err := database.DB.
		Where("status = ? AND result IS NOT NULL AND settled_at IS NULL", models.MatchFinished).
		Find(&matches).Error; err != nil {
		log.Printf("❌ settle sweep query failed: %v", err)
		return
	}

	for i := range matches {
		sweep, err := services.SettleMatch(matches[i].MatchCode)
		if err != nil {
			log.Printf("❌ settle sweep %s failed: %v", matches[i].MatchCode, err)
			continue
		}
		log.Printf("✅ settled %s: %d won, %d lost, %d failed",
			sweep.MatchCode, sweep.Won, sweep.Lost, sweep.Failed)
	}
}

// runVoidSweep re-voids cancelled matches that still carry pending bets,
// e.g. after a crash mid-void.
func runVoidSweep() {
	var matchIDs []uint
	if err := database.DB.Model(&models.Bet{}).
		Distinct("bets.match_id").
		Joins("JOIN matches ON matches.id = bets.match_id").
		Where("bets.status = ? AND matches.status = ?", models.BetPending, models.MatchCancelled).
		Pluck("bets.match_id", &matchIDs).Error; err != nil {
		log.Printf("❌ void sweep query failed: %v", err)
		return
	}

	for _, id := range matchIDs {
		var match models.Match
		if err := database.DB.First(&match, id).Error; err != nil {
			continue
		}
		sweep, err := services.VoidMatchBets(match.MatchCode, match.CancelReason)
		if err != nil {
			log.Printf("❌ void sweep %s failed: %v", match.MatchCode, err)
			continue
		}
		log.Printf("✅ voided %s: %d refunded, %d failed", sweep.MatchCode, sweep.Voided, sweep.Failed)
	}
}

// runWeeklySettlements generates settlements for the last completed
// 7-day window. Agents already covered by a settlement skip via the
// duplicate-period check, so the daily tick converges to one run per week.
func runWeeklySettlements() {
	end := time.Now().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -7)

	batch, err := services.GenerateAllSettlements(start, end)
	if err != nil {
		log.Printf("❌ settlement generation failed: %v", err)
		return
	}
	log.Printf("✅ settlements generated: %d new, %d skipped, %d failed",
		batch.Generated, batch.Skipped, batch.Failed)
}
