package database

import (
	"log"

	"toto/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedCasinoGames inserts the default instant-game catalog if missing.
// Existing rows are left alone so operators can retune stakes and RTP.
func SeedCasinoGames(db *gorm.DB) error {
	games := []models.CasinoGame{
		{GameCode: models.GameCoinFlip, Name: "Coin Flip", MinStake: decimal.NewFromInt(10), MaxStake: decimal.NewFromInt(100000), RTP: decimal.NewFromInt(97)},
		{GameCode: models.GameDice, Name: "Dice", MinStake: decimal.NewFromInt(10), MaxStake: decimal.NewFromInt(100000), RTP: decimal.NewFromInt(97)},
		{GameCode: models.GameHiLo, Name: "Hi-Lo", MinStake: decimal.NewFromInt(10), MaxStake: decimal.NewFromInt(50000), RTP: decimal.NewFromInt(96)},
		{GameCode: models.GameTeenPatti, Name: "Teen Patti", MinStake: decimal.NewFromInt(20), MaxStake: decimal.NewFromInt(200000), RTP: decimal.NewFromInt(96)},
	}

	for i := range games {
		if err := db.Where(models.CasinoGame{GameCode: games[i].GameCode}).
			FirstOrCreate(&games[i]).Error; err != nil {
			return err
		}
	}

	log.Println("✅ Casino game catalog seeded")
	return nil
}
