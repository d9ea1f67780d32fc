package services

import (
	"testing"
	"time"

	"toto/database"
	"toto/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	// One in-memory connection; a second one would see an empty database.
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	database.DB = db
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func createTestAgent(t *testing.T, code, parentCode string, rate int64) models.Agent {
	t.Helper()
	agent := models.Agent{
		Username:       "agent-" + code,
		AgentCode:      code,
		SecretKey:      "secret-" + code,
		ParentCode:     parentCode,
		CommissionRate: decimal.NewFromInt(rate),
		Currency:       "USD",
		IsActive:       true,
	}
	if err := database.DB.Create(&agent).Error; err != nil {
		t.Fatalf("create agent %s: %v", code, err)
	}
	return agent
}

func createTestUser(t *testing.T, code, agentCode string, balance int64) models.User {
	t.Helper()
	user := models.User{
		UserCode:  code,
		AgentCode: agentCode,
		Balance:   decimal.NewFromInt(balance),
		Currency:  "USD",
		IsActive:  true,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", code, err)
	}
	return user
}

func createTestMatch(t *testing.T, code string) models.Match {
	t.Helper()
	match := models.Match{
		MatchCode: code,
		League:    "Test League",
		HomeTeam:  "TEAM_A",
		AwayTeam:  "TEAM_B",
		StartTime: time.Now().Add(time.Hour),
		Status:    models.MatchUpcoming,
	}
	if err := database.DB.Create(&match).Error; err != nil {
		t.Fatalf("create match %s: %v", code, err)
	}
	return match
}

func reloadUser(t *testing.T, code string) models.User {
	t.Helper()
	var user models.User
	if err := database.DB.Where("user_code = ?", code).First(&user).Error; err != nil {
		t.Fatalf("reload user %s: %v", code, err)
	}
	return user
}

func reloadAgent(t *testing.T, code string) models.Agent {
	t.Helper()
	var agent models.Agent
	if err := database.DB.Where("agent_code = ?", code).First(&agent).Error; err != nil {
		t.Fatalf("reload agent %s: %v", code, err)
	}
	return agent
}

func countUserTransactions(t *testing.T, userCode string) int64 {
	t.Helper()
	var n int64
	if err := database.DB.Model(&models.UserTransaction{}).
		Where("user_code = ?", userCode).Count(&n).Error; err != nil {
		t.Fatalf("count transactions: %v", err)
	}
	return n
}

func wantDecimal(t *testing.T, got decimal.Decimal, want string, label string) {
	t.Helper()
	w, err := decimal.NewFromString(want)
	if err != nil {
		t.Fatalf("bad want %q: %v", want, err)
	}
	if !got.Equal(w) {
		t.Fatalf("%s = %s, want %s", label, got, want)
	}
}
