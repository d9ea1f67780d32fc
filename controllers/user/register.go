package user

import (
	"strings"

	"toto/database"
	"toto/helpers"
	"toto/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type RegisterUserRequest struct {
	UserCode           string          `json:"user_code"`
	Country            string          `json:"country"`
	Currency           string          `json:"currency"`
	MinBet             decimal.Decimal `json:"min_bet"`
	MaxBet             decimal.Decimal `json:"max_bet"`
	MatchExposureLimit decimal.Decimal `json:"match_exposure_limit"`
	CreditLimit        decimal.Decimal `json:"credit_limit"`
}

var allowedCountryCurrencies = map[string][]string{
	"ID": {"IDR", "USD"},
	"IN": {"INR", "USD"},
	"MY": {"MYR", "USD"},
	"TH": {"THB", "USD"},
	"VN": {"VND", "USD"},
	"US": {"USD"},
}

func RegisterUser(c *fiber.Ctx) error {
	var req RegisterUserRequest

	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	agent, ok := c.Locals("agent").(models.Agent)
	if !ok {
		return helpers.JSONError(c, "INVALID_AGENT_SESSION")
	}

	countryKey := strings.ToUpper(strings.TrimSpace(req.Country))
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))

	allowedCurrencies, ok := allowedCountryCurrencies[countryKey]
	if !ok {
		return helpers.JSONError(c, "UNSUPPORTED_COUNTRY")
	}

	validCurrency := false
	for _, ccy := range allowedCurrencies {
		if ccy == currency {
			validCurrency = true
			break
		}
	}
	if !validCurrency {
		return helpers.JSONError(c, "INVALID_CURRENCY_FOR_COUNTRY")
	}

	finalUserCode := strings.ToLower(agent.AgentCode) + "_" + strings.ToLower(req.UserCode)

	var existing models.User
	if err := database.DB.Where("user_code = ?", finalUserCode).First(&existing).Error; err == nil {
		return helpers.JSONError(c, "USER_ALREADY_EXISTS")
	}

	user := models.User{
		UserCode:           finalUserCode,
		AgentCode:          agent.AgentCode,
		Country:            countryKey,
		Currency:           currency,
		Balance:            decimal.Zero,
		MinBet:             req.MinBet,
		MaxBet:             req.MaxBet,
		MatchExposureLimit: req.MatchExposureLimit,
		CreditLimit:        req.CreditLimit,
		IsActive:           true,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_REGISTER_USER")
	}

	return helpers.JSONSuccess(c, "User registered successfully", fiber.Map{
		"user_code":  user.UserCode,
		"agent_code": user.AgentCode,
		"country":    user.Country,
		"currency":   user.Currency,
	})
}
