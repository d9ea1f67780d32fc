package routes

import (
	"toto/controllers/admin"
	"toto/controllers/agent"
	"toto/controllers/bets"
	"toto/controllers/casino"
	"toto/controllers/user"
	"toto/middlewares"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App) {
	userroutes := app.Group("/user", middlewares.UserAuthMiddleware)
	userroutes.Post("/balance", user.CheckUserBalance)
	userroutes.Post("/register", user.RegisterUser)
	userroutes.Post("/transfer", user.TransferBalance)

	betroutes := app.Group("/bets", middlewares.UserAuthMiddleware)
	betroutes.Post("/place", bets.PlaceBet)
	betroutes.Post("/list", bets.ListBets)

	casinoroutes := app.Group("/casino", middlewares.UserAuthMiddleware)
	casinoroutes.Post("/play", casino.Play)
	casinoroutes.Post("/verify", casino.Verify)

	app.Post("/agent/info", agent.AgentInfo)
	agentroutes := app.Group("/agent", middlewares.AgentAuth())
	agentroutes.Post("/register", agent.RegisterAgent)

	adminroutes := app.Group("/admin", middlewares.AdminAuth())
	adminroutes.Post("/matches/create", admin.CreateMatch)
	adminroutes.Post("/matches/lock", admin.LockMatchBetting)
	adminroutes.Post("/matches/result", admin.SubmitMatchResult)
	adminroutes.Post("/matches/cancel", admin.CancelMatch)
	adminroutes.Post("/settlements/generate", admin.GenerateSettlement)
	adminroutes.Post("/settlements/approve", admin.ApproveSettlement)
	adminroutes.Post("/settlements/reject", admin.RejectSettlement)
	adminroutes.Post("/settlements/pay", admin.PaySettlement)
	adminroutes.Post("/settlements/list", admin.ListSettlements)
}
