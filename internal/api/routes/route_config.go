package routes

import (
	"bloodbank/internal/api/handlers"
	"bloodbank/internal/middleware"
	"bloodbank/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	DonorHandler        handlers.DonorHandler
	DonationHandler     handlers.DonationHandler
	BloodBankHandler    handlers.BloodBankHandler
	BloodRequestHandler handlers.BloodRequestHandler
	DashboardHandler    handlers.DashboardHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
	// Gatherer backs /metrics; nil leaves the endpoint unregistered.
	Gatherer prometheus.Gatherer
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.User()
	c.Donor()
	c.BloodBank()
	c.BloodRequest()
	c.Admin()
}

func (c *Config) auth() fiber.Handler {
	return c.Middleware.AuthMiddleware(c.JWTService)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Get("/api/v1/blood-groups", c.DashboardHandler.BloodGroups)
	if c.Gatherer != nil {
		c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(c.Gatherer, promhttp.HandlerOpts{})))
	}
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.auth(), c.UserHandler.Me)
	}
}

func (c *Config) Donor() {
	donors := c.App.Group("/api/v1/donors")
	donors.Get("/search", c.DonorHandler.SearchDonors)

	donors.Post("/profile", c.auth(), c.DonorHandler.CreateProfile)
	donors.Get("/profile", c.auth(), c.DonorHandler.GetProfile)
	donors.Put("/profile", c.auth(), c.DonorHandler.UpdateProfile)
	donors.Post("/profile/photo", c.auth(), c.DonorHandler.UploadProfilePhoto)
	donors.Get("/dashboard", c.auth(), c.DashboardHandler.DonorDashboard)

	donors.Post("/donations", c.auth(), c.DonationHandler.SubmitDonation)
	donors.Get("/donations", c.auth(), c.DonationHandler.ListMyDonations)
}

func (c *Config) BloodBank() {
	banks := c.App.Group("/api/v1/blood-banks", c.auth())
	banks.Get("", c.BloodBankHandler.ListBanks)
	banks.Post("", c.BloodBankHandler.CreateBank)
	banks.Get("/:id", c.BloodBankHandler.GetBank)
	banks.Put("/:id", c.BloodBankHandler.UpdateBank)
	banks.Delete("/:id", c.BloodBankHandler.DeleteBank)

	inventory := c.App.Group("/api/v1/inventory", c.auth())
	inventory.Get("", c.BloodBankHandler.ListInventory)
	inventory.Post("", c.BloodBankHandler.CreateInventory)
	inventory.Get("/:id", c.BloodBankHandler.GetInventory)
	inventory.Put("/:id", c.BloodBankHandler.UpdateInventory)
}

func (c *Config) BloodRequest() {
	requests := c.App.Group("/api/v1/blood-requests", c.auth())
	requests.Get("", c.BloodRequestHandler.ListRequests)
	requests.Post("", c.BloodRequestHandler.CreateRequest)
	requests.Get("/:id", c.BloodRequestHandler.GetRequest)
	requests.Patch("/:id/status", c.BloodRequestHandler.UpdateRequestStatus)
	requests.Delete("/:id", c.BloodRequestHandler.DeleteRequest)
}

// Admin routes still authorize inside the services; the group only groups.
func (c *Config) Admin() {
	admin := c.App.Group("/api/v1/admin", c.auth())
	admin.Get("/dashboard", c.DashboardHandler.AdminDashboard)
	admin.Get("/donors", c.DonorHandler.ListDonors)
	admin.Get("/donations/pending", c.DonationHandler.ListPendingDonations)
	admin.Post("/donations/:id/approve", c.DonationHandler.ApproveDonation)
	admin.Post("/donations/:id/reject", c.DonationHandler.RejectDonation)
}
