package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/agency_be/internal/config"
	"github.com/Windi-Fikriyansyah/agency_be/internal/handlers"
	"github.com/Windi-Fikriyansyah/agency_be/internal/middleware"
	"github.com/Windi-Fikriyansyah/agency_be/internal/models"
	"github.com/Windi-Fikriyansyah/agency_be/internal/realtime"
	"github.com/Windi-Fikriyansyah/agency_be/internal/services/analytics"
	"github.com/Windi-Fikriyansyah/agency_be/internal/services/imagekit"
	"github.com/Windi-Fikriyansyah/agency_be/internal/services/leaderboard"
	"github.com/Windi-Fikriyansyah/agency_be/internal/services/rating"
	"github.com/Windi-Fikriyansyah/agency_be/internal/utils"
)

type Deps struct {
	Config config.Config
	DB     *gorm.DB
	Tokens *utils.TokenService
	Log    *logrus.Logger
	Hub    *realtime.Hub
	Broker *realtime.Broker
	// AccessLog enables fiber's request logger.
	AccessLog bool
}

// NewApp builds the fiber app with the shared middleware and every route.
func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(d.Log),
	})

	app.Use(recover.New())
	if d.AccessLog {
		app.Use(logger.New(logger.Config{
			Output: d.Log.WriterLevel(logrus.InfoLevel),
			Format: "${status} ${method} ${path} ${latency}\n",
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     d.Config.CORSOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))

	Register(app, d)
	return app
}

func Register(app *fiber.App, d Deps) {
	var (
		senior     = middleware.Gate(d.Tokens, models.RoleSenior)
		editors    = middleware.Gate(d.Tokens, models.RoleMiddle, models.RoleSenior)
		developers = middleware.Gate(d.Tokens, models.DeveloperRoles...)
		authed     = middleware.RequireAuth(d.Tokens)
	)

	authH := &handlers.AuthHandler{DB: d.DB, Tokens: d.Tokens, Secure: !d.Config.Development()}
	googleH := &handlers.GoogleOAuthHandler{
		Auth:            authH,
		GoogleClientID:  d.Config.GoogleClientID,
		GoogleSecret:    d.Config.GoogleSecret,
		GoogleRedirect:  d.Config.GoogleRedirect,
		FrontendBaseURL: d.Config.FrontendBaseURL,
	}
	userH := handlers.NewUserHandler(d.DB)
	taskH := handlers.NewTaskHandler(d.DB, d.Broker)
	blogH := handlers.NewBlogHandler(d.DB)
	commentH := handlers.NewCommentHandler(d.DB)
	courseH := handlers.NewCourseHandler(d.DB)
	syllabusH := handlers.NewSyllabusHandler(d.DB)
	reviewH := handlers.NewReviewHandler(d.DB, rating.NewRatingService(d.DB), d.Log)
	portfolioH := handlers.NewPortfolioHandler(d.DB)
	categoryH := handlers.NewCategoryHandler(d.DB)
	teamH := handlers.NewTeamHandler(d.DB)
	siteH := handlers.NewSiteHandler(d.DB)
	leadH := handlers.NewLeadHandler(d.DB)
	developerH := handlers.NewDeveloperHandler(d.DB)
	insightH := &handlers.InsightHandler{
		Leaderboard: leaderboard.NewLeaderboardService(d.DB),
		Analytics:   analytics.NewAnalyticsService(d.DB),
	}
	uploadH := &handlers.UploadHandler{Signer: imagekit.NewImageKitService(
		d.Config.ImageKitPublicKey,
		d.Config.ImageKitPrivateKey,
		d.Config.ImageKitURLEndpoint,
	)}

	app.Get("/auth/imagekit", uploadH.ImageKitAuth)
	app.Post("/auth/refresh-token", authH.Refresh)
	app.Get("/ws/tasks", authed, realtime.RequireUpgrade, websocket.New(d.Hub.Serve))

	api := app.Group("/api")

	// auth
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Post("/auth/refresh-token", authH.Refresh)
	api.Get("/auth/me", authed, authH.Me)
	api.Get("/profile", authed, authH.Me)
	api.Get("/auth/google/start", googleH.GoogleStart)
	api.Get("/auth/google/callback", googleH.GoogleCallback)

	// accounts
	api.Get("/users/:id", authed, userH.Get)
	api.Patch("/users/:id/skills", senior, userH.UpdateSkills)
	api.Patch("/users/:id/badges", senior, userH.AddBadge)

	// tasks
	api.Post("/tasks", senior, taskH.Create)
	api.Get("/tasks", developers, taskH.List)
	api.Get("/tasks/mine", developers, taskH.Mine)
	api.Get("/tasks/:id", developers, taskH.Get)
	api.Put("/tasks/:id", senior, taskH.Update)
	api.Delete("/tasks/:id", senior, taskH.Delete)
	api.Patch("/tasks/:id/subtasks/:subtaskId/toggle", developers, taskH.ToggleSubtask)
	api.Post("/tasks/:taskId/feedback", editors, taskH.AddFeedback)
	api.Get("/tasks/:taskId/feedback", developers, taskH.ListFeedback)
	api.Delete("/tasks/:taskId/feedback/:feedbackId", senior, taskH.DeleteFeedback)

	// blogs and comments
	api.Get("/blogs", blogH.List)
	api.Get("/blogs/:id", blogH.Get)
	api.Post("/blogs", editors, blogH.Create)
	api.Put("/blogs/:id", editors, blogH.Update)
	api.Delete("/blogs/:id", editors, blogH.Delete)

	api.Post("/comment", authed, commentH.Create)
	api.Get("/comment", senior, commentH.List)
	api.Get("/comment/:blogId", commentH.ListApproved)
	api.Patch("/comment/:id", senior, commentH.Approve)
	api.Delete("/comment/:id", senior, commentH.Delete)

	// courses
	api.Get("/courses", courseH.List)
	api.Get("/courses/:id", courseH.Get)
	api.Post("/courses", senior, courseH.Create)
	api.Put("/courses/:id", senior, courseH.Update)
	api.Delete("/courses/:id", senior, courseH.Delete)

	api.Get("/syllabus", syllabusH.List)
	api.Get("/syllabus/:id", syllabusH.Get)
	api.Post("/syllabus", senior, syllabusH.Create)
	api.Put("/syllabus/:id", senior, syllabusH.Update)
	api.Delete("/syllabus/:id", senior, syllabusH.Delete)

	api.Post("/reviews", authed, reviewH.Create)
	api.Get("/reviews/:courseId", reviewH.ListByCourse)
	api.Put("/reviews/:id", authed, reviewH.Update)
	api.Delete("/reviews/:id", authed, reviewH.Delete)

	// portfolio
	api.Get("/portfolio", portfolioH.List)
	api.Get("/portfolio/:id", portfolioH.Get)
	api.Post("/portfolio", senior, portfolioH.Create)
	api.Put("/portfolio/:id", senior, portfolioH.Update)
	api.Delete("/portfolio/:id", senior, portfolioH.Delete)

	api.Get("/portfolio-categories", categoryH.List)
	api.Get("/portfolio-categories/portfolios", categoryH.Portfolios)
	api.Post("/portfolio-categories", senior, categoryH.Create)
	api.Put("/portfolio-categories/:id", senior, categoryH.Update)
	api.Delete("/portfolio-categories/:id", senior, categoryH.Delete)

	// site content
	api.Get("/team", teamH.List)
	api.Get("/team/:key", teamH.Lookup)
	api.Post("/team", senior, teamH.Create)
	api.Put("/team/:id", senior, teamH.Update)
	api.Delete("/team/:id", senior, teamH.Delete)

	api.Get("/testimonials", siteH.ListTestimonials)
	api.Get("/testimonials/:id", siteH.GetTestimonial)
	api.Post("/testimonials", senior, siteH.CreateTestimonial)
	api.Put("/testimonials/:id", senior, siteH.UpdateTestimonial)
	api.Delete("/testimonials/:id", senior, siteH.DeleteTestimonial)

	api.Get("/pricing", siteH.ListPricing)
	api.Get("/pricing/:id", siteH.GetPricing)
	api.Post("/pricing", senior, siteH.CreatePricing)
	api.Put("/pricing/:id", senior, siteH.UpdatePricing)
	api.Delete("/pricing/:id", senior, siteH.DeletePricing)

	api.Get("/yourlogo", siteH.ListLogos)
	api.Get("/yourlogo/:id", siteH.GetLogo)
	api.Post("/yourlogo", senior, siteH.CreateLogo)
	api.Put("/yourlogo/:id", senior, siteH.UpdateLogo)
	api.Delete("/yourlogo/:id", senior, siteH.DeleteLogo)

	// leads
	api.Post("/client", leadH.CreateClient)
	api.Get("/client", senior, leadH.ListClients)
	api.Delete("/client/:id", senior, leadH.DeleteClient)

	api.Post("/contact", leadH.CreateContact)
	api.Get("/contact", senior, leadH.ListContacts)
	api.Patch("/contact/:id/status", senior, leadH.UpdateContactStatus)
	api.Delete("/contact/:id", senior, leadH.DeleteContact)

	// developer profiles
	api.Get("/developers", authed, developerH.List)
	api.Get("/developers/:id", authed, developerH.Get)
	api.Post("/developers", senior, developerH.Create)
	api.Put("/developers/:id", senior, developerH.Update)
	api.Delete("/developers/:id", senior, developerH.Delete)

	// dashboards
	api.Get("/dashboard/client", middleware.Gate(d.Tokens, models.RoleClient), handlers.Dashboard("Client"))
	api.Get("/dashboard/junior", middleware.Gate(d.Tokens, models.RoleJunior), handlers.Dashboard("Junior"))
	api.Get("/dashboard/middle", middleware.Gate(d.Tokens, models.RoleMiddle), handlers.Dashboard("Middle"))
	api.Get("/dashboard/senior", senior, handlers.Dashboard("Senior"))

	// aggregates
	api.Get("/analytics/developers", senior, insightH.DeveloperAnalytics)
	api.Get("/leaderboard", insightH.TopLeaderboard)
	api.Get("/leaderboard/full", senior, insightH.FullLeaderboard)
}
