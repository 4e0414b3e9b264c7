package main

import (
	"agora/config"
	"agora/database"
	adminRoutes "agora/routers/adminRoutes"
	agentRoutes "agora/routers/agentRoutes"
	authRoutes "agora/routers/authRoutes"
	dealRoutes "agora/routers/dealRoutes"
	forumRoutes "agora/routers/forumRoutes"
	notificationRoutes "agora/routers/notificationRoutes"
	userRoutes "agora/routers/userRoutes"
	"agora/utils"
	"agora/workflow"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	// Workflow engine policy comes from config
	workflow.StoreTimeout = time.Duration(config.AppConfig.StoreTimeoutSeconds) * time.Second
	workflow.AssessmentRetractsReview = config.AppConfig.AssessmentRetractsReview
	workflow.NotifyHook = utils.DispatchNotification

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	forumRoutes.SetupForumRoutes(app)
	agentRoutes.SetupAgentRoutes(app)
	dealRoutes.SetupDealRoutes(app)
	adminRoutes.SetupAdminRoutes(app)
	notificationRoutes.SetupNotificationRoutes(app)

	utils.StartDealScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
