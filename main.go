package main

import (
	"event_ticketing/database"
	"event_ticketing/helper"
	"event_ticketing/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "http://localhost:5173",
		AllowMethods: "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Authorization, Accept",
	}))

	database.ConnectDB()
	database.ConnectRedis()

	helper.StartEventStatusScheduler()
	defer helper.StopEventStatusScheduler()

	router.SetupRoutes(app)

	logrus.Fatal(app.Listen(":8002"))
}
