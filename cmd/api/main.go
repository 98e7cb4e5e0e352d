package main

import (
	"log"
	"time"

	"github.com/framestack/framestack_backend/chat"
	config "github.com/framestack/framestack_backend/configs"
	"github.com/framestack/framestack_backend/database"
	"github.com/framestack/framestack_backend/jobs"
	"github.com/framestack/framestack_backend/notifications"
	"github.com/framestack/framestack_backend/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	notifications.InitEmailService()

	c := cron.New()
	c.AddFunc("0 0 * * *", jobs.ResetExpiredPlans)
	go c.Start()
	log.Println("✅ Cron job for plan expiry scheduled successfully.")

	relay := newRelay()
	defer relay.Shutdown()
	store := chat.NewMessageStore(database.DB)

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "FrameStack",
		CaseSensitive:     true,
		StrictRouting:     false,
		EnablePrintRoutes: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	// ${path} never carries the query string, so chat tokens stay out of the
	// access log.
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to FrameStack API",
		})
	})

	routes.AuthRoutes(app)
	routes.OrderRoutes(app)
	routes.WebsiteRoutes(app)
	routes.TemplateRoutes(app)
	routes.ContactRoutes(app)
	routes.ChatRoutes(app, relay, store)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Println("✅ Server is running on port 8080")
	err := app.Listen(":8080")
	if err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}

// newRelay wires the optional cross-instance bridge when REDIS_URL is set;
// otherwise the relay is purely in-process.
func newRelay() *chat.Relay {
	redisURL := config.Config("REDIS_URL")
	if redisURL == "" {
		return chat.NewRelay()
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("🔥 Invalid REDIS_URL: %v", err)
	}
	log.Println("✅ Relay bridge enabled via Redis")
	return chat.NewRelayWithBridge(redis.NewClient(opts))
}
