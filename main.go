package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"

	"dormku_backend/internals/configs"
	database "dormku_backend/internals/databases"
	billService "dormku_backend/internals/features/finance/bills/service"
	notifService "dormku_backend/internals/features/notifications/service"
	middlewares "dormku_backend/internals/middlewares"
	"dormku_backend/internals/mq"
	"dormku_backend/internals/mq/rabbitmq"
	routes "dormku_backend/internals/route"
	"dormku_backend/internals/scheduler"
	"dormku_backend/internals/workers"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// Request-ID + timing
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		// HTTP timeout guard (matches statement_timeout on the DB side)
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	})

	middlewares.SetupMiddlewares(app)

	// DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	rootCtx, stopBackground := context.WithCancel(context.Background())

	// Broker wiring. The HTTP surface stays up without a broker; jobs are
	// just not enqueued and the scheduler logs the misses.
	var publisher mq.Publisher
	var consumer *rabbitmq.Consumer
	if pub, err := rabbitmq.NewPublisher(configs.AMQPUrl); err != nil {
		log.Printf("⚠️ AMQP publisher unavailable: %v", err)
	} else {
		publisher = pub
	}

	composer := billService.NewBillComposer(database.DB)
	dispatcher := notifService.NewDispatcher(database.DB, notifService.NewLineClient(configs.LineChannelToken))

	if cons, err := rabbitmq.NewConsumer(configs.AMQPUrl); err != nil {
		log.Printf("⚠️ AMQP consumer unavailable: %v", err)
	} else {
		consumer = cons
		w := &workers.Workers{Composer: composer, Dispatcher: dispatcher, Publisher: publisher}
		w.Register(consumer)
		go func() {
			if err := consumer.Start(rootCtx); err != nil {
				log.Printf("❌ worker consumer stopped: %v", err)
			}
		}()
	}

	// Clock-driven jobs after DB is ready.
	scheduler.New(database.DB, composer, publisher).Start(rootCtx)

	routes.SetupRoutes(app, database.DB, publisher)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	stopBackground()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if consumer != nil {
		consumer.Close()
	}
	if publisher != nil {
		publisher.Close()
	}
	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
