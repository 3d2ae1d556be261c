//go:generate swag init --output ./docs --outputTypes json

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	log "github.com/sirupsen/logrus"
	"probation-eval-backend/config"
	apiv1 "probation-eval-backend/controllers/v1"
	"probation-eval-backend/fiberlog"
	"probation-eval-backend/initializers"
	"probation-eval-backend/lib/ws"
	"probation-eval-backend/middleware"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		BodyLimit: config.Conf.App.BodyLimitMb * 1024 * 1024,
	})
	app.Use(fiberRecover.New())
	app.Use(requestid.New())

	swaggerCfg := swagger.Config{
		Path:     "/swagger",
		FilePath: "./docs/swagger.json",
	}
	app.Use(swagger.New(swaggerCfg))

	//api
	apiV1 := fiber.New()
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	app.Mount("/api/v1", apiV1)
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + middleware.AccessTokenHeader,
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))
	// подписи в теле запроса, таблицы только через /sheet
	apiV1.Use(middleware.WithBodyLimit(2*1024*1024, "/sheet"))
	apiv1.InitAuthApiRouters(apiV1)

	//доступ по ссылке
	apiv1.InitGuestApiRouters(apiV1)

	//сотрудники, регистрируются последними: группа без префикса перехватывает все остальные пути
	staff := apiV1.Group("", middleware.AuthorizationRequired(), middleware.RbacMiddleware())
	apiv1.InitEvaluationApiRouters(staff)
	apiv1.InitEmployeeApiRouters(staff)
	apiv1.InitSheetApiRouters(staff)
	apiv1.InitSettingsApiRouters(staff)
	apiv1.InitExecApiRouters(staff)
	staff.Route("ws", ws.InitWs)

	app.Hooks().OnShutdown()

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	wg := sync.WaitGroup{}
	go func() {
		_ = <-c
		wg.Add(1)
		defer wg.Done()
		log.Info("Gracefully shutting down...")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		time.Sleep(time.Second)
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
