package main

import (
	"context"

	"HospitalHub/config"
	"HospitalHub/jobs"
	"HospitalHub/migrations"
	"HospitalHub/routes"
	"HospitalHub/server"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

var (
	startServer = server.Start
	loadConfig  = config.Load
	isTest      = false
)

func main() {
	run()
}

func run() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal("Error in loading the config: ", err)
	}
	cfg.ConfigureLogger()

	defaultopts := server.GetDefaultOptions(cfg)

	options := server.Options{
		Config:           cfg,
		CacheEnabled:     defaultopts.CacheEnabled,
		MongoEnabled:     defaultopts.MongoEnabled,
		WebServerEnabled: defaultopts.WebServerEnabled,
		WebServerPort:    defaultopts.WebServerPort,

		JobsEnabled: defaultopts.JobsEnabled && !isTest,
		JobsHandler: func(rt *server.Runtime) {
			if isTest {
				return
			}
			if _, err := jobs.StartDailyScheduler(rt.Store); err != nil {
				log.Println("Error starting daily scheduler:", err)
			}
		},

		WebServerPreHandler: func(r *gin.Engine, rt *server.Runtime) {
			r.Use(cors.New(cors.Config{
				AllowOrigins:     cfg.AllowedOrigins,
				AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
				AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
				ExposeHeaders:    []string{"X-Request-ID"},
				AllowCredentials: !allowsAnyOrigin(cfg.AllowedOrigins),
			}))
			routes.Routes(r, rt.Service, rt.Throttle)
		},

		MigrationEnabled: defaultopts.MigrationEnabled && !isTest,
		MigrationHandler: func(ctx context.Context, rt *server.Runtime) error {
			if isTest || rt.Mongo == nil {
				return nil
			}
			return migrations.Run(ctx, rt.Mongo)
		},
	}
	startServer(options)
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
