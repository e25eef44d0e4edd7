package routes

import (
	"net/http"

	"HospitalHub/authorization"
	"HospitalHub/controllers"
	"HospitalHub/metrics"
	"HospitalHub/middleware"
	"HospitalHub/services"

	"github.com/gin-gonic/gin"
)

func Routes(r *gin.Engine, svc *services.Service, throttle *middleware.Throttle) {
	ctl := controllers.New(svc)

	//public
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	controllers.Auth(r, ctl, throttle)
	controllers.HospitalRegistration(r, ctl)

	//privateroutes
	r.Use(authorization.JWTAuth(svc))
	controllers.Account(r, ctl)
	controllers.SuperAdmin(r, ctl)
	controllers.Tenant(r, ctl)
	controllers.Hospital(r, ctl)
	controllers.Staff(r, ctl)
}
