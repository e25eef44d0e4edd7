package controllers

import (
	"HospitalHub/authorization"
	"HospitalHub/models"
	"HospitalHub/services"
	"HospitalHub/util"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Controller binds HTTP requests to the service layer.
type Controller struct {
	svc *services.Service
}

func New(svc *services.Service) *Controller {
	return &Controller{svc: svc}
}

func fail(c *gin.Context, err error) {
	code := util.StatusCode(err)
	if code >= 500 {
		log.WithError(err).WithField("path", c.FullPath()).Error("Request failed")
	}
	c.JSON(code, util.FailedResponse(err))
}

func invalidBody(c *gin.Context, err error) {
	fail(c, util.Validation("invalid request body: "+err.Error()))
}

// currentUser is only used behind JWTAuth, so a missing identity is a wiring bug.
func currentUser(c *gin.Context) (models.Identity, bool) {
	identity, ok := authorization.CurrentUser(c)
	if !ok {
		fail(c, util.NewError(util.KindUnauthorized, util.NOT_AUTHORIZED_NO_TOKEN))
	}
	return identity, ok
}
