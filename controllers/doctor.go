package controllers

import (
	"net/http"

	"HospitalHub/models"
	"HospitalHub/util"

	"github.com/gin-gonic/gin"
)

func (ctl *Controller) CreateDoctor(c *gin.Context) {
	identity, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.NewDoctor
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	d, err := ctl.svc.CreateDoctor(c.Request.Context(), identity, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.MessageResponse(util.DOCTOR_CREATED, d))
}
