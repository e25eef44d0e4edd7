package controllers

import (
	"net/http"

	"HospitalHub/authorization"
	"HospitalHub/models"
	"HospitalHub/util"

	"github.com/gin-gonic/gin"
)

func SuperAdmin(router gin.IRouter, ctl *Controller) {
	router.POST("/api/admins", authorization.SuperAdminOnly(), ctl.CreateAdmin)
}

func (ctl *Controller) CreateAdmin(c *gin.Context) {
	var req models.NewAdmin
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	a, err := ctl.svc.CreateAdmin(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.MessageResponse(util.ADMIN_CREATED, a))
}
