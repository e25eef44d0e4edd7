package controllers

import (
	"net/http"

	"HospitalHub/authorization"
	"HospitalHub/models"
	"HospitalHub/role"
	"HospitalHub/util"

	"github.com/gin-gonic/gin"
)

// HospitalRegistration registers the public self-registration route.
func HospitalRegistration(router gin.IRouter, ctl *Controller) {
	router.POST("/api/hospitals/register", ctl.RegisterHospital)
}

func Hospital(router gin.IRouter, ctl *Controller) {
	hospital := router.Group("/api/hospitals")
	{
		hospital.GET("", authorization.PlatformAdminOnly(), ctl.ListHospitals)
		hospital.GET("/:id", authorization.Authorize(role.Admin, role.SuperAdmin, role.HospitalAdmin), ctl.GetHospital)
	}
}

func (ctl *Controller) RegisterHospital(c *gin.Context) {
	var req models.HospitalRegistration
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	h, err := ctl.svc.RegisterHospital(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.MessageResponse(util.HOSPITAL_REGISTERED, h))
}

func (ctl *Controller) ListHospitals(c *gin.Context) {
	list, err := ctl.svc.ListHospitals(c.Request.Context(), c.Query("status"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(list))
}

func (ctl *Controller) GetHospital(c *gin.Context) {
	identity, ok := currentUser(c)
	if !ok {
		return
	}
	h, err := ctl.svc.GetHospital(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(h))
}
