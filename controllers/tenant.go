package controllers

import (
	"net/http"

	"HospitalHub/authorization"
	"HospitalHub/models"
	"HospitalHub/util"

	"github.com/gin-gonic/gin"
)

// Tenant registers the approval lifecycle routes, platform admins only.
func Tenant(router gin.IRouter, ctl *Controller) {
	tenant := router.Group("/api/hospitals/:id", authorization.PlatformAdminOnly())
	{
		tenant.PUT("/approve", ctl.ApproveHospital)
		tenant.PUT("/reject", ctl.RejectHospital)
		tenant.PUT("/suspend", ctl.SuspendHospital)
		tenant.PUT("/active", ctl.SetHospitalActive)
	}
}

func (ctl *Controller) ApproveHospital(c *gin.Context) {
	identity, ok := currentUser(c)
	if !ok {
		return
	}
	h, err := ctl.svc.ApproveHospital(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.MessageResponse(util.HOSPITAL_UPDATED, h))
}

func (ctl *Controller) RejectHospital(c *gin.Context) {
	var req models.Rejection
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, util.Validation(util.REJECTION_REASON_REQUIRED))
		return
	}
	h, err := ctl.svc.RejectHospital(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.MessageResponse(util.HOSPITAL_UPDATED, h))
}

func (ctl *Controller) SuspendHospital(c *gin.Context) {
	h, err := ctl.svc.SuspendHospital(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.MessageResponse(util.HOSPITAL_UPDATED, h))
}

func (ctl *Controller) SetHospitalActive(c *gin.Context) {
	var req models.ActiveToggle
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	h, err := ctl.svc.SetHospitalActive(c.Request.Context(), c.Param("id"), *req.IsActive)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.MessageResponse(util.HOSPITAL_UPDATED, h))
}
