package controllers

import (
	"net/http"

	"HospitalHub/authorization"
	"HospitalHub/models"
	"HospitalHub/util"

	"github.com/gin-gonic/gin"
)

// Staff registers the tenant-scoped staff routes, hospital admins only.
func Staff(router gin.IRouter, ctl *Controller) {
	staff := router.Group("/api/staff", authorization.HospitalAdminOnly())
	{
		staff.POST("/doctors", ctl.CreateDoctor)
		staff.POST("", ctl.CreateStaff)
		staff.GET("", ctl.ListStaff)
		staff.PUT("/:kind/:id/active", ctl.SetStaffActive)
		staff.DELETE("/:kind/:id", ctl.DeleteStaff)
	}
}

func (ctl *Controller) CreateStaff(c *gin.Context) {
	identity, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.NewStaff
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	st, err := ctl.svc.CreateStaff(c.Request.Context(), identity, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.MessageResponse(util.STAFF_CREATED, st))
}

func (ctl *Controller) ListStaff(c *gin.Context) {
	identity, ok := currentUser(c)
	if !ok {
		return
	}
	dir, err := ctl.svc.ListStaff(c.Request.Context(), identity)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(dir))
}

func (ctl *Controller) SetStaffActive(c *gin.Context) {
	identity, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.ActiveToggle
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	acc, err := ctl.svc.SetStaffActive(c.Request.Context(), identity, c.Param("kind"), c.Param("id"), *req.IsActive)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.MessageResponse(util.STAFF_UPDATED, acc))
}

func (ctl *Controller) DeleteStaff(c *gin.Context) {
	identity, ok := currentUser(c)
	if !ok {
		return
	}
	if err := ctl.svc.DeleteStaff(c.Request.Context(), identity, c.Param("kind"), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.MessageResponse(util.STAFF_DELETED, nil))
}
