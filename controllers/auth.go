package controllers

import (
	"net/http"

	"HospitalHub/middleware"
	"HospitalHub/models"
	"HospitalHub/util"

	"github.com/gin-gonic/gin"
)

// Auth registers the public login route.
func Auth(router gin.IRouter, ctl *Controller, throttle *middleware.Throttle) {
	auth := router.Group("/api/auth")
	{
		auth.POST("/login", middleware.LoginThrottle(throttle), ctl.Login)
	}
}

// Account registers the self-service routes. They must sit behind JWTAuth.
func Account(router gin.IRouter, ctl *Controller) {
	account := router.Group("/api/auth")
	{
		account.GET("/me", ctl.Me)
		account.PUT("/password", ctl.ChangePassword)
		account.PUT("/profile", ctl.UpdateProfile)
	}
}

/*
* Bind email and password, a missing field is a 400
* Pass to the login service and flatten token and user into the envelope
 */
func (ctl *Controller) Login(c *gin.Context) {
	var req models.Login
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, util.Validation(util.EMAIL_AND_PASSWORD_REQUIRED))
		return
	}
	res, err := ctl.svc.Login(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.LoginResponse{
		Success: true,
		Message: util.LOGIN_SUCCESSFUL,
		Token:   res.Token,
		User:    res.User,
	})
}

func (ctl *Controller) Me(c *gin.Context) {
	identity, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(ctl.svc.Me(identity)))
}

func (ctl *Controller) ChangePassword(c *gin.Context) {
	identity, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.ChangePassword
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	if err := ctl.svc.ChangePassword(c.Request.Context(), identity, req); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.MessageResponse(util.PASSWORD_CHANGED, nil))
}

func (ctl *Controller) UpdateProfile(c *gin.Context) {
	identity, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.UpdateProfile
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	profile, err := ctl.svc.UpdateProfile(c.Request.Context(), identity, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.MessageResponse(util.PROFILE_UPDATED, profile))
}
