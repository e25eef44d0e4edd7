package authorization

import (
	"context"
	"strings"

	"HospitalHub/metrics"
	"HospitalHub/models"
	"HospitalHub/role"
	"HospitalHub/services"
	"HospitalHub/util"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const userKey = "user"

type Resolver interface {
	Resolve(ctx context.Context, rawToken string) (models.Identity, error)
}

/*
* Read the bearer token from the Authorization header
* Resolve it to the current account identity
* Attach the identity to the context under "user"
 */
func JWTAuth(resolver Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := resolver.Resolve(c.Request.Context(), bearerToken(c.GetHeader("Authorization")))
		if err != nil {
			if util.StatusCode(err) >= 500 {
				log.WithError(err).Error("Failed resolving identity")
			}
			c.AbortWithStatusJSON(util.StatusCode(err), util.FailedResponse(err))
			return
		}
		c.Set(userKey, identity)
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// CurrentUser returns the identity attached by JWTAuth.
func CurrentUser(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return models.Identity{}, false
	}
	identity, ok := v.(models.Identity)
	return identity, ok
}

// Authorize permits the request iff the resolved role is one of roles.
func Authorize(roles ...role.Role) gin.HandlerFunc {
	return gate(func(identity models.Identity) error {
		return services.CheckRole(identity, roles...)
	})
}

func PlatformAdminOnly() gin.HandlerFunc { return gate(services.IsPlatformAdmin) }

func SuperAdminOnly() gin.HandlerFunc { return gate(services.IsSuperAdmin) }

func HospitalAdminOnly() gin.HandlerFunc { return gate(services.IsHospitalAdmin) }

func gate(check func(models.Identity) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentUser(c)
		if !ok {
			err := util.NewError(util.KindUnauthorized, util.NOT_AUTHORIZED_NO_TOKEN)
			c.AbortWithStatusJSON(util.StatusCode(err), util.FailedResponse(err))
			return
		}
		if err := check(identity); err != nil {
			metrics.AuthRejections.WithLabelValues("forbidden").Inc()
			log.WithFields(log.Fields{"role": identity.Role, "path": c.FullPath()}).Info("Role not permitted")
			c.AbortWithStatusJSON(util.StatusCode(err), util.FailedResponse(err))
			return
		}
		c.Next()
	}
}
