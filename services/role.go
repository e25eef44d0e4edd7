package services

import (
	"HospitalHub/models"
	"HospitalHub/role"
	"HospitalHub/util"
)

// CheckRole permits the identity iff its role is one of allowed. It performs no I/O.
func CheckRole(identity models.Identity, allowed ...role.Role) error {
	if identity.Role.In(allowed...) {
		return nil
	}
	return util.Errorf(util.KindForbidden, "role %s is not authorized to access this route", identity.Role)
}

func IsPlatformAdmin(identity models.Identity) error {
	return CheckRole(identity, role.PlatformRoles...)
}

func IsSuperAdmin(identity models.Identity) error {
	return CheckRole(identity, role.SuperAdmin)
}

func IsHospitalAdmin(identity models.Identity) error {
	return CheckRole(identity, role.HospitalAdmin)
}
