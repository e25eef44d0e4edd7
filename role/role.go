package role

import (
	"fmt"
	"slices"
	"strings"
)

// Role is the closed set of roles an authenticated identity can carry.
type Role string

const (
	SuperAdmin    Role = "super_admin"
	Admin         Role = "admin"
	HospitalAdmin Role = "hospital_admin"
	Doctor        Role = "doctor"
	Nurse         Role = "nurse"
	Receptionist  Role = "receptionist"
	Pharmacist    Role = "pharmacist"
	LabTechnician Role = "lab_technician"
	Accountant    Role = "accountant"
)

// StaffRoles are the role names a general staff account may hold.
var StaffRoles = []Role{Nurse, Receptionist, Pharmacist, LabTechnician, Accountant}

// PlatformRoles are the roles stored on platform administrator records.
var PlatformRoles = []Role{Admin, SuperAdmin}

func (r Role) String() string { return string(r) }

func (r Role) IsPlatformAdmin() bool {
	return r == Admin || r == SuperAdmin
}

func (r Role) IsStaffRole() bool {
	return slices.Contains(StaffRoles, r)
}

// In reports whether r is one of allowed.
func (r Role) In(allowed ...Role) bool {
	return slices.Contains(allowed, r)
}

func ParseStaffRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsStaffRole() {
		return "", fmt.Errorf("invalid staff role %q", s)
	}
	return r, nil
}

func ParsePlatformRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if r == "" {
		return Admin, nil
	}
	if !r.IsPlatformAdmin() {
		return "", fmt.Errorf("invalid administrator role %q", s)
	}
	return r, nil
}
