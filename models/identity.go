package models

import "HospitalHub/role"

// Identity is the resolved, secret-free view of an account attached to a request.
type Identity struct {
	ID         string      `json:"id"`
	Kind       AccountKind `json:"userType"`
	Role       role.Role   `json:"role"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	HospitalID string      `json:"hospitalId,omitempty"`
	IsActive   bool        `json:"isActive"`
	// Bootstrap marks the configured seed super-admin, which has no stored record.
	Bootstrap bool `json:"bootstrap,omitempty"`
}

// Profile is the sanitized account view returned to clients.
type Profile struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Role       role.Role   `json:"role"`
	UserType   AccountKind `json:"userType"`
	HospitalID string      `json:"hospitalId,omitempty"`
}

func (i Identity) Profile() Profile {
	return Profile{
		ID:         i.ID,
		Name:       i.Name,
		Email:      i.Email,
		Role:       i.Role,
		UserType:   i.Kind,
		HospitalID: i.HospitalID,
	}
}
