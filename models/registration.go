package models

type HospitalRegistration struct {
	Name               string `json:"name" binding:"required"`
	RegistrationNumber string `json:"registrationNumber" binding:"required"`
	LicenseNumber      string `json:"licenseNumber" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	Password           string `json:"password" binding:"required"`
	PhoneNo            string `json:"phoneNo"`
	Address            string `json:"address"`
}

type Rejection struct {
	Reason string `json:"reason" binding:"required"`
}

type ActiveToggle struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

type NewDoctor struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required"`
	PhoneNo        string `json:"phoneNo"`
	Specialization string `json:"specialization"`
}

type NewStaff struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	PhoneNo  string `json:"phoneNo"`
	Role     string `json:"role" binding:"required"`
}

type NewAdmin struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// StaffDirectory is the per-hospital listing returned to hospital admins.
type StaffDirectory struct {
	Doctors []*Doctor `json:"doctors"`
	Staff   []*Staff  `json:"staff"`
}
