package models

import (
	"time"

	"HospitalHub/role"
)

// ApprovalStatus gates whether a registered hospital may be used at all.
type ApprovalStatus string

const (
	StatusPending   ApprovalStatus = "pending"
	StatusApproved  ApprovalStatus = "approved"
	StatusRejected  ApprovalStatus = "rejected"
	StatusSuspended ApprovalStatus = "suspended"
)

func (s ApprovalStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusSuspended:
		return true
	}
	return false
}

// Hospital is the tenant organization. Its own login acts as the hospital admin.
type Hospital struct {
	AccountBase        `bson:",inline"`
	RegistrationNumber string         `json:"registrationNumber" bson:"registrationNumber"`
	LicenseNumber      string         `json:"licenseNumber" bson:"licenseNumber"`
	Address            string         `json:"address,omitempty" bson:"address,omitempty"`
	ApprovalStatus     ApprovalStatus `json:"approvalStatus" bson:"approvalStatus"`
	ApprovedBy         string         `json:"approvedBy,omitempty" bson:"approvedBy,omitempty"`
	ApprovedAt         *time.Time     `json:"approvedAt,omitempty" bson:"approvedAt,omitempty"`
	RejectionReason    string         `json:"rejectionReason,omitempty" bson:"rejectionReason,omitempty"`
}

func (h *Hospital) Kind() AccountKind { return KindHospital }

func (h *Hospital) Identity() Identity {
	return h.identity(KindHospital, role.HospitalAdmin, h.ID.Hex())
}

// Usable reports whether the hospital and, transitively, its staff may log in.
func (h *Hospital) Usable() bool {
	return h.IsActive && h.ApprovalStatus == StatusApproved
}

func (h *Hospital) clone() Account {
	c := *h
	c.AccountBase = h.copyBase()
	if h.ApprovedAt != nil {
		t := *h.ApprovedAt
		c.ApprovedAt = &t
	}
	return &c
}
