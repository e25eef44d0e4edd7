package models

import (
	"HospitalHub/role"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Staff is a non-practitioner hospital employee (nurse, receptionist, ...).
type Staff struct {
	AccountBase `bson:",inline"`
	HospitalID  primitive.ObjectID `json:"hospitalId" bson:"hospitalId"`
	Role        role.Role          `json:"role" bson:"role"`
}

func (s *Staff) Kind() AccountKind { return KindStaff }

func (s *Staff) Identity() Identity {
	return s.identity(KindStaff, s.Role, s.HospitalID.Hex())
}

func (s *Staff) clone() Account {
	c := *s
	c.AccountBase = s.copyBase()
	return &c
}
