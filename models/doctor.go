package models

import (
	"HospitalHub/role"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Doctor is a practitioner employed by a hospital.
type Doctor struct {
	AccountBase    `bson:",inline"`
	HospitalID     primitive.ObjectID `json:"hospitalId" bson:"hospitalId"`
	Specialization string             `json:"specialization,omitempty" bson:"specialization,omitempty"`
}

func (d *Doctor) Kind() AccountKind { return KindDoctor }

func (d *Doctor) Identity() Identity {
	return d.identity(KindDoctor, role.Doctor, d.HospitalID.Hex())
}

func (d *Doctor) clone() Account {
	c := *d
	c.AccountBase = d.copyBase()
	return &c
}
