package models

import "HospitalHub/role"

// Admin is a platform administrator.
type Admin struct {
	AccountBase `bson:",inline"`
	Role        role.Role `json:"role" bson:"role"`
}

func (a *Admin) Kind() AccountKind { return KindAdmin }

func (a *Admin) Identity() Identity {
	return a.identity(KindAdmin, a.Role, "")
}

func (a *Admin) clone() Account {
	c := *a
	c.AccountBase = a.copyBase()
	return &c
}
