package models

import (
	"strings"
	"time"

	"HospitalHub/role"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccountKind selects the collection an account lives in.
type AccountKind string

const (
	KindAdmin    AccountKind = "admin"
	KindHospital AccountKind = "hospital"
	KindDoctor   AccountKind = "doctor"
	KindStaff    AccountKind = "staff"
)

// LoginOrder is the fixed priority in which collections are searched by email.
var LoginOrder = []AccountKind{KindAdmin, KindHospital, KindDoctor, KindStaff}

func (k AccountKind) Valid() bool {
	switch k {
	case KindAdmin, KindHospital, KindDoctor, KindStaff:
		return true
	}
	return false
}

// Account is implemented only by Admin, Hospital, Doctor and Staff.
type Account interface {
	Kind() AccountKind
	Identity() Identity
	Base() *AccountBase
	clone() Account
}

// AccountBase holds the attributes every account variant carries.
type AccountBase struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password,omitempty"`
	PhoneNo   string             `json:"phoneNo,omitempty" bson:"phoneNo,omitempty"`
	IsActive  bool               `json:"isActive" bson:"isActive"`
	LastLogin *time.Time         `json:"lastLogin,omitempty" bson:"lastLogin,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`

	newPassword string
	passwordSet bool
}

func (b *AccountBase) Base() *AccountBase { return b }

// SetPassword records a plaintext secret. The store hashes it on the next save.
func (b *AccountBase) SetPassword(plain string) {
	b.newPassword = plain
	b.passwordSet = true
}

func (b *AccountBase) PasswordModified() bool { return b.passwordSet }

// ApplyPendingPassword hashes a secret recorded with SetPassword and clears it.
// Accounts whose secret was not modified are left untouched.
func ApplyPendingPassword(a Account, hash func(string) (string, error)) error {
	b := a.Base()
	if !b.passwordSet {
		return nil
	}
	hashed, err := hash(b.newPassword)
	if err != nil {
		return err
	}
	b.Password = hashed
	b.newPassword = ""
	b.passwordSet = false
	return nil
}

// Clone returns a deep copy that does not share mutable state with a.
func Clone(a Account) Account {
	if a == nil {
		return nil
	}
	return a.clone()
}

// WithoutSecret returns a copy with the password hash stripped.
func WithoutSecret(a Account) Account {
	c := Clone(a)
	if c != nil {
		c.Base().Password = ""
	}
	return c
}

// NormalizeEmail is applied before every email lookup and write.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewAccount returns an empty document of the given kind, used for decoding.
func NewAccount(kind AccountKind) Account {
	switch kind {
	case KindAdmin:
		return &Admin{}
	case KindHospital:
		return &Hospital{}
	case KindDoctor:
		return &Doctor{}
	case KindStaff:
		return &Staff{}
	}
	return nil
}

func (b AccountBase) copyBase() AccountBase {
	c := b
	if b.LastLogin != nil {
		t := *b.LastLogin
		c.LastLogin = &t
	}
	return c
}

func (b *AccountBase) identity(kind AccountKind, r role.Role, hospitalID string) Identity {
	return Identity{
		ID:         b.ID.Hex(),
		Kind:       kind,
		Role:       r,
		Name:       b.Name,
		Email:      b.Email,
		HospitalID: hospitalID,
		IsActive:   b.IsActive,
	}
}
