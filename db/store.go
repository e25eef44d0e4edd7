package db

import (
	"context"
	"errors"
	"time"

	"HospitalHub/models"
)

const (
	AdminCollection    = "ADMIN"
	HospitalCollection = "HOSPITAL"
	DoctorCollection   = "DOCTOR"
	StaffCollection    = "STAFF"
)

var (
	ErrNotFound     = errors.New("account not found")
	ErrDuplicate    = errors.New("account already exists")
	ErrNotDeletable = errors.New("account kind cannot be deleted")
)

// Hasher is the one-way function the store applies to modified secrets.
type Hasher interface {
	Hash(plain string) (string, error)
}

// Store persists accounts across the four disjoint collections.
// Every write touches a single document.
type Store interface {
	// FindByEmail includes the password hash only when withSecret is set.
	FindByEmail(ctx context.Context, kind models.AccountKind, email string, withSecret bool) (models.Account, error)
	FindByID(ctx context.Context, kind models.AccountKind, id string, withSecret bool) (models.Account, error)
	// Save inserts accounts with a zero id and updates the rest. A secret set
	// with SetPassword is hashed here; an unmodified secret is never rewritten.
	Save(ctx context.Context, acc models.Account) error
	Delete(ctx context.Context, kind models.AccountKind, id string) error
	TouchLastLogin(ctx context.Context, kind models.AccountKind, id string, at time.Time) error
	ListHospitals(ctx context.Context, status models.ApprovalStatus) ([]*models.Hospital, error)
	ListStaff(ctx context.Context, hospitalID string) ([]*models.Doctor, []*models.Staff, error)
}

func CollectionName(kind models.AccountKind) string {
	switch kind {
	case models.KindAdmin:
		return AdminCollection
	case models.KindHospital:
		return HospitalCollection
	case models.KindDoctor:
		return DoctorCollection
	case models.KindStaff:
		return StaffCollection
	}
	return ""
}

func deletable(kind models.AccountKind) bool {
	return kind == models.KindDoctor || kind == models.KindStaff
}

// fields that are dropped from the document when empty and must be unset on update
var clearableFields = []string{"phoneNo", "address", "specialization", "rejectionReason"}
