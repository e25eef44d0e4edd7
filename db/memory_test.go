package db

import (
	"context"
	"testing"
	"time"

	"HospitalHub/models"
	"HospitalHub/role"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type prefixHasher struct{ calls int }

func (h *prefixHasher) Hash(p string) (string, error) {
	h.calls++
	return "hashed:" + p, nil
}

func newHospital(email, reg, lic string) *models.Hospital {
	h := &models.Hospital{
		AccountBase:        models.AccountBase{Name: "Acme Hospital", Email: email, IsActive: true},
		RegistrationNumber: reg,
		LicenseNumber:      lic,
		ApprovalStatus:     models.StatusPending,
	}
	h.SetPassword("secret1")
	return h
}

func TestMemoryStore_SaveHashesOnlyModifiedSecret(t *testing.T) {
	ctx := context.Background()
	hasher := &prefixHasher{}
	s := NewMemoryStore(hasher)

	h := newHospital("Acme@Example.com", "REG-1", "LIC-1")
	require.NoError(t, s.Save(ctx, h))
	assert.False(t, h.ID.IsZero())
	assert.Equal(t, 1, hasher.calls)

	stored, err := s.FindByEmail(ctx, models.KindHospital, "acme@example.com", true)
	require.NoError(t, err)
	assert.Equal(t, "hashed:secret1", stored.Base().Password)

	// unrelated update from a projection without the secret keeps the hash
	plain, err := s.FindByID(ctx, models.KindHospital, h.ID.Hex(), false)
	require.NoError(t, err)
	assert.Empty(t, plain.Base().Password)
	plain.Base().Name = "Acme General"
	require.NoError(t, s.Save(ctx, plain))
	assert.Equal(t, 1, hasher.calls)

	stored, err = s.FindByID(ctx, models.KindHospital, h.ID.Hex(), true)
	require.NoError(t, err)
	assert.Equal(t, "hashed:secret1", stored.Base().Password)
	assert.Equal(t, "Acme General", stored.Base().Name)
}

func TestMemoryStore_UniquenessPerCollection(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(&prefixHasher{})

	require.NoError(t, s.Save(ctx, newHospital("a@example.com", "REG-1", "LIC-1")))
	assert.ErrorIs(t, s.Save(ctx, newHospital("a@example.com", "REG-2", "LIC-2")), ErrDuplicate)
	assert.ErrorIs(t, s.Save(ctx, newHospital("b@example.com", "REG-1", "LIC-2")), ErrDuplicate)
	assert.ErrorIs(t, s.Save(ctx, newHospital("c@example.com", "REG-3", "LIC-1")), ErrDuplicate)

	// same email in another collection is allowed
	admin := &models.Admin{AccountBase: models.AccountBase{Name: "Root", Email: "a@example.com", IsActive: true}, Role: role.Admin}
	admin.SetPassword("secret1")
	assert.NoError(t, s.Save(ctx, admin))
}

func TestMemoryStore_TouchLastLoginAndDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(&prefixHasher{})
	hid := primitive.NewObjectID()

	d := &models.Doctor{AccountBase: models.AccountBase{Name: "Dr. Jane Doe", Email: "jane@example.com", IsActive: true}, HospitalID: hid}
	d.SetPassword("doctor123")
	require.NoError(t, s.Save(ctx, d))
	writes := s.Writes()

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, s.TouchLastLogin(ctx, models.KindDoctor, d.ID.Hex(), at))
	assert.Equal(t, writes+1, s.Writes())

	got, err := s.FindByID(ctx, models.KindDoctor, d.ID.Hex(), false)
	require.NoError(t, err)
	require.NotNil(t, got.Base().LastLogin)
	assert.Equal(t, at, *got.Base().LastLogin)

	stale := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	loaded := got.(*models.Doctor)
	loaded.LastLogin = &stale
	loaded.Name = "Dr. Jane Smith"
	require.NoError(t, s.Save(ctx, loaded))
	got, err = s.FindByID(ctx, models.KindDoctor, d.ID.Hex(), false)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Jane Smith", got.Base().Name)
	assert.Equal(t, at, *got.Base().LastLogin)

	doctors, staff, err := s.ListStaff(ctx, hid.Hex())
	require.NoError(t, err)
	assert.Len(t, doctors, 1)
	assert.Empty(t, staff)

	require.NoError(t, s.Delete(ctx, models.KindDoctor, d.ID.Hex()))
	_, err = s.FindByID(ctx, models.KindDoctor, d.ID.Hex(), false)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, models.KindDoctor, d.ID.Hex()), ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, models.KindHospital, d.ID.Hex()), ErrNotDeletable)
}

func TestMemoryStore_FindByIDInvalidHex(t *testing.T) {
	s := NewMemoryStore(&prefixHasher{})
	_, err := s.FindByID(context.Background(), models.KindAdmin, "not-an-id", false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ListHospitalsByStatus(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(&prefixHasher{})
	pending := newHospital("p@example.com", "R1", "L1")
	approved := newHospital("a@example.com", "R2", "L2")
	approved.ApprovalStatus = models.StatusApproved
	require.NoError(t, s.Save(ctx, pending))
	require.NoError(t, s.Save(ctx, approved))

	all, err := s.ListHospitals(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	only, err := s.ListHospitals(ctx, models.StatusPending)
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, "p@example.com", only[0].Email)
	assert.Empty(t, only[0].Password)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(&prefixHasher{})
	h := newHospital("x@example.com", "R", "L")
	require.NoError(t, s.Save(ctx, h))

	got, err := s.FindByID(ctx, models.KindHospital, h.ID.Hex(), false)
	require.NoError(t, err)
	got.(*models.Hospital).ApprovalStatus = models.StatusApproved

	again, err := s.FindByID(ctx, models.KindHospital, h.ID.Hex(), false)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, again.(*models.Hospital).ApprovalStatus)
}
