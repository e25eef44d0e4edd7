package db

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"HospitalHub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore keeps accounts in process memory. It enforces the same
// per-collection uniqueness as the Mongo indexes and is used for local runs
// (STORE_DRIVER=memory) and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	hasher   Hasher
	now      func() time.Time
	accounts map[models.AccountKind]map[primitive.ObjectID]models.Account
	writes   int
}

func NewMemoryStore(hasher Hasher) *MemoryStore {
	return &MemoryStore{
		hasher: hasher,
		now:    time.Now,
		accounts: map[models.AccountKind]map[primitive.ObjectID]models.Account{
			models.KindAdmin:    {},
			models.KindHospital: {},
			models.KindDoctor:   {},
			models.KindStaff:    {},
		},
	}
}

// Writes returns the number of successful write operations, for tests.
func (s *MemoryStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

func (s *MemoryStore) FindByEmail(_ context.Context, kind models.AccountKind, email string, withSecret bool) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	coll, ok := s.accounts[kind]
	if !ok {
		return nil, errors.New("unknown account kind")
	}
	email = models.NormalizeEmail(email)
	for _, acc := range coll {
		if acc.Base().Email == email {
			return project(acc, withSecret), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FindByID(_ context.Context, kind models.AccountKind, id string, withSecret bool) (models.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[kind][oid]
	if !ok {
		return nil, ErrNotFound
	}
	return project(acc, withSecret), nil
}

func (s *MemoryStore) Save(_ context.Context, acc models.Account) error {
	b := acc.Base()
	b.Email = models.NormalizeEmail(b.Email)
	secretModified := b.PasswordModified()
	if err := models.ApplyPendingPassword(acc, s.hasher.Hash); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	coll, ok := s.accounts[acc.Kind()]
	if !ok {
		return errors.New("unknown account kind")
	}
	now := s.now().UTC()

	if b.ID.IsZero() {
		if b.Password == "" {
			return errors.New("a new account requires a password")
		}
		if conflicts(coll, acc, primitive.NilObjectID) {
			return ErrDuplicate
		}
		b.ID = primitive.NewObjectID()
		b.CreatedAt = now
		b.UpdatedAt = now
		coll[b.ID] = models.Clone(acc)
		s.writes++
		return nil
	}

	stored, ok := coll[b.ID]
	if !ok {
		return ErrNotFound
	}
	if conflicts(coll, acc, b.ID) {
		return ErrDuplicate
	}
	b.UpdatedAt = now
	next := models.Clone(acc)
	nb := next.Base()
	sb := stored.Base()
	nb.CreatedAt = sb.CreatedAt
	if !secretModified {
		nb.Password = sb.Password
	}
	nb.LastLogin = sb.LastLogin
	if h, ok := next.(*models.Hospital); ok && h.ApprovedAt == nil {
		prev := stored.(*models.Hospital)
		h.ApprovedAt = prev.ApprovedAt
		if h.ApprovedBy == "" {
			h.ApprovedBy = prev.ApprovedBy
		}
	}
	coll[b.ID] = next
	s.writes++
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, kind models.AccountKind, id string) error {
	if !deletable(kind) {
		return ErrNotDeletable
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[kind][oid]; !ok {
		return ErrNotFound
	}
	delete(s.accounts[kind], oid)
	s.writes++
	return nil
}

func (s *MemoryStore) TouchLastLogin(_ context.Context, kind models.AccountKind, id string, at time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[kind][oid]
	if !ok {
		return ErrNotFound
	}
	t := at.UTC()
	acc.Base().LastLogin = &t
	s.writes++
	return nil
}

func (s *MemoryStore) ListHospitals(_ context.Context, status models.ApprovalStatus) ([]*models.Hospital, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hospitals := []*models.Hospital{}
	for _, acc := range s.accounts[models.KindHospital] {
		h := acc.(*models.Hospital)
		if status != "" && h.ApprovalStatus != status {
			continue
		}
		hospitals = append(hospitals, project(h, false).(*models.Hospital))
	}
	sort.Slice(hospitals, func(i, j int) bool {
		return hospitals[i].CreatedAt.Before(hospitals[j].CreatedAt)
	})
	return hospitals, nil
}

func (s *MemoryStore) ListStaff(_ context.Context, hospitalID string) ([]*models.Doctor, []*models.Staff, error) {
	doctors := []*models.Doctor{}
	staff := []*models.Staff{}
	oid, err := primitive.ObjectIDFromHex(hospitalID)
	if err != nil {
		return doctors, staff, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, acc := range s.accounts[models.KindDoctor] {
		if d := acc.(*models.Doctor); d.HospitalID == oid {
			doctors = append(doctors, project(d, false).(*models.Doctor))
		}
	}
	for _, acc := range s.accounts[models.KindStaff] {
		if st := acc.(*models.Staff); st.HospitalID == oid {
			staff = append(staff, project(st, false).(*models.Staff))
		}
	}
	sort.Slice(doctors, func(i, j int) bool { return doctors[i].Name < doctors[j].Name })
	sort.Slice(staff, func(i, j int) bool { return staff[i].Name < staff[j].Name })
	return doctors, staff, nil
}

func project(acc models.Account, withSecret bool) models.Account {
	if withSecret {
		return models.Clone(acc)
	}
	return models.WithoutSecret(acc)
}

// conflicts mirrors the unique indexes created by the migrations.
func conflicts(coll map[primitive.ObjectID]models.Account, acc models.Account, self primitive.ObjectID) bool {
	for id, other := range coll {
		if id == self {
			continue
		}
		if other.Base().Email == acc.Base().Email {
			return true
		}
		h, ok := acc.(*models.Hospital)
		if !ok {
			continue
		}
		oh := other.(*models.Hospital)
		if oh.RegistrationNumber == h.RegistrationNumber || oh.LicenseNumber == h.LicenseNumber {
			return true
		}
	}
	return false
}
