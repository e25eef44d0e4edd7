package services

import (
	"context"
	"testing"
	"time"

	"HospitalHub/cache"
	"HospitalHub/config"
	"HospitalHub/db"
	"HospitalHub/models"
	"HospitalHub/password"
	"HospitalHub/role"
	"HospitalHub/token"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var platformAdmin = models.Identity{ID: "platform-admin", Kind: models.KindAdmin, Role: role.Admin, IsActive: true}

type testEnv struct {
	svc    *Service
	store  *db.MemoryStore
	tokens *token.Manager
}

func newTestEnv(t *testing.T, opts ...func(*Deps)) *testEnv {
	t.Helper()
	hasher := password.NewHasher(bcrypt.MinCost)
	store := db.NewMemoryStore(hasher)
	tokens, err := token.NewManager("test-secret", time.Hour, "hospitalhub-test")
	require.NoError(t, err)
	deps := Deps{
		Store:  store,
		Hasher: hasher,
		Tokens: tokens,
		Bootstrap: config.BootstrapAdmin{
			Name:     "Platform Owner",
			Email:    "owner@hospitalhub.test",
			Password: "bootstrap-secret",
		},
	}
	for _, o := range opts {
		o(&deps)
	}
	return &testEnv{svc: New(deps), store: store, tokens: tokens}
}

func withLimiter(l cache.LoginLimiter) func(*Deps) {
	return func(d *Deps) { d.Limiter = l }
}

func withCache(c cache.IdentityCache) func(*Deps) {
	return func(d *Deps) { d.Cache = c }
}

func (e *testEnv) registerHospital(t *testing.T, name, email, pass string) *models.Hospital {
	t.Helper()
	h, err := e.svc.RegisterHospital(context.Background(), models.HospitalRegistration{
		Name:               name,
		RegistrationNumber: "REG-" + email,
		LicenseNumber:      "LIC-" + email,
		Email:              email,
		Password:           pass,
	})
	require.NoError(t, err)
	return h
}

func (e *testEnv) approvedHospital(t *testing.T, name, email, pass string) *models.Hospital {
	t.Helper()
	h := e.registerHospital(t, name, email, pass)
	approved, err := e.svc.ApproveHospital(context.Background(), platformAdmin, h.ID.Hex())
	require.NoError(t, err)
	return approved
}

func hospitalAdmin(h *models.Hospital) models.Identity {
	return h.Identity()
}
