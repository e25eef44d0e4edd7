package services

import (
	"context"
	"testing"
	"time"

	"HospitalHub/cache"
	"HospitalHub/models"
	"HospitalHub/role"
	"HospitalHub/util"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func login(svc *Service, email, pass string) (*models.LoginResult, error) {
	return svc.Login(context.Background(), models.Login{Email: email, Password: pass})
}

func TestLoginRequiresEmailAndPassword(t *testing.T) {
	env := newTestEnv(t)

	_, err := login(env.svc, "", "secret")
	assert.ErrorIs(t, err, util.ErrValidation)
	_, err = login(env.svc, "someone@example.com", "")
	assert.ErrorIs(t, err, util.ErrValidation)
	assert.Equal(t, 400, util.StatusCode(err))
}

func TestHospitalApprovalScenario(t *testing.T) {
	env := newTestEnv(t)
	h := env.registerHospital(t, "Acme Hospital", "admin@acme.test", "acme-pass")
	assert.Equal(t, models.StatusPending, h.ApprovalStatus)
	assert.True(t, h.IsActive)

	_, err := login(env.svc, "admin@acme.test", "acme-pass")
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrAccountPending)
	assert.Equal(t, 401, util.StatusCode(err))
	assert.Contains(t, util.PublicMessage(err), "awaiting approval")
	assert.Contains(t, util.PublicMessage(err), "pending")

	_, err = env.svc.ApproveHospital(context.Background(), platformAdmin, h.ID.Hex())
	require.NoError(t, err)

	res, err := login(env.svc, "admin@acme.test", "acme-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, models.KindHospital, res.User.UserType)
	assert.Equal(t, role.HospitalAdmin, res.User.Role)
	assert.Equal(t, h.ID.Hex(), res.User.HospitalID)
}

func TestLoginRejectedHospitalNamesStatus(t *testing.T) {
	env := newTestEnv(t)
	h := env.registerHospital(t, "Acme Hospital", "admin@acme.test", "acme-pass")
	_, err := env.svc.RejectHospital(context.Background(), h.ID.Hex(), "incomplete license")
	require.NoError(t, err)

	_, err = login(env.svc, "admin@acme.test", "acme-pass")
	assert.ErrorIs(t, err, util.ErrAccountPending)
	assert.Contains(t, util.PublicMessage(err), "rejected")
}

func TestLoginPriorityOrder(t *testing.T) {
	env := newTestEnv(t)
	env.approvedHospital(t, "Shared Hospital", "shared@example.com", "same-pass")
	_, err := env.svc.CreateAdmin(context.Background(), models.NewAdmin{Name: "Ops", Email: "shared@example.com", Password: "same-pass"})
	require.NoError(t, err)

	res, err := login(env.svc, "shared@example.com", "same-pass")
	require.NoError(t, err)
	assert.Equal(t, models.KindAdmin, res.User.UserType)
	assert.Equal(t, role.Admin, res.User.Role)
}

func TestDeactivationGate(t *testing.T) {
	env := newTestEnv(t)
	h := env.approvedHospital(t, "Acme Hospital", "admin@acme.test", "acme-pass")
	_, err := env.svc.SetHospitalActive(context.Background(), h.ID.Hex(), false)
	require.NoError(t, err)

	_, err = login(env.svc, "admin@acme.test", "acme-pass")
	assert.ErrorIs(t, err, util.ErrAccountDeactivated)

	_, err = login(env.svc, "admin@acme.test", "wrong-pass")
	assert.ErrorIs(t, err, util.ErrAccountDeactivated)
}

func TestEnumerationResistance(t *testing.T) {
	env := newTestEnv(t)
	env.approvedHospital(t, "Acme Hospital", "admin@acme.test", "acme-pass")

	_, unknown := login(env.svc, "nobody@acme.test", "acme-pass")
	_, wrong := login(env.svc, "admin@acme.test", "not-the-pass")
	require.Error(t, unknown)
	require.Error(t, wrong)
	assert.Equal(t, util.StatusCode(unknown), util.StatusCode(wrong))
	assert.Equal(t, util.PublicMessage(unknown), util.PublicMessage(wrong))
	assert.Equal(t, util.INVALID_CREDENTIALS, util.PublicMessage(wrong))
}

type countingHasher struct {
	PasswordHasher
	verifies int
}

func (h *countingHasher) Verify(plain, hashed string) (bool, error) {
	h.verifies++
	return h.PasswordHasher.Verify(plain, hashed)
}

func TestUnknownEmailStillComparesHash(t *testing.T) {
	var hasher *countingHasher
	env := newTestEnv(t, func(d *Deps) {
		hasher = &countingHasher{PasswordHasher: d.Hasher}
		d.Hasher = hasher
	})
	env.approvedHospital(t, "Acme Hospital", "admin@acme.test", "acme-pass")

	_, err := login(env.svc, "nobody@acme.test", "acme-pass")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	assert.Equal(t, 1, hasher.verifies)

	_, err = login(env.svc, "admin@acme.test", "not-the-pass")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	assert.Equal(t, 2, hasher.verifies)
}

func TestDoctorLoginScenario(t *testing.T) {
	env := newTestEnv(t)
	h := env.approvedHospital(t, "Acme Hospital", "admin@acme.test", "acme-pass")
	_, err := env.svc.CreateDoctor(context.Background(), hospitalAdmin(h), models.NewDoctor{
		Name:     "Dr. Jane Doe",
		Email:    "jane@acme.test",
		Password: "doctor123",
	})
	require.NoError(t, err)

	res, err := login(env.svc, "JANE@acme.test ", "doctor123")
	require.NoError(t, err)
	assert.Equal(t, role.Doctor, res.User.Role)
	assert.Equal(t, models.KindDoctor, res.User.UserType)
	assert.Equal(t, h.ID.Hex(), res.User.HospitalID)

	identity, err := env.svc.Resolve(context.Background(), res.Token)
	require.NoError(t, err)
	assert.Equal(t, role.Doctor, identity.Role)
	assert.Equal(t, h.ID.Hex(), identity.HospitalID)
}

func TestStaffLoginGatedOnHospital(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	h := env.approvedHospital(t, "Acme Hospital", "admin@acme.test", "acme-pass")
	_, err := env.svc.CreateStaff(ctx, hospitalAdmin(h), models.NewStaff{
		Name: "Nina Nurse", Email: "nina@acme.test", Password: "nurse-pass", Role: "nurse",
	})
	require.NoError(t, err)

	res, err := login(env.svc, "nina@acme.test", "nurse-pass")
	require.NoError(t, err)
	assert.Equal(t, role.Nurse, res.User.Role)
	assert.Equal(t, models.KindStaff, res.User.UserType)

	_, err = env.svc.SuspendHospital(ctx, h.ID.Hex())
	require.NoError(t, err)
	_, err = login(env.svc, "nina@acme.test", "nurse-pass")
	assert.ErrorIs(t, err, util.ErrAccountPending)
	assert.Contains(t, util.PublicMessage(err), "suspended")

	_, err = env.svc.ApproveHospital(ctx, platformAdmin, h.ID.Hex())
	require.NoError(t, err)
	_, err = env.svc.SetHospitalActive(ctx, h.ID.Hex(), false)
	require.NoError(t, err)
	_, err = login(env.svc, "nina@acme.test", "nurse-pass")
	assert.ErrorIs(t, err, util.ErrAccountDeactivated)
}

func TestLoginWriteCount(t *testing.T) {
	env := newTestEnv(t)
	env.approvedHospital(t, "Acme Hospital", "admin@acme.test", "acme-pass")

	before := env.store.Writes()
	_, err := login(env.svc, "admin@acme.test", "wrong-pass")
	require.Error(t, err)
	_, err = login(env.svc, "ghost@acme.test", "acme-pass")
	require.Error(t, err)
	assert.Equal(t, before, env.store.Writes())

	_, err = login(env.svc, "admin@acme.test", "acme-pass")
	require.NoError(t, err)
	assert.Equal(t, before+1, env.store.Writes())

	acc, err := env.store.FindByEmail(context.Background(), models.KindHospital, "admin@acme.test", true)
	require.NoError(t, err)
	assert.NotNil(t, acc.Base().LastLogin)
	ok, err := env.svc.hasher.Verify("acme-pass", acc.Base().Password)
	require.NoError(t, err)
	assert.True(t, ok, "login must not rewrite the stored hash")
}

func TestBootstrapLogin(t *testing.T) {
	env := newTestEnv(t)

	res, err := login(env.svc, "Owner@HospitalHub.test", "bootstrap-secret")
	require.NoError(t, err)
	assert.Equal(t, role.SuperAdmin, res.User.Role)
	assert.Equal(t, BootstrapSubject, res.User.ID)
	assert.Equal(t, 0, env.store.Writes())

	identity, err := env.svc.Resolve(context.Background(), res.Token)
	require.NoError(t, err)
	assert.True(t, identity.Bootstrap)
	assert.Equal(t, role.SuperAdmin, identity.Role)

	_, err = login(env.svc, "owner@hospitalhub.test", "guess")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestBootstrapDisabled(t *testing.T) {
	env := newTestEnv(t)
	env.svc.bootstrap.Password = ""

	_, err := login(env.svc, "owner@hospitalhub.test", "")
	assert.ErrorIs(t, err, util.ErrValidation)
	_, err = login(env.svc, "owner@hospitalhub.test", "bootstrap-secret")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestLoginLimiterBlocksAfterFailures(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	env := newTestEnv(t, withLimiter(cache.NewRedisLoginLimiter(client, 2, time.Minute)))
	env.approvedHospital(t, "Acme Hospital", "admin@acme.test", "acme-pass")

	for i := 0; i < 2; i++ {
		_, err := login(env.svc, "admin@acme.test", "wrong-pass")
		assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	}
	_, err := login(env.svc, "admin@acme.test", "acme-pass")
	assert.ErrorIs(t, err, util.ErrTooManyRequests)
	assert.Equal(t, 429, util.StatusCode(err))

	mr.FastForward(2 * time.Minute)
	_, err = login(env.svc, "admin@acme.test", "acme-pass")
	assert.NoError(t, err)
}
