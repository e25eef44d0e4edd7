package services

import (
	"context"
	"testing"
	"time"

	"HospitalHub/cache"
	"HospitalHub/models"
	"HospitalHub/role"
	"HospitalHub/token"
	"HospitalHub/util"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResolveRejectsMissingAndBadTokens(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, util.ErrUnauthorized)
	assert.Equal(t, util.NOT_AUTHORIZED_NO_TOKEN, util.PublicMessage(err))

	_, err = env.svc.Resolve(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, util.ErrUnauthorized)
	assert.Equal(t, util.NOT_AUTHORIZED_TOKEN_FAILED, util.PublicMessage(err))
}

func TestResolveDeletedAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	h := env.approvedHospital(t, "Acme Hospital", "admin@acme.test", "acme-pass")
	d, err := env.svc.CreateDoctor(ctx, hospitalAdmin(h), models.NewDoctor{Name: "Dr. Jane Doe", Email: "jane@acme.test", Password: "doctor123"})
	require.NoError(t, err)
	res, err := login(env.svc, "jane@acme.test", "doctor123")
	require.NoError(t, err)

	require.NoError(t, env.svc.DeleteStaff(ctx, hospitalAdmin(h), "doctor", d.ID.Hex()))

	_, err = env.svc.Resolve(ctx, res.Token)
	assert.ErrorIs(t, err, util.ErrUnauthorized)
	assert.Equal(t, 401, util.StatusCode(err))
	assert.Equal(t, "user not found or invalid token", util.PublicMessage(err))
}

func TestResolveUnknownSubject(t *testing.T) {
	env := newTestEnv(t)
	signed, err := env.tokens.Issue(token.Claims{Subject: primitive.NewObjectID().Hex(), Type: models.KindAdmin, Role: role.Admin})
	require.NoError(t, err)

	_, err = env.svc.Resolve(context.Background(), signed)
	assert.ErrorIs(t, err, util.ErrUnauthorized)
}

func TestResolveBootstrapSubjectRequiresSuperAdminClaim(t *testing.T) {
	env := newTestEnv(t)
	signed, err := env.tokens.Issue(token.Claims{Subject: BootstrapSubject, Type: models.KindAdmin, Role: role.Admin})
	require.NoError(t, err)

	_, err = env.svc.Resolve(context.Background(), signed)
	assert.ErrorIs(t, err, util.ErrUnauthorized)
}

func TestResolveStoredRoleIsAuthoritative(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	h := env.approvedHospital(t, "Acme Hospital", "admin@acme.test", "acme-pass")
	st, err := env.svc.CreateStaff(ctx, hospitalAdmin(h), models.NewStaff{Name: "Rita", Email: "rita@acme.test", Password: "rita-pass", Role: "receptionist"})
	require.NoError(t, err)

	// a token claiming a different role still resolves to the stored one
	signed, err := env.tokens.Issue(token.Claims{Subject: st.ID.Hex(), Type: models.KindStaff, Role: role.Admin})
	require.NoError(t, err)

	identity, err := env.svc.Resolve(ctx, signed)
	require.NoError(t, err)
	assert.Equal(t, role.Receptionist, identity.Role)
	assert.Equal(t, h.ID.Hex(), identity.HospitalID)
}

func TestResolveHospitalIdentity(t *testing.T) {
	env := newTestEnv(t)
	h := env.approvedHospital(t, "Acme Hospital", "admin@acme.test", "acme-pass")
	res, err := login(env.svc, "admin@acme.test", "acme-pass")
	require.NoError(t, err)

	identity, err := env.svc.Resolve(context.Background(), res.Token)
	require.NoError(t, err)
	assert.Equal(t, role.HospitalAdmin, identity.Role)
	assert.Equal(t, h.ID.Hex(), identity.HospitalID)
	assert.Equal(t, models.KindHospital, identity.Kind)
}

func TestResolveCacheInvalidatedOnDeactivation(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	env := newTestEnv(t, withCache(cache.NewRedisIdentityCache(client, time.Hour)))
	ctx := context.Background()

	h := env.approvedHospital(t, "Acme Hospital", "admin@acme.test", "acme-pass")
	d, err := env.svc.CreateDoctor(ctx, hospitalAdmin(h), models.NewDoctor{Name: "Dr. Jane Doe", Email: "jane@acme.test", Password: "doctor123"})
	require.NoError(t, err)
	res, err := login(env.svc, "jane@acme.test", "doctor123")
	require.NoError(t, err)

	_, err = env.svc.Resolve(ctx, res.Token)
	require.NoError(t, err)
	assert.True(t, mr.Exists(cache.IdentityKey(models.KindDoctor, d.ID.Hex())))

	_, err = env.svc.SetStaffActive(ctx, hospitalAdmin(h), "doctor", d.ID.Hex(), false)
	require.NoError(t, err)
	assert.False(t, mr.Exists(cache.IdentityKey(models.KindDoctor, d.ID.Hex())))

	_, err = env.svc.Resolve(ctx, res.Token)
	assert.ErrorIs(t, err, util.ErrAccountDeactivated)
}

func TestResolveGatedOnParentHospital(t *testing.T) {
	cases := []struct {
		name      string
		withRedis bool
	}{
		{name: "store", withRedis: false},
		{name: "warm redis cache", withRedis: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var opts []func(*Deps)
			if tc.withRedis {
				mr := miniredis.RunT(t)
				client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
				t.Cleanup(func() { client.Close() })
				opts = append(opts, withCache(cache.NewRedisIdentityCache(client, time.Hour)))
			}
			env := newTestEnv(t, opts...)
			ctx := context.Background()

			h := env.approvedHospital(t, "Acme Hospital", "admin@acme.test", "acme-pass")
			_, err := env.svc.CreateDoctor(ctx, hospitalAdmin(h), models.NewDoctor{Name: "Dr. Jane Doe", Email: "jane@acme.test", Password: "doctor123"})
			require.NoError(t, err)
			_, err = env.svc.CreateStaff(ctx, hospitalAdmin(h), models.NewStaff{
				Name: "Nina Nurse", Email: "nina@acme.test", Password: "nurse-pass", Role: "nurse",
			})
			require.NoError(t, err)

			doctor, err := login(env.svc, "jane@acme.test", "doctor123")
			require.NoError(t, err)
			nurse, err := login(env.svc, "nina@acme.test", "nurse-pass")
			require.NoError(t, err)
			for _, tok := range []string{doctor.Token, nurse.Token} {
				_, err = env.svc.Resolve(ctx, tok)
				require.NoError(t, err)
			}

			_, err = env.svc.SuspendHospital(ctx, h.ID.Hex())
			require.NoError(t, err)
			for _, tok := range []string{doctor.Token, nurse.Token} {
				_, err = env.svc.Resolve(ctx, tok)
				assert.ErrorIs(t, err, util.ErrAccountPending)
				assert.Contains(t, util.PublicMessage(err), "suspended")
			}

			_, err = env.svc.ApproveHospital(ctx, platformAdmin, h.ID.Hex())
			require.NoError(t, err)
			for _, tok := range []string{doctor.Token, nurse.Token} {
				_, err = env.svc.Resolve(ctx, tok)
				require.NoError(t, err)
			}

			_, err = env.svc.SetHospitalActive(ctx, h.ID.Hex(), false)
			require.NoError(t, err)
			for _, tok := range []string{doctor.Token, nurse.Token} {
				_, err = env.svc.Resolve(ctx, tok)
				assert.ErrorIs(t, err, util.ErrAccountDeactivated)
			}
		})
	}
}

func TestCheckRole(t *testing.T) {
	nurse := models.Identity{Role: role.Nurse}

	assert.NoError(t, CheckRole(nurse, role.Doctor, role.Nurse))
	err := CheckRole(nurse, role.Doctor)
	assert.ErrorIs(t, err, util.ErrForbidden)
	assert.Contains(t, util.PublicMessage(err), "nurse")

	assert.NoError(t, IsPlatformAdmin(models.Identity{Role: role.SuperAdmin}))
	assert.ErrorIs(t, IsSuperAdmin(models.Identity{Role: role.Admin}), util.ErrForbidden)
	assert.ErrorIs(t, IsHospitalAdmin(models.Identity{Role: role.Doctor}), util.ErrForbidden)
}
