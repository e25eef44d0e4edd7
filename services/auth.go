package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"HospitalHub/db"
	"HospitalHub/metrics"
	"HospitalHub/models"
	"HospitalHub/role"
	"HospitalHub/token"
	"HospitalHub/util"

	log "github.com/sirupsen/logrus"
)

// BootstrapSubject is the token subject of the configured seed super-admin.
const BootstrapSubject = "bootstrap-super-admin"

/*
* Validate the login input
* Check the failed-attempt limiter
* Search the collections in fixed priority order, first match wins
* Apply the active and approval gates, then verify the secret
* Touch lastLogin (the only write) and issue the token
 */
func (s *Service) Login(ctx context.Context, req models.Login) (*models.LoginResult, error) {
	email := models.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		metrics.LoginAttempts.WithLabelValues(metrics.OutcomeValidation).Inc()
		return nil, util.Validation(util.EMAIL_AND_PASSWORD_REQUIRED)
	}

	blocked, err := s.limiter.Blocked(ctx, email)
	if err != nil {
		log.WithError(err).Warn("Login limiter unavailable, continuing without it")
	}
	if blocked {
		metrics.LoginAttempts.WithLabelValues(metrics.OutcomeRateLimited).Inc()
		return nil, util.NewError(util.KindTooManyRequests, util.TOO_MANY_LOGIN_ATTEMPTS)
	}

	if s.isBootstrapEmail(email) {
		return s.loginBootstrap(ctx, email, req.Password)
	}

	acc, err := s.findForLogin(ctx, email)
	if errors.Is(err, db.ErrNotFound) {
		s.verifyDummy(req.Password)
		return nil, s.invalidCredentials(ctx, email)
	}
	if err != nil {
		metrics.LoginAttempts.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, util.Internal(err)
	}

	if outcome, err := s.accessGate(ctx, acc); err != nil {
		metrics.LoginAttempts.WithLabelValues(outcome).Inc()
		return nil, err
	}

	ok, err := s.hasher.Verify(req.Password, acc.Base().Password)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, util.Internal(err)
	}
	if !ok {
		return nil, s.invalidCredentials(ctx, email)
	}

	identity := acc.Identity()
	if err := s.store.TouchLastLogin(ctx, acc.Kind(), identity.ID, s.now()); err != nil {
		metrics.LoginAttempts.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, util.Internal(fmt.Errorf("touch lastLogin: %w", err))
	}
	if err := s.limiter.Reset(ctx, email); err != nil {
		log.WithError(err).Warn("Failed resetting login failures")
	}

	signed, err := s.tokens.Issue(token.Claims{Subject: identity.ID, Type: identity.Kind, Role: identity.Role})
	if err != nil {
		metrics.LoginAttempts.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, util.Internal(err)
	}
	metrics.LoginAttempts.WithLabelValues(metrics.OutcomeSuccess).Inc()
	log.WithFields(log.Fields{"kind": identity.Kind, "id": identity.ID}).Info("Login successful")
	return &models.LoginResult{Token: signed, User: identity.Profile()}, nil
}

func (s *Service) findForLogin(ctx context.Context, email string) (models.Account, error) {
	for _, kind := range models.LoginOrder {
		acc, err := s.store.FindByEmail(ctx, kind, email, true)
		if errors.Is(err, db.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return acc, nil
	}
	return nil, db.ErrNotFound
}

// accessGate applies the active and approval checks shared by login and
// token resolution. The returned outcome labels the rejection metric.
func (s *Service) accessGate(ctx context.Context, acc models.Account) (string, error) {
	if !acc.Base().IsActive {
		return metrics.OutcomeDeactivated, util.NewError(util.KindAccountDeactivated, util.ACCOUNT_DEACTIVATED)
	}

	var parentID string
	switch a := acc.(type) {
	case *models.Hospital:
		if a.ApprovalStatus != models.StatusApproved {
			return metrics.OutcomePending, pendingError("account", a.ApprovalStatus)
		}
		return "", nil
	case *models.Doctor:
		parentID = a.HospitalID.Hex()
	case *models.Staff:
		parentID = a.HospitalID.Hex()
	default:
		return "", nil
	}

	return s.parentGate(ctx, parentID)
}

// parentGate rejects doctors and staff whose hospital is gone, inactive or
// no longer approved.
func (s *Service) parentGate(ctx context.Context, hospitalID string) (string, error) {
	parent, err := s.store.FindByID(ctx, models.KindHospital, hospitalID, false)
	if errors.Is(err, db.ErrNotFound) {
		return metrics.OutcomeDeactivated, util.NewError(util.KindAccountDeactivated, util.HOSPITAL_ACCOUNT_REMOVED)
	}
	if err != nil {
		return metrics.OutcomeError, util.Internal(err)
	}
	hospital := parent.(*models.Hospital)
	if hospital.Usable() {
		return "", nil
	}
	if !hospital.IsActive {
		return metrics.OutcomeDeactivated, util.NewError(util.KindAccountDeactivated, util.HOSPITAL_ACCOUNT_DEACTIVATED)
	}
	return metrics.OutcomePending, pendingError("hospital account", hospital.ApprovalStatus)
}

func pendingError(subject string, status models.ApprovalStatus) error {
	if status == models.StatusPending {
		return util.Errorf(util.KindAccountPending, "%s is awaiting approval (status: %s)", subject, status)
	}
	return util.Errorf(util.KindAccountPending, "%s is not approved (status: %s)", subject, status)
}

// invalidCredentials is shared by the unknown-email and wrong-password paths.
func (s *Service) invalidCredentials(ctx context.Context, email string) error {
	if _, err := s.limiter.RecordFailure(ctx, email); err != nil {
		log.WithError(err).Warn("Failed recording login failure")
	}
	metrics.LoginAttempts.WithLabelValues(metrics.OutcomeInvalidCredentials).Inc()
	return util.NewError(util.KindInvalidCredentials, util.INVALID_CREDENTIALS)
}

// verifyDummy spends one hash comparison on unknown emails so they cost the
// same as a wrong password.
func (s *Service) verifyDummy(plain string) {
	s.dummyOnce.Do(func() {
		hashed, err := s.hasher.Hash("hospitalhub-unknown-account")
		if err != nil {
			log.WithError(err).Warn("Failed preparing dummy password hash")
			return
		}
		s.dummyHash = hashed
	})
	if s.dummyHash != "" {
		_, _ = s.hasher.Verify(plain, s.dummyHash)
	}
}

func (s *Service) isBootstrapEmail(email string) bool {
	return s.bootstrap.Enabled() && email == s.bootstrap.Email
}

func (s *Service) loginBootstrap(ctx context.Context, email, plain string) (*models.LoginResult, error) {
	if subtle.ConstantTimeCompare([]byte(plain), []byte(s.bootstrap.Password)) != 1 {
		return nil, s.invalidCredentials(ctx, email)
	}
	identity := s.BootstrapIdentity()
	signed, err := s.tokens.Issue(token.Claims{Subject: identity.ID, Type: identity.Kind, Role: identity.Role})
	if err != nil {
		metrics.LoginAttempts.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, util.Internal(err)
	}
	if err := s.limiter.Reset(ctx, email); err != nil {
		log.WithError(err).Warn("Failed resetting login failures")
	}
	metrics.LoginAttempts.WithLabelValues(metrics.OutcomeSuccess).Inc()
	log.Warn("Bootstrap super admin logged in")
	return &models.LoginResult{Token: signed, User: identity.Profile()}, nil
}

// BootstrapIdentity is synthesized in memory; no store record backs it.
func (s *Service) BootstrapIdentity() models.Identity {
	return models.Identity{
		ID:        BootstrapSubject,
		Kind:      models.KindAdmin,
		Role:      role.SuperAdmin,
		Name:      s.bootstrap.Name,
		Email:     s.bootstrap.Email,
		IsActive:  true,
		Bootstrap: true,
	}
}
