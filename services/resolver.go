package services

import (
	"context"
	"errors"

	"HospitalHub/db"
	"HospitalHub/metrics"
	"HospitalHub/models"
	"HospitalHub/role"
	"HospitalHub/util"

	log "github.com/sirupsen/logrus"
)

/*
* Verify the bearer token
* Pick the collection from the token type claim
* Fetch the current record, which is authoritative for role and active state
* Only identities that pass the access gate are cached
 */
func (s *Service) Resolve(ctx context.Context, rawToken string) (models.Identity, error) {
	if rawToken == "" {
		metrics.AuthRejections.WithLabelValues("no_token").Inc()
		return models.Identity{}, util.NewError(util.KindUnauthorized, util.NOT_AUTHORIZED_NO_TOKEN)
	}
	claims, err := s.tokens.Verify(rawToken)
	if err != nil {
		metrics.AuthRejections.WithLabelValues("invalid_token").Inc()
		return models.Identity{}, util.NewError(util.KindUnauthorized, util.NOT_AUTHORIZED_TOKEN_FAILED)
	}

	if claims.Subject == BootstrapSubject {
		if claims.Role == role.SuperAdmin && s.bootstrap.Enabled() {
			return s.BootstrapIdentity(), nil
		}
		metrics.AuthRejections.WithLabelValues("not_found").Inc()
		return models.Identity{}, util.NewError(util.KindUnauthorized, util.USER_NOT_FOUND_OR_INVALID)
	}

	kind := collectionForClaim(claims.Type)
	identity, cached, err := s.cache.Get(ctx, kind, claims.Subject)
	if err != nil {
		log.WithError(err).Warn("Identity cache read failed, falling back to store")
	}
	if cached {
		if identity.Kind == models.KindDoctor || identity.Kind == models.KindStaff {
			if reason, err := s.parentGate(ctx, identity.HospitalID); err != nil {
				metrics.AuthRejections.WithLabelValues(reason).Inc()
				s.invalidate(ctx, kind, claims.Subject)
				return models.Identity{}, err
			}
		}
		return identity, nil
	}

	acc, err := s.store.FindByID(ctx, kind, claims.Subject, false)
	if errors.Is(err, db.ErrNotFound) {
		metrics.AuthRejections.WithLabelValues("not_found").Inc()
		return models.Identity{}, util.NewError(util.KindUnauthorized, util.USER_NOT_FOUND_OR_INVALID)
	}
	if err != nil {
		metrics.AuthRejections.WithLabelValues(metrics.OutcomeError).Inc()
		return models.Identity{}, util.Internal(err)
	}
	if reason, err := s.accessGate(ctx, acc); err != nil {
		metrics.AuthRejections.WithLabelValues(reason).Inc()
		return models.Identity{}, err
	}

	identity = acc.Identity()
	if err := s.cache.Set(ctx, identity); err != nil {
		log.WithError(err).Warn("Failed caching identity")
	}
	return identity, nil
}

func collectionForClaim(kind models.AccountKind) models.AccountKind {
	switch kind {
	case models.KindAdmin, models.KindHospital, models.KindDoctor:
		return kind
	}
	return models.KindStaff
}
