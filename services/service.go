package services

import (
	"context"
	"sync"
	"time"

	"HospitalHub/cache"
	"HospitalHub/config"
	"HospitalHub/db"
	"HospitalHub/models"
	"HospitalHub/token"

	log "github.com/sirupsen/logrus"
)

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hashed string) (bool, error)
}

type Deps struct {
	Store     db.Store
	Hasher    PasswordHasher
	Tokens    *token.Manager
	Cache     cache.IdentityCache
	Limiter   cache.LoginLimiter
	Bootstrap config.BootstrapAdmin
}

// Service holds the account, login and tenant operations behind the HTTP handlers.
type Service struct {
	store     db.Store
	hasher    PasswordHasher
	tokens    *token.Manager
	cache     cache.IdentityCache
	limiter   cache.LoginLimiter
	bootstrap config.BootstrapAdmin
	now       func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func New(d Deps) *Service {
	s := &Service{
		store:     d.Store,
		hasher:    d.Hasher,
		tokens:    d.Tokens,
		cache:     d.Cache,
		limiter:   d.Limiter,
		bootstrap: d.Bootstrap,
		now:       time.Now,
	}
	s.bootstrap.Email = models.NormalizeEmail(s.bootstrap.Email)
	if s.cache == nil {
		s.cache = cache.NoopIdentityCache{}
	}
	if s.limiter == nil {
		s.limiter = cache.NoopLoginLimiter{}
	}
	return s
}

/*
* Save the account and drop its cached identity
* A failed invalidation is logged; the cache ttl bounds the staleness
 */
func (s *Service) saveAccount(ctx context.Context, acc models.Account) error {
	if err := s.store.Save(ctx, acc); err != nil {
		return err
	}
	s.invalidate(ctx, acc.Kind(), acc.Base().ID.Hex())
	return nil
}

func (s *Service) invalidate(ctx context.Context, kind models.AccountKind, id string) {
	if err := s.cache.Invalidate(ctx, kind, id); err != nil {
		log.WithError(err).WithFields(log.Fields{"kind": kind, "id": id}).Warn("Failed invalidating identity cache")
	}
}
