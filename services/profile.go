package services

import (
	"context"
	"errors"
	"strings"

	"HospitalHub/db"
	"HospitalHub/models"
	"HospitalHub/password"
	"HospitalHub/util"

	log "github.com/sirupsen/logrus"
)

func (s *Service) Me(identity models.Identity) models.Profile {
	return identity.Profile()
}

/*
* Bootstrap identity has no record to change
* Load the record with its secret and verify the current password
* Set the new password, the store hashes it on save
 */
func (s *Service) ChangePassword(ctx context.Context, identity models.Identity, req models.ChangePassword) error {
	if identity.Bootstrap {
		return util.Validation(util.BOOTSTRAP_ADMIN_READ_ONLY)
	}
	if err := password.ValidateRules(req.NewPassword); err != nil {
		return util.Validation(err.Error())
	}
	acc, err := s.loadSelf(ctx, identity, true)
	if err != nil {
		return err
	}
	ok, err := s.hasher.Verify(req.CurrentPassword, acc.Base().Password)
	if err != nil {
		return util.Internal(err)
	}
	if !ok {
		return util.Validation(util.CURRENT_PASSWORD_INCORRECT)
	}
	acc.Base().SetPassword(req.NewPassword)
	if err := s.saveAccount(ctx, acc); err != nil {
		log.Println("Error from Save while changing password:", err)
		return storeError(err, util.USER_NOT_FOUND_OR_INVALID)
	}
	log.WithFields(log.Fields{"kind": identity.Kind, "id": identity.ID}).Info("Password changed")
	return nil
}

func (s *Service) UpdateProfile(ctx context.Context, identity models.Identity, req models.UpdateProfile) (models.Profile, error) {
	if identity.Bootstrap {
		return models.Profile{}, util.Validation(util.BOOTSTRAP_ADMIN_READ_ONLY)
	}
	if req.Name == nil && req.PhoneNo == nil {
		return models.Profile{}, util.Validation(util.NO_FIELDS_PROVIDED_TO_UPDATE)
	}
	acc, err := s.loadSelf(ctx, identity, false)
	if err != nil {
		return models.Profile{}, err
	}
	b := acc.Base()
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return models.Profile{}, util.Validation("name cannot be empty")
		}
		b.Name = name
	}
	if req.PhoneNo != nil {
		b.PhoneNo = strings.TrimSpace(*req.PhoneNo)
	}
	if err := s.saveAccount(ctx, acc); err != nil {
		log.Println("Error from Save while updating profile:", err)
		return models.Profile{}, storeError(err, util.USER_NOT_FOUND_OR_INVALID)
	}
	return acc.Identity().Profile(), nil
}

func (s *Service) loadSelf(ctx context.Context, identity models.Identity, withSecret bool) (models.Account, error) {
	acc, err := s.store.FindByID(ctx, identity.Kind, identity.ID, withSecret)
	if errors.Is(err, db.ErrNotFound) {
		return nil, util.NewError(util.KindUnauthorized, util.USER_NOT_FOUND_OR_INVALID)
	}
	if err != nil {
		return nil, util.Internal(err)
	}
	return acc, nil
}
