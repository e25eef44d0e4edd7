package services

import (
	"context"
	"errors"

	"HospitalHub/db"
	"HospitalHub/models"
	"HospitalHub/role"
	"HospitalHub/util"

	log "github.com/sirupsen/logrus"
)

func (s *Service) CreateStaff(ctx context.Context, caller models.Identity, req models.NewStaff) (*models.Staff, error) {
	hospitalID, err := callerHospital(caller)
	if err != nil {
		return nil, err
	}
	r, err := role.ParseStaffRole(req.Role)
	if err != nil {
		return nil, util.Validation(err.Error())
	}
	st := &models.Staff{HospitalID: hospitalID, Role: r}
	if err := fillNewAccount(&st.AccountBase, req.Name, req.Email, req.PhoneNo, req.Password); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, st); err != nil {
		log.Println("Error from Save while creating staff:", err)
		return nil, storeError(err, util.HOSPITAL_NOT_FOUND)
	}
	log.WithFields(log.Fields{"hospitalId": caller.HospitalID, "staffId": st.ID.Hex(), "role": r}).Info("Staff created")
	return withoutSecret(st), nil
}

func (s *Service) ListStaff(ctx context.Context, caller models.Identity) (*models.StaffDirectory, error) {
	if _, err := callerHospital(caller); err != nil {
		return nil, err
	}
	doctors, staff, err := s.store.ListStaff(ctx, caller.HospitalID)
	if err != nil {
		log.Println("Error from ListStaff:", err)
		return nil, util.Internal(err)
	}
	dir := &models.StaffDirectory{Doctors: doctors, Staff: staff}
	if dir.Doctors == nil {
		dir.Doctors = []*models.Doctor{}
	}
	if dir.Staff == nil {
		dir.Staff = []*models.Staff{}
	}
	return dir, nil
}

/*
* Resolve the staff kind from the path
* Load the member and check it belongs to the caller's hospital
* Toggle isActive, save and drop the cached identity
 */
func (s *Service) SetStaffActive(ctx context.Context, caller models.Identity, kind, id string, active bool) (models.Account, error) {
	acc, err := s.ownedStaff(ctx, caller, kind, id)
	if err != nil {
		return nil, err
	}
	acc.Base().IsActive = active
	if err := s.saveAccount(ctx, acc); err != nil {
		log.Println("Error from Save while toggling staff:", err)
		return nil, storeError(err, util.STAFF_NOT_FOUND)
	}
	return acc, nil
}

func (s *Service) DeleteStaff(ctx context.Context, caller models.Identity, kind, id string) error {
	acc, err := s.ownedStaff(ctx, caller, kind, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, acc.Kind(), id); err != nil {
		log.Println("Error from Delete while removing staff:", err)
		return storeError(err, util.STAFF_NOT_FOUND)
	}
	s.invalidate(ctx, acc.Kind(), id)
	log.WithFields(log.Fields{"hospitalId": caller.HospitalID, "kind": acc.Kind(), "id": id}).Info("Staff deleted")
	return nil
}

// ownedStaff reports members of other hospitals as not found.
func (s *Service) ownedStaff(ctx context.Context, caller models.Identity, kind, id string) (models.Account, error) {
	k := models.AccountKind(kind)
	if k != models.KindDoctor && k != models.KindStaff {
		return nil, util.Validation(util.INVALID_ACCOUNT_KIND)
	}
	acc, err := s.store.FindByID(ctx, k, id, false)
	if errors.Is(err, db.ErrNotFound) {
		return nil, util.NewError(util.KindNotFound, util.STAFF_NOT_FOUND)
	}
	if err != nil {
		return nil, util.Internal(err)
	}
	if acc.Identity().HospitalID != caller.HospitalID {
		return nil, util.NewError(util.KindNotFound, util.STAFF_NOT_FOUND)
	}
	return acc, nil
}
