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

/*
* Validate inputs and password rules
* Build the hospital record with status pending and isActive true
* Save it, the store hashes the password and enforces uniqueness
 */
func (s *Service) RegisterHospital(ctx context.Context, req models.HospitalRegistration) (*models.Hospital, error) {
	h := &models.Hospital{
		RegistrationNumber: strings.TrimSpace(req.RegistrationNumber),
		LicenseNumber:      strings.TrimSpace(req.LicenseNumber),
		Address:            strings.TrimSpace(req.Address),
		ApprovalStatus:     models.StatusPending,
	}
	h.Name = strings.TrimSpace(req.Name)
	h.Email = models.NormalizeEmail(req.Email)
	h.PhoneNo = strings.TrimSpace(req.PhoneNo)
	h.IsActive = true

	if h.Name == "" || h.Email == "" || h.RegistrationNumber == "" || h.LicenseNumber == "" {
		return nil, util.Validation("name, email, registrationNumber and licenseNumber are required")
	}
	if err := password.ValidateRules(req.Password); err != nil {
		return nil, util.Validation(err.Error())
	}
	h.SetPassword(req.Password)

	if err := s.store.Save(ctx, h); err != nil {
		log.Println("Error from Save while registering hospital:", err)
		return nil, storeError(err, util.HOSPITAL_NOT_FOUND)
	}
	log.WithField("hospitalId", h.ID.Hex()).Info("Hospital registered, awaiting approval")
	return withoutSecret(h), nil
}

func (s *Service) ListHospitals(ctx context.Context, status string) ([]*models.Hospital, error) {
	st := models.ApprovalStatus(strings.ToLower(strings.TrimSpace(status)))
	if st != "" && !st.Valid() {
		return nil, util.Validation(util.INVALID_APPROVAL_STATUS)
	}
	list, err := s.store.ListHospitals(ctx, st)
	if err != nil {
		log.Println("Error from ListHospitals:", err)
		return nil, util.Internal(err)
	}
	if list == nil {
		list = []*models.Hospital{}
	}
	return list, nil
}

/*
* Platform admins may read any hospital
* A hospital admin may read only its own record
 */
func (s *Service) GetHospital(ctx context.Context, caller models.Identity, id string) (*models.Hospital, error) {
	if !caller.Role.IsPlatformAdmin() && caller.HospitalID != id {
		return nil, util.NewError(util.KindNotFound, util.HOSPITAL_NOT_FOUND)
	}
	return s.findHospital(ctx, id)
}

func (s *Service) findHospital(ctx context.Context, id string) (*models.Hospital, error) {
	acc, err := s.store.FindByID(ctx, models.KindHospital, id, false)
	if err != nil {
		return nil, storeError(err, util.HOSPITAL_NOT_FOUND)
	}
	return acc.(*models.Hospital), nil
}

// storeError maps store sentinels onto the client-facing taxonomy.
func storeError(err error, notFound string) error {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return util.NewError(util.KindNotFound, notFound)
	case errors.Is(err, db.ErrDuplicate):
		return util.NewError(util.KindConflict, util.ACCOUNT_ALREADY_EXISTS)
	}
	return util.Internal(err)
}

func withoutSecret[T models.Account](acc T) T {
	return models.WithoutSecret(acc).(T)
}
