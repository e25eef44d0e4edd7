package services

import (
	"context"
	"strings"

	"HospitalHub/models"
	"HospitalHub/password"
	"HospitalHub/util"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

/*
* Validate inputs and password rules
* The doctor is always created under the caller's own hospital
* Save, the store hashes the password
 */
func (s *Service) CreateDoctor(ctx context.Context, caller models.Identity, req models.NewDoctor) (*models.Doctor, error) {
	hospitalID, err := callerHospital(caller)
	if err != nil {
		return nil, err
	}
	d := &models.Doctor{
		HospitalID:     hospitalID,
		Specialization: strings.TrimSpace(req.Specialization),
	}
	if err := fillNewAccount(&d.AccountBase, req.Name, req.Email, req.PhoneNo, req.Password); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, d); err != nil {
		log.Println("Error from Save while creating doctor:", err)
		return nil, storeError(err, util.HOSPITAL_NOT_FOUND)
	}
	log.WithFields(log.Fields{"hospitalId": caller.HospitalID, "doctorId": d.ID.Hex()}).Info("Doctor created")
	return withoutSecret(d), nil
}

func callerHospital(caller models.Identity) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(caller.HospitalID)
	if err != nil {
		return primitive.NilObjectID, util.NewError(util.KindForbidden, "caller is not scoped to a hospital")
	}
	return oid, nil
}

func fillNewAccount(b *models.AccountBase, name, email, phoneNo, plain string) error {
	b.Name = strings.TrimSpace(name)
	b.Email = models.NormalizeEmail(email)
	b.PhoneNo = strings.TrimSpace(phoneNo)
	b.IsActive = true
	if b.Name == "" || b.Email == "" {
		return util.Validation("name and email are required")
	}
	if err := password.ValidateRules(plain); err != nil {
		return util.Validation(err.Error())
	}
	b.SetPassword(plain)
	return nil
}
