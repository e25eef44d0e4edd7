package services

import (
	"context"

	"HospitalHub/models"
	"HospitalHub/role"
	"HospitalHub/util"

	log "github.com/sirupsen/logrus"
)

/*
CreateAdmin creates a platform administrator.
Role defaults to admin; super_admin may only be granted by a super admin,
which the route guarantees.
*/
func (s *Service) CreateAdmin(ctx context.Context, req models.NewAdmin) (*models.Admin, error) {
	r, err := role.ParsePlatformRole(req.Role)
	if err != nil {
		return nil, util.Validation(err.Error())
	}
	if s.isBootstrapEmail(models.NormalizeEmail(req.Email)) {
		return nil, util.NewError(util.KindConflict, util.ACCOUNT_ALREADY_EXISTS)
	}
	a := &models.Admin{Role: r}
	if err := fillNewAccount(&a.AccountBase, req.Name, req.Email, "", req.Password); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, a); err != nil {
		log.Println("Error from Save while creating admin:", err)
		return nil, storeError(err, util.USER_NOT_FOUND_OR_INVALID)
	}
	log.WithFields(log.Fields{"adminId": a.ID.Hex(), "role": r}).Info("Administrator created")
	return withoutSecret(a), nil
}
