package services

import (
	"context"
	"strings"

	"HospitalHub/models"
	"HospitalHub/util"

	log "github.com/sirupsen/logrus"
)

/*
* Approve is allowed from pending, rejected and suspended
* approvedBy and approvedAt record the first approval only
* A previous rejection reason is cleared
 */
func (s *Service) ApproveHospital(ctx context.Context, caller models.Identity, id string) (*models.Hospital, error) {
	h, err := s.findHospital(ctx, id)
	if err != nil {
		return nil, err
	}
	if h.ApprovalStatus == models.StatusApproved {
		return nil, util.Validation(util.HOSPITAL_ALREADY_APPROVED)
	}
	h.ApprovalStatus = models.StatusApproved
	h.RejectionReason = ""
	if h.ApprovedAt == nil {
		at := s.now().UTC()
		h.ApprovedAt = &at
		h.ApprovedBy = caller.ID
	}
	return s.saveHospital(ctx, h, "approved")
}

func (s *Service) RejectHospital(ctx context.Context, id, reason string) (*models.Hospital, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, util.Validation(util.REJECTION_REASON_REQUIRED)
	}
	h, err := s.findHospital(ctx, id)
	if err != nil {
		return nil, err
	}
	if h.ApprovalStatus != models.StatusPending {
		return nil, util.Errorf(util.KindValidation, "only pending hospitals can be rejected (status: %s)", h.ApprovalStatus)
	}
	h.ApprovalStatus = models.StatusRejected
	h.RejectionReason = reason
	return s.saveHospital(ctx, h, "rejected")
}

func (s *Service) SuspendHospital(ctx context.Context, id string) (*models.Hospital, error) {
	h, err := s.findHospital(ctx, id)
	if err != nil {
		return nil, err
	}
	if h.ApprovalStatus != models.StatusApproved {
		return nil, util.Errorf(util.KindValidation, "only approved hospitals can be suspended (status: %s)", h.ApprovalStatus)
	}
	h.ApprovalStatus = models.StatusSuspended
	return s.saveHospital(ctx, h, "suspended")
}

func (s *Service) SetHospitalActive(ctx context.Context, id string, active bool) (*models.Hospital, error) {
	h, err := s.findHospital(ctx, id)
	if err != nil {
		return nil, err
	}
	h.IsActive = active
	return s.saveHospital(ctx, h, "active toggled")
}

func (s *Service) saveHospital(ctx context.Context, h *models.Hospital, action string) (*models.Hospital, error) {
	if err := s.saveAccount(ctx, h); err != nil {
		log.Println("Error from Save while updating hospital:", err)
		return nil, storeError(err, util.HOSPITAL_NOT_FOUND)
	}
	log.WithFields(log.Fields{"hospitalId": h.ID.Hex(), "status": h.ApprovalStatus, "isActive": h.IsActive}).Info("Hospital " + action)
	return h, nil
}
