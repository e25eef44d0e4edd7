package jobs

import (
	"context"
	"time"

	"HospitalHub/db"
	"HospitalHub/models"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

const DigestSchedule = "0 8 * * *"

// Digest summarizes hospitals still waiting for a platform admin decision.
type Digest struct {
	Pending    int
	OldestName string
	OldestAge  time.Duration
}

/*
* Runs every day at 08:00
* Logs how many hospitals are awaiting approval and the oldest one
 */
func StartDailyScheduler(store db.Store) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(DigestSchedule, func() {
		log.Println("Running daily pending hospital digest...")
		RunPendingDigest(context.Background(), store, time.Now())
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}

func RunPendingDigest(ctx context.Context, store db.Store, now time.Time) {
	d, err := PendingDigest(ctx, store, now)
	if err != nil {
		log.Println("Error building pending hospital digest:", err)
		return
	}
	if d.Pending == 0 {
		log.Println("No hospitals awaiting approval")
		return
	}
	log.WithFields(log.Fields{
		"pending":   d.Pending,
		"oldest":    d.OldestName,
		"oldestAge": d.OldestAge.Round(time.Hour).String(),
	}).Warn("Hospitals awaiting approval")
}

func PendingDigest(ctx context.Context, store db.Store, now time.Time) (Digest, error) {
	hospitals, err := store.ListHospitals(ctx, models.StatusPending)
	if err != nil {
		return Digest{}, err
	}
	d := Digest{Pending: len(hospitals)}
	var oldest time.Time
	for _, h := range hospitals {
		if oldest.IsZero() || h.CreatedAt.Before(oldest) {
			oldest = h.CreatedAt
			d.OldestName = h.Name
		}
	}
	if !oldest.IsZero() {
		d.OldestAge = now.Sub(oldest)
	}
	return d, nil
}
