package migrations

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

type Migration struct {
	Name string
	Run  func(ctx context.Context, database *mongo.Database) error
}

// All lists the migrations in the order they are applied. Every one is idempotent.
var All = []Migration{
	{Name: "001_create_account_indexes", Run: CreateAccountIndexes},
	{Name: "002_backfill_approval_status", Run: BackfillApprovalStatus},
	{Name: "003_backfill_is_active", Run: BackfillIsActive},
}

func Run(ctx context.Context, database *mongo.Database) error {
	for _, m := range All {
		if err := m.Run(ctx, database); err != nil {
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
		log.Println("Migration applied:", m.Name)
	}
	return nil
}
