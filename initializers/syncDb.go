package initializers

import (
	"fmt"
	"log/slog"

	"github.com/Kariqs/maxtech-api/models"
)

func SyncDatabase() error {
	if err := DB.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	slog.Info("Database synced successfully.")
	return nil
}
