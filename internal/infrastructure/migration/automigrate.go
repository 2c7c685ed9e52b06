package migration

import (
	"stocktake/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.SessionCacheModel{},
		&models.ProductModel{},
	}
}
