package persistence

import (
	"fmt"

	"github.com/refdata/backend/internal/domain/refdata"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the reference data schema. Production
// deployments run SQL migrations instead; this is for development and
// ephemeral test databases.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&refdata.City{},
		&refdata.Warehouse{},
		&refdata.Storage{},
		&refdata.CashRegister{},
		&refdata.LegalEntityType{},
		&refdata.LegalEntity{},
		&refdata.EntityCompanyRelation{},
	)
}

// DropAllTables drops every table in the public schema in one
// transaction. Test teardown only; never reachable from request
// handling.
func DropAllTables(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var tables []string
		err := tx.Raw(
			"SELECT tablename FROM pg_tables WHERE schemaname = 'public'",
		).Scan(&tables).Error
		if err != nil {
			return err
		}
		for _, table := range tables {
			if err := tx.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %q CASCADE`, table)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
