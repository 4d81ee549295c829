package db

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/business-booking/internal/config"
	"github.com/BruksfildServices01/business-booking/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db, cfg.DefaultTimezone); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	return db
}

// Migrate creates the tables and the constraints AutoMigrate cannot
// express. It is safe to run on every start.
func Migrate(db *gorm.DB, defaultTimezone string) error {
	if err := db.AutoMigrate(
		&models.BusinessType{},
		&models.Business{},
		&models.Service{},
		&models.EmployeeRole{},
		&models.Employee{},
		&models.EmployeeWorkSchedule{},
		&models.Order{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, stmt := range constraintStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("constraint: %w", err)
		}
	}

	return db.Exec(`
        UPDATE businesses
        SET timezone = ?
        WHERE timezone IS NULL OR timezone = ''
    `, defaultTimezone).Error
}

// Two orders of one employee may not overlap; [) keeps back-to-back
// orders legal.
var constraintStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,
	`DO $$
    BEGIN
        IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'orders_time_range_check') THEN
            ALTER TABLE orders ADD CONSTRAINT orders_time_range_check CHECK (start_time < end_time);
        END IF;
        IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'orders_employee_no_overlap') THEN
            ALTER TABLE orders ADD CONSTRAINT orders_employee_no_overlap
                EXCLUDE USING gist (employee_id WITH =, tstzrange(start_time, end_time, '[)') WITH &&);
        END IF;
    END $$`,
}
