package database

import (
	"context"
	"fmt"

	"edumanager/internal/config"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

func NewMySQL(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS cycles (
		id CHAR(36) NOT NULL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		enabled TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS classes (
		id CHAR(36) NOT NULL PRIMARY KEY,
		cycle_id CHAR(36) NOT NULL,
		name VARCHAR(100) NOT NULL,
		enabled TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		INDEX idx_classes_cycle (cycle_id),
		CONSTRAINT fk_classes_cycle FOREIGN KEY (cycle_id) REFERENCES cycles (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS class_fields (
		id CHAR(36) NOT NULL,
		class_id CHAR(36) NOT NULL,
		name VARCHAR(100) NOT NULL,
		type VARCHAR(16) NOT NULL,
		required TINYINT(1) NOT NULL DEFAULT 0,
		sort_order INT NOT NULL,
		has_photo TINYINT(1) NOT NULL DEFAULT 0,
		PRIMARY KEY (class_id, id),
		UNIQUE KEY uq_class_fields_name (class_id, name),
		CONSTRAINT fk_class_fields_class FOREIGN KEY (class_id) REFERENCES classes (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS imported_files (
		id CHAR(36) NOT NULL PRIMARY KEY,
		class_id CHAR(36) NOT NULL,
		file_name VARCHAR(255) NOT NULL,
		period VARCHAR(8) NOT NULL,
		upload_date DATETIME(3) NOT NULL,
		status VARCHAR(16) NOT NULL,
		record_count INT NOT NULL DEFAULT 0,
		error_message TEXT NULL,
		file_url VARCHAR(1024) NOT NULL DEFAULT '',
		content LONGTEXT NULL,
		INDEX idx_imported_files_class (class_id, upload_date),
		CONSTRAINT fk_imported_files_class FOREIGN KEY (class_id) REFERENCES classes (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS school_settings (
		id TINYINT NOT NULL PRIMARY KEY,
		name VARCHAR(150) NOT NULL,
		logo MEDIUMTEXT NULL,
		updated_at DATETIME NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates any missing tables.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
