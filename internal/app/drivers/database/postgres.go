package database

import (
	"database/sql"
	"fmt"
	"time"

	"mindscreen-service/internal/app/config"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func NewPostgresDB(driverConfig *config.DriverConfig, logger *zap.Logger) *sql.DB {
	connectionString := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		driverConfig.PostgresDB.Host,
		driverConfig.PostgresDB.Port,
		driverConfig.PostgresDB.Username,
		driverConfig.PostgresDB.Password,
		driverConfig.PostgresDB.DBName,
		driverConfig.PostgresDB.SSLMode,
	)

	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		logger.Fatal("Failed to open postgres database connection", zap.Error(err))
	}
	db.SetMaxOpenConns(driverConfig.PostgresDB.MaxOpenConns)
	db.SetMaxIdleConns(driverConfig.PostgresDB.MaxIdleConns)
	db.SetConnMaxLifetime(30 * time.Minute)

	err = db.Ping()
	if err != nil {
		logger.Fatal("Failed to connect to postgres database", zap.Error(err))
	}

	logger.Info("Successfully connected to postgres database")
	return db
}
