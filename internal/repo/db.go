package repo

import (
	"CurrentCalc/internal/model"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// InitDB открывает соединение с БД и выполняет автомиграции.
// Непустой DSN трактуется как Postgres; без DSN поднимается локальный
// SQLite-файл (dev-режим).
func InitDB(dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	if dsn != "" {
		dial = postgres.Open(dsn)
	} else {
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: "current_calc.sqlite"}
	}

	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Device{},
		&model.CurrentCalculation{},
		&model.CurrentDevice{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
