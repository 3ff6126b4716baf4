// Package model 定义数据模型
package model

import (
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "Entry":
		return db.AutoMigrate(Entry{})

	case "User":
		return db.AutoMigrate(User{})
	}
	return nil
}

// AutoMigrateAll migrates every table; used by the run command on startup.
func AutoMigrateAll(db *gorm.DB) error {
	for _, key := range []string{"Entry", "User"} {
		if err := AutoMigrate(db, key); err != nil {
			return err
		}
	}
	return nil
}
