package daemon

import (
	"errors"

	"gorm.io/gorm"

	"github.com/commonshub/commonshub/internal/config"
	"github.com/commonshub/commonshub/internal/db/controller/setting"
	"github.com/commonshub/commonshub/internal/db/models"
)

func seed(_ *config.Config, db *gorm.DB) {
	// Seed initial data if user table is empty

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count == 0 {
		// Create default admin user
		db.Create(
			&models.User{
				Username: "admin",
				Password: models.HashPassword("changeme"),
				Active:   true,
				Verified: true,
				IsAdmin:  true,
			},
		)
	}

	// Default settings get created once and kept afterwards.
	if _, err := setting.Get(db, models.SettingNotifyAdminsOnGroupCreate); errors.Is(err, setting.ErrSettingNotFound) {
		_, _ = setting.Create(db, models.SettingNotifyAdminsOnGroupCreate, []byte("1"))
	}
}
