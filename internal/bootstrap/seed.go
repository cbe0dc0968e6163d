package bootstrap

import (
	"anoa.com/fedipost/internal/entity"
	"anoa.com/fedipost/pkg/logger"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.File{},
		&entity.Post{},
		&entity.PostFile{},
		&entity.Reaction{},
	)
}

// SeedDevelopment creates a local account and one sample file so that the
// post endpoints can be exercised without the upload service.
func SeedDevelopment(db *gorm.DB, domain string, log *logger.Logger) error {
	var count int64
	if err := db.Model(&entity.User{}).
		Where("handle = ? AND host = ?", "admin", domain).
		Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		admin := entity.User{Handle: "admin", Host: domain}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		log.Info("seeded development user", "handle", admin.Handle, "host", admin.Host)
	}

	sampleURL := "https://" + domain + "/files/sample.png"
	if err := db.Model(&entity.File{}).
		Where("url = ?", sampleURL).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Debug("sample file already exists, skipping seed")
		return nil
	}

	alt := "sample image"
	file := entity.File{
		MediaType: "image/png",
		URL:       sampleURL,
		Alt:       &alt,
	}
	if err := db.Create(&file).Error; err != nil {
		return err
	}

	log.Info("seeded sample file", "file_id", file.ID, "url", file.URL)
	return nil
}
