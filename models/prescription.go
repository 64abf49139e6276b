package models

import (
	"log/slog"
	"time"

	"gorm.io/gorm"
)

// Prescription is an uploaded prescription image a customer attaches to a
// lens configuration before checkout.
type Prescription struct {
	ID        uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string         `json:"user_id" gorm:"index;not null"`
	FileName  string         `json:"file_name" gorm:"not null"`
	FileURL   string         `json:"file_url" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func SavePrescription(db *gorm.DB, userID, fileName, fileURL string) (*Prescription, error) {
	p := &Prescription{
		UserID:   userID,
		FileName: fileName,
		FileURL:  fileURL,
	}
	if err := db.Create(p).Error; err != nil {
		return nil, err
	}

	slog.Info("saved prescription upload", "file", fileName, "user", userID)
	return p, nil
}

func GetUserPrescriptions(db *gorm.DB, userID string) ([]Prescription, error) {
	var files []Prescription
	if err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}
