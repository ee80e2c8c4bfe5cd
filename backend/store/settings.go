package store

import (
	"coursework/backend/models"

	"gorm.io/gorm/clause"
)

// GetSetting returns the value stored under name; ok is false when the key is absent.
func (s *Store) GetSetting(name string) (string, bool, error) {
	var setting models.SystemSetting
	if err := s.DB.Where("setting_name = ?", name).First(&setting).Error; err != nil {
		if notFound(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return setting.Value, true, nil
}

// SetSetting создает или обновляет настройку
func (s *Store) SetSetting(name, value string) error {
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"setting_value"}),
	}).Create(&models.SystemSetting{Name: name, Value: value}).Error
}
