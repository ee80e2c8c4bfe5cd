package models

const SettingVKRDeadline = "vkr_edit_deadline"

type SystemSetting struct {
	Name  string `gorm:"column:setting_name;primaryKey"`
	Value string `gorm:"column:setting_value"`
}

func (SystemSetting) TableName() string {
	return "system_settings"
}
