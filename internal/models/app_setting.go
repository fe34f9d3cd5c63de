package models

import "time"

// AppSetting: configuración clave/valor de la aplicación (color primario, etc.)
type AppSetting struct {
	Key       string    `gorm:"size:50;primaryKey" json:"key"`
	Value     string    `gorm:"size:255;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

const SettingPrimaryColor = "primary_color"
