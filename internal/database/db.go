package database

import (
	"vnts-backend/internal/config"
	"vnts-backend/internal/models"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("No se pudo conectar a la base de datos: %v", err)
	}

	if err := DB.AutoMigrate(
		&models.User{},
		&models.Seller{},
		&models.Client{},
		&models.Product{},
		&models.PaymentMethod{},
		&models.Sale{},
		&models.SaleItem{},
		&models.AppSetting{},
	); err != nil {
		log.Fatalf("Migración fallida: %v", err)
	}

	seedDefaults()
}

// seedDefaults: la app asume que siempre existe la fila del color primario
func seedDefaults() {
	var count int64
	DB.Model(&models.AppSetting{}).
		Where("key = ?", models.SettingPrimaryColor).
		Count(&count)
	if count == 0 {
		if err := DB.Create(&models.AppSetting{
			Key:   models.SettingPrimaryColor,
			Value: "#2563eb",
		}).Error; err != nil {
			log.Warnf("No se pudo crear la configuración inicial: %v", err)
		}
	}
}
