package migration

import (
	"github.com/kinetix-inc/kinetix/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.MemberModel{},
		&models.PackageModel{},
		&models.CouponModel{},
		&models.SubscriptionModel{},
		&models.VisitModel{},
		&models.InvoiceModel{},
		&models.PaymentModel{},
		&models.CampaignModel{},
		&models.CampaignMessageModel{},
		&models.SequenceModel{},
	}
}
