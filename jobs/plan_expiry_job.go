package jobs

import (
	"log"
	"time"

	"github.com/framestack/framestack_backend/database"
	"github.com/framestack/framestack_backend/models"
	"gorm.io/gorm"
)

// ResetExpiredPlans downgrades every user whose completed order has passed
// its expiry: the order's remaining credits come off the user's balance
// (floored at zero) and the order is marked expired. Runs daily from cron.
func ResetExpiredPlans() {
	log.Println("Running job: ResetExpiredPlans...")

	var expiredOrders []models.Order
	err := database.DB.
		Where("expires_at < ? AND status = ?", time.Now(), "completed").
		Find(&expiredOrders).Error
	if err != nil {
		log.Printf("Error fetching expired orders: %v", err)
		return
	}

	resetCount := 0
	for _, order := range expiredOrders {
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			var user models.User
			if err := tx.First(&user, order.UserID).Error; err != nil {
				return err
			}

			user.Credit -= order.Credits
			if user.Credit < 0 {
				user.Credit = 0
			}
			user.Plan = "Free"
			if err := tx.Save(&user).Error; err != nil {
				return err
			}

			order.Status = "expired"
			order.Credits = 0
			return tx.Save(&order).Error
		})
		if err != nil {
			log.Printf("Failed to reset expired order %d: %v", order.ID, err)
			continue
		}
		resetCount++
	}

	if resetCount > 0 {
		log.Printf("✅ %d expired orders have been processed.", resetCount)
	}
}

// ResetExpiredPlanFor checks a single user's latest order before a new
// purchase is applied, so stale credits never roll into the new plan.
func ResetExpiredPlanFor(user *models.User) {
	var latest models.Order
	err := database.DB.
		Where("user_id = ?", user.ID).
		Order("created_at desc").
		First(&latest).Error
	if err != nil {
		return
	}

	if latest.Status == "completed" && latest.IsExpired() {
		user.Credit = 0
		user.Plan = "Free"
		if err := database.DB.Save(user).Error; err != nil {
			log.Printf("Failed to reset expired plan for user %d: %v", user.ID, err)
			return
		}

		latest.Status = "expired"
		latest.Credits = 0
		if err := database.DB.Save(&latest).Error; err != nil {
			log.Printf("Failed to expire order %d: %v", latest.ID, err)
		}
	}
}
