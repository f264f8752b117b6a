package jobs

import (
	"log"
	"time"

	"github.com/anjiri1684/job_portal/database"
	"github.com/anjiri1684/job_portal/models"
)

const pendingPaymentTTL = 24 * time.Hour

// ExpireStalePayments fails PENDING payment records whose order was never
// verified. The status guard in the WHERE clause keeps the sweep from touching
// a record a concurrent verify just finalized; an applicant who comes back
// later simply gets a fresh order.
func ExpireStalePayments() {
	log.Println("Running job: ExpireStalePayments...")

	cutoff := time.Now().Add(-pendingPaymentTTL)

	result := database.DB.
		Model(&models.Payment{}).
		Where("status = ? AND created_at < ?", models.PaymentPending, cutoff).
		Update("status", models.PaymentFailed)

	if result.Error != nil {
		log.Printf("Error expiring stale payments: %v", result.Error)
		return
	}

	if result.RowsAffected == 0 {
		log.Println("No stale pending payments found.")
		return
	}

	log.Printf("Marked %d stale payment(s) as failed.", result.RowsAffected)
}
