package service

import (
	"time"

	"storefront/internal/store"

	"golang.org/x/crypto/bcrypt"
)

func restoreGlobals() {
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
	timeNow = time.Now
	getUserByEmail = store.GetUserByEmail
	listUserIDsByRole = store.ListUserIDsByRole
	createNotification = store.CreateNotification
	deleteExpiredNotifications = store.DeleteExpiredNotifications
}
