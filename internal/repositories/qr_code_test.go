package repositories

import (
	"context"
	"testing"

	"basepay/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) QRCodeRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.QRCode{}))

	return NewQRCodeRepository(db)
}

func TestQRCodeRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create and find back", func(t *testing.T) {
		repo := setupRepo(t)

		created, err := repo.Create(ctx, &models.QRCode{
			WalletAddress: "0xABC",
			WebsiteURL:    "https://shop.example",
			WebsiteName:   "Shop",
			Amount:        "0",
			QRData:        "0xABC",
		})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)

		byPair, err := repo.FindByWalletAndURL(ctx, "0xABC", "https://shop.example")
		require.NoError(t, err)
		assert.Equal(t, created.ID, byPair.ID)

		byURL, err := repo.FindByURL(ctx, "https://shop.example")
		require.NoError(t, err)
		assert.Equal(t, created.ID, byURL.ID)
	})

	t.Run("miss returns record not found", func(t *testing.T) {
		repo := setupRepo(t)

		_, err := repo.FindByWalletAndURL(ctx, "0xABC", "https://missing.example")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		_, err = repo.FindByURL(ctx, "https://missing.example")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("unique index rejects a second row for the url", func(t *testing.T) {
		repo := setupRepo(t)

		_, err := repo.Create(ctx, &models.QRCode{
			WalletAddress: "0xABC",
			WebsiteURL:    "https://shop.example",
			WebsiteName:   "Shop",
			Amount:        "0",
			QRData:        "0xABC",
		})
		require.NoError(t, err)

		// Same URL from another wallet: this is what a lost
		// check-then-act race produces.
		_, err = repo.Create(ctx, &models.QRCode{
			WalletAddress: "0xDEF",
			WebsiteURL:    "https://shop.example",
			WebsiteName:   "Shop",
			Amount:        "0",
			QRData:        "0xDEF",
		})
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})
}
