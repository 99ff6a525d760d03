package qrcode

import (
	"context"
	"errors"
	"testing"

	appErrors "basepay/internal/errors"
	"basepay/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, qr *models.QRCode) (*models.QRCode, error) {
	args := m.Called(ctx, qr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QRCode), args.Error(1)
}

func (m *mockRepo) FindByWalletAndURL(ctx context.Context, walletAddress, websiteURL string) (*models.QRCode, error) {
	args := m.Called(ctx, walletAddress, websiteURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QRCode), args.Error(1)
}

func (m *mockRepo) FindByURL(ctx context.Context, websiteURL string) (*models.QRCode, error) {
	args := m.Called(ctx, websiteURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QRCode), args.Error(1)
}

func validRequest() models.CreateQRCodeRequest {
	return models.CreateQRCodeRequest{
		WalletAddress: "0xABC",
		WebsiteURL:    "https://shop.example",
		WebsiteName:   "Shop",
		Memo:          "invoice 1",
		QRData:        "0xABC",
	}
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("validation failures never touch the store", func(t *testing.T) {
		repo := new(mockRepo)
		s := NewService(repo, nil)

		req := validRequest()
		req.WebsiteName = ""
		_, err := s.Create(ctx, req)
		assert.ErrorIs(t, err, appErrors.ErrWebsiteNameRequired)

		req = validRequest()
		req.QRData = "0xDEF"
		_, err = s.Create(ctx, req)
		assert.ErrorIs(t, err, appErrors.ErrQRDataMismatch)

		repo.AssertExpectations(t)
	})

	t.Run("pair check runs before url check", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("FindByWalletAndURL", mock.Anything, "0xABC", "https://shop.example").
			Return(&models.QRCode{ID: 1}, nil)

		s := NewService(repo, nil)
		_, err := s.Create(ctx, validRequest())
		assert.ErrorIs(t, err, appErrors.ErrDuplicatePair)

		repo.AssertNotCalled(t, "FindByURL", mock.Anything, mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("url taken by another wallet", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("FindByWalletAndURL", mock.Anything, "0xABC", "https://shop.example").
			Return(nil, gorm.ErrRecordNotFound)
		repo.On("FindByURL", mock.Anything, "https://shop.example").
			Return(&models.QRCode{ID: 1, WalletAddress: "0xDEF"}, nil)

		s := NewService(repo, nil)
		_, err := s.Create(ctx, validRequest())
		assert.ErrorIs(t, err, appErrors.ErrURLTaken)

		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("store failure during duplicate check stops the protocol", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("FindByWalletAndURL", mock.Anything, "0xABC", "https://shop.example").
			Return(nil, errors.New("connection refused"))

		s := NewService(repo, nil)
		_, err := s.Create(ctx, validRequest())
		assert.Error(t, err)
		_, isDomain := appErrors.AsDomain(err)
		assert.False(t, isDomain)

		repo.AssertNotCalled(t, "FindByURL", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("insert defaults amount and returns the stored record", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("FindByWalletAndURL", mock.Anything, "0xABC", "https://shop.example").
			Return(nil, gorm.ErrRecordNotFound)
		repo.On("FindByURL", mock.Anything, "https://shop.example").
			Return(nil, gorm.ErrRecordNotFound)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(qr *models.QRCode) bool {
			return qr.Amount == "0" && qr.QRData == "0xABC"
		})).Return(&models.QRCode{ID: 7, WalletAddress: "0xABC", Amount: "0"}, nil)

		s := NewService(repo, nil)
		created, err := s.Create(ctx, validRequest())
		assert.NoError(t, err)
		assert.EqualValues(t, 7, created.ID)

		repo.AssertExpectations(t)
	})

	t.Run("lost uniqueness race maps to url conflict", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("FindByWalletAndURL", mock.Anything, "0xABC", "https://shop.example").
			Return(nil, gorm.ErrRecordNotFound)
		repo.On("FindByURL", mock.Anything, "https://shop.example").
			Return(nil, gorm.ErrRecordNotFound)
		repo.On("Create", mock.Anything, mock.Anything).
			Return(nil, gorm.ErrDuplicatedKey)

		s := NewService(repo, nil)
		_, err := s.Create(ctx, validRequest())
		assert.ErrorIs(t, err, appErrors.ErrURLTaken)
	})
}

func TestServiceGet(t *testing.T) {
	ctx := context.Background()

	t.Run("not found maps to domain error", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("FindByWalletAndURL", mock.Anything, "0xABC", "https://shop.example").
			Return(nil, gorm.ErrRecordNotFound)

		s := NewService(repo, nil)
		_, err := s.Get(ctx, "0xABC", "https://shop.example")
		assert.ErrorIs(t, err, appErrors.ErrQRNotFound)
	})

	t.Run("store failure stays outside the domain taxonomy", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("FindByWalletAndURL", mock.Anything, "0xABC", "https://shop.example").
			Return(nil, errors.New("timeout"))

		s := NewService(repo, nil)
		_, err := s.Get(ctx, "0xABC", "https://shop.example")
		assert.Error(t, err)
		_, isDomain := appErrors.AsDomain(err)
		assert.False(t, isDomain)
	})

	t.Run("hit returns the record", func(t *testing.T) {
		repo := new(mockRepo)
		want := &models.QRCode{ID: 3, WalletAddress: "0xABC", WebsiteURL: "https://shop.example"}
		repo.On("FindByWalletAndURL", mock.Anything, "0xABC", "https://shop.example").
			Return(want, nil)

		s := NewService(repo, nil)
		got, err := s.Get(ctx, "0xABC", "https://shop.example")
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	})
}
