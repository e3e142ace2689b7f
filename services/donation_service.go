package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cemaat.app/configs"
	"cemaat.app/configs/configslog"
	"cemaat.app/models"
	"cemaat.app/pkg/queryparams"
	"cemaat.app/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DonationServiceError özel servis hataları
type DonationServiceError string

func (e DonationServiceError) Error() string { return string(e) }

const (
	ErrDonationNotFound       DonationServiceError = "bağış kaydı bulunamadı"
	ErrDonationCreationFailed DonationServiceError = "bağış kaydı oluşturulamadı"
	ErrDonationUpdateFailed   DonationServiceError = "bağış kaydı güncellenemedi"
	ErrDonationDeletionFailed DonationServiceError = "bağış kaydı silinemedi"
	ErrDonationInvalidInput   DonationServiceError = "geçersiz bağış verisi"
	ErrDonationAmountRequired DonationServiceError = "bağış tutarı pozitif olmalıdır"
)

// IDonationService bağış işlemleri için arayüz.
type IDonationService interface {
	CreateDonation(ctx context.Context, organizationID, userID uint, donation models.Donation) (*models.Donation, error)
	GetDonationByID(ctx context.Context, organizationID, id uint) (*models.Donation, error)
	GetDonationsPaginated(ctx context.Context, organizationID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateDonation(ctx context.Context, organizationID, userID, id uint, changes models.Donation) error
	DeleteDonation(ctx context.Context, organizationID, userID, id uint) error
	GetDonationTotal(ctx context.Context, organizationID uint, from, to time.Time) (float64, error)
}

// DonationService IDonationService arayüzünü uygular.
type DonationService struct {
	repo repositories.IDonationRepository
	db   *gorm.DB
}

// NewDonationService yeni bir DonationService örneği oluşturur.
func NewDonationService() IDonationService {
	return &DonationService{
		repo: repositories.NewDonationRepository(),
		db:   configs.GetDB(),
	}
}

// NewDonationServiceWithDB verilen bağlantıyla servis oluşturur (testler için).
func NewDonationServiceWithDB(db *gorm.DB) IDonationService {
	return &DonationService{
		repo: repositories.NewDonationRepositoryTx(db),
		db:   db,
	}
}

// ValidateDonation temel validasyonları yapar.
func ValidateDonation(donation models.Donation) error {
	if donation.Amount <= 0 {
		return ErrDonationAmountRequired
	}
	if donation.DonatedAt.IsZero() {
		return fmt.Errorf("%w: bağış tarihi zorunludur", ErrDonationInvalidInput)
	}
	return nil
}

func (s *DonationService) CreateDonation(ctx context.Context, organizationID, userID uint, donation models.Donation) (*models.Donation, error) {
	if organizationID == 0 {
		return nil, fmt.Errorf("%w: organizasyon eksik", ErrDonationInvalidInput)
	}
	if err := ValidateDonation(donation); err != nil {
		return nil, err
	}
	if donation.Fund == "" {
		donation.Fund = models.DonationFundGeneral
	}

	donation.OrganizationID = organizationID
	if err := s.repo.Create(models.ContextWithUserID(ctx, userID), &donation); err != nil {
		configslog.Log.Error("Bağış kaydı oluşturulamadı", zap.Error(err))
		return nil, ErrDonationCreationFailed
	}
	configslog.SLog.Infof("Bağış kaydedildi: %.2f %s (%s fonu)", donation.Amount, donation.Currency, donation.Fund)
	return &donation, nil
}

func (s *DonationService) GetDonationByID(ctx context.Context, organizationID, id uint) (*models.Donation, error) {
	donation, err := s.repo.FindByID(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, err
	}
	return donation, nil
}

func (s *DonationService) GetDonationsPaginated(ctx context.Context, organizationID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if organizationID == 0 {
		return nil, fmt.Errorf("%w: organizasyon eksik", ErrDonationInvalidInput)
	}
	params.Validate()

	donations, totalCount, err := s.repo.FindAllPaginated(ctx, organizationID, params)
	if err != nil {
		configslog.Log.Error("Bağışlar listelenirken hata",
			zap.Uint("organizationID", organizationID), zap.Error(err))
		return nil, err
	}

	return &queryparams.PaginatedResult{
		Data: donations,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page, PerPage: params.PerPage,
			TotalItems: totalCount, TotalPages: queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

func (s *DonationService) UpdateDonation(ctx context.Context, organizationID, userID, id uint, changes models.Donation) error {
	if err := ValidateDonation(changes); err != nil {
		return err
	}

	existing, err := s.repo.FindByID(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrDonationNotFound
		}
		return err
	}

	existing.MemberID = changes.MemberID
	existing.Amount = changes.Amount
	existing.Currency = changes.Currency
	existing.Fund = changes.Fund
	existing.DonatedAt = changes.DonatedAt
	existing.Notes = changes.Notes

	if err := s.repo.Update(models.ContextWithUserID(ctx, userID), existing); err != nil {
		configslog.Log.Error("Bağış güncellenemedi", zap.Uint("id", id), zap.Error(err))
		return ErrDonationUpdateFailed
	}
	return nil
}

func (s *DonationService) DeleteDonation(ctx context.Context, organizationID, userID, id uint) error {
	existing, err := s.repo.FindByID(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrDonationNotFound
		}
		return err
	}
	if err := s.repo.Delete(models.ContextWithUserID(ctx, userID), existing, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrDonationNotFound
		}
		configslog.Log.Error("Bağış silinemedi", zap.Uint("id", id), zap.Error(err))
		return ErrDonationDeletionFailed
	}
	return nil
}

// GetDonationTotal [from, to) aralığındaki bağış toplamı.
func (s *DonationService) GetDonationTotal(ctx context.Context, organizationID uint, from, to time.Time) (float64, error) {
	return s.repo.SumByOrganization(ctx, organizationID, from, to)
}

var _ IDonationService = (*DonationService)(nil)
