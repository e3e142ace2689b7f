package services

import (
	"context"
	"errors"
	"fmt"

	"cemaat.app/configs"
	"cemaat.app/configs/configslog"
	"cemaat.app/models"
	"cemaat.app/pkg/queryparams"
	"cemaat.app/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MemberServiceError özel servis hataları
type MemberServiceError string

func (e MemberServiceError) Error() string { return string(e) }

const (
	ErrMemberNotFound       MemberServiceError = "üye bulunamadı"
	ErrMemberCreationFailed MemberServiceError = "üye oluşturulamadı"
	ErrMemberUpdateFailed   MemberServiceError = "üye güncellenemedi"
	ErrMemberDeletionFailed MemberServiceError = "üye silinemedi"
	ErrMemberInvalidInput   MemberServiceError = "geçersiz üye verisi"
	ErrMemberNameRequired   MemberServiceError = "üye adı ve soyadı zorunludur"
)

// IMemberService üye işlemleri için arayüz.
type IMemberService interface {
	CreateMember(ctx context.Context, organizationID, userID uint, member models.Member) (*models.Member, error)
	GetMemberByID(ctx context.Context, organizationID, id uint) (*models.Member, error)
	GetMembersPaginated(ctx context.Context, organizationID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateMember(ctx context.Context, organizationID, userID, id uint, changes models.Member) error
	DeleteMember(ctx context.Context, organizationID, userID, id uint) error
	GetMemberCount(ctx context.Context, organizationID uint) (int64, error)
}

// MemberService IMemberService arayüzünü uygular.
type MemberService struct {
	repo repositories.IMemberRepository
	db   *gorm.DB
}

// NewMemberService yeni bir MemberService örneği oluşturur.
func NewMemberService() IMemberService {
	return &MemberService{
		repo: repositories.NewMemberRepository(),
		db:   configs.GetDB(),
	}
}

// NewMemberServiceWithDB verilen bağlantıyla servis oluşturur (testler için).
func NewMemberServiceWithDB(db *gorm.DB) IMemberService {
	return &MemberService{
		repo: repositories.NewMemberRepositoryTx(db),
		db:   db,
	}
}

// ValidateMember temel validasyonları yapar.
func ValidateMember(member models.Member) error {
	if member.FirstName == "" || member.LastName == "" {
		return ErrMemberNameRequired
	}
	if member.BirthDate != nil && member.JoinedAt != nil && member.BirthDate.After(*member.JoinedAt) {
		return fmt.Errorf("%w: doğum tarihi katılım tarihinden sonra olamaz", ErrMemberInvalidInput)
	}
	return nil
}

func (s *MemberService) CreateMember(ctx context.Context, organizationID, userID uint, member models.Member) (*models.Member, error) {
	if organizationID == 0 {
		return nil, fmt.Errorf("%w: organizasyon eksik", ErrMemberInvalidInput)
	}
	if err := ValidateMember(member); err != nil {
		return nil, err
	}

	member.OrganizationID = organizationID
	if err := s.repo.Create(models.ContextWithUserID(ctx, userID), &member); err != nil {
		configslog.Log.Error("Üye oluşturulamadı", zap.Error(err))
		return nil, ErrMemberCreationFailed
	}
	configslog.SLog.Infof("Üye oluşturuldu: %s (ID %d)", member.FullName(), member.ID)
	return &member, nil
}

func (s *MemberService) GetMemberByID(ctx context.Context, organizationID, id uint) (*models.Member, error) {
	member, err := s.repo.FindByID(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

func (s *MemberService) GetMembersPaginated(ctx context.Context, organizationID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if organizationID == 0 {
		return nil, fmt.Errorf("%w: organizasyon eksik", ErrMemberInvalidInput)
	}
	params.Validate()

	members, totalCount, err := s.repo.FindAllPaginated(ctx, organizationID, params)
	if err != nil {
		configslog.Log.Error("Üyeler listelenirken hata",
			zap.Uint("organizationID", organizationID), zap.Error(err))
		return nil, err
	}

	return &queryparams.PaginatedResult{
		Data: members,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page, PerPage: params.PerPage,
			TotalItems: totalCount, TotalPages: queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

func (s *MemberService) UpdateMember(ctx context.Context, organizationID, userID, id uint, changes models.Member) error {
	if err := ValidateMember(changes); err != nil {
		return err
	}

	existing, err := s.repo.FindByID(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMemberNotFound
		}
		return err
	}

	existing.FirstName = changes.FirstName
	existing.LastName = changes.LastName
	existing.Email = changes.Email
	existing.Phone = changes.Phone
	existing.Address = changes.Address
	existing.BirthDate = changes.BirthDate
	existing.JoinedAt = changes.JoinedAt
	existing.Notes = changes.Notes
	existing.IsActive = changes.IsActive

	if err := s.repo.Update(models.ContextWithUserID(ctx, userID), existing); err != nil {
		configslog.Log.Error("Üye güncellenemedi", zap.Uint("id", id), zap.Error(err))
		return ErrMemberUpdateFailed
	}
	return nil
}

func (s *MemberService) DeleteMember(ctx context.Context, organizationID, userID, id uint) error {
	existing, err := s.repo.FindByID(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMemberNotFound
		}
		return err
	}
	if err := s.repo.Delete(models.ContextWithUserID(ctx, userID), existing, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMemberNotFound
		}
		configslog.Log.Error("Üye silinemedi", zap.Uint("id", id), zap.Error(err))
		return ErrMemberDeletionFailed
	}
	configslog.SLog.Infof("Üye silindi: ID %d (silen: %d)", id, userID)
	return nil
}

func (s *MemberService) GetMemberCount(ctx context.Context, organizationID uint) (int64, error) {
	return s.repo.CountByOrganization(ctx, organizationID)
}

var _ IMemberService = (*MemberService)(nil)
