package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/rentpro/internal/application/dto"
	"github.com/tu-usuario/rentpro/internal/domain"
	"github.com/tu-usuario/rentpro/internal/domain/actor"
	"github.com/tu-usuario/rentpro/internal/domain/entity"
	"github.com/tu-usuario/rentpro/internal/domain/repository"
	"github.com/tu-usuario/rentpro/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro de propietarios e
// inquilinos y login.
type AuthUseCase struct {
	txRunner     TxRunner
	userRepo     repository.UserRepository
	ownerRepo    repository.OwnerRepository
	tenantRepo   repository.TenantRepository
	propertyRepo repository.PropertyRepository
	jwtCfg       JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	txRunner TxRunner,
	userRepo repository.UserRepository,
	ownerRepo repository.OwnerRepository,
	tenantRepo repository.TenantRepository,
	propertyRepo repository.PropertyRepository,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{
		txRunner:     txRunner,
		userRepo:     userRepo,
		ownerRepo:    ownerRepo,
		tenantRepo:   tenantRepo,
		propertyRepo: propertyRepo,
		jwtCfg:       jwtCfg,
	}
}

// RegisterOwner crea usuario + perfil de propietario en una transacción.
// Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterOwner(ctx context.Context, in dto.RegisterOwnerRequest) (*dto.UserResponse, error) {
	existing, _ := uc.userRepo.FindByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		UserType:     entity.UserTypeOwner,
		PhoneNumber:  in.PhoneNumber,
		Address:      in.Address,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	owner := &entity.PropertyOwner{
		ID:          uuid.New().String(),
		UserID:      user.ID,
		CompanyName: in.CompanyName,
		TaxID:       in.TaxID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.txRunner.RunRegistration(ctx, func(
		userRepo repository.UserRepository,
		ownerRepo repository.OwnerRepository,
		_ repository.TenantRepository,
		_ repository.TenantPropertyRepository,
	) error {
		if err := userRepo.Create(user); err != nil {
			return err
		}
		return ownerRepo.Create(owner)
	})
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// RegisterTenant crea usuario + perfil de inquilino. Si lo inicia un propietario
// sobre una de sus propiedades (in.PropertyID), la relación inquilino-propiedad
// nace activa de inmediato; un ActorOwnerID vacío omite la relación.
func (uc *AuthUseCase) RegisterTenant(ctx context.Context, act actor.Actor, in dto.RegisterTenantRequest) (*dto.UserResponse, error) {
	existing, _ := uc.userRepo.FindByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if in.PropertyID != "" {
		prop, err := uc.propertyRepo.GetByID(in.PropertyID)
		if err != nil {
			return nil, err
		}
		if prop == nil {
			return nil, domain.ErrNotFound
		}
		if !act.OwnsProfile(actor.TypeOwner, prop.OwnerID) {
			return nil, domain.ErrForbidden
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		UserType:     entity.UserTypeTenant,
		PhoneNumber:  in.PhoneNumber,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	tenant := &entity.Tenant{
		ID:               uuid.New().String(),
		UserID:           user.ID,
		EmergencyContact: in.EmergencyContact,
		EmploymentInfo:   in.EmploymentInfo,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	err = uc.txRunner.RunRegistration(ctx, func(
		userRepo repository.UserRepository,
		_ repository.OwnerRepository,
		tenantRepo repository.TenantRepository,
		tpRepo repository.TenantPropertyRepository,
	) error {
		if err := userRepo.Create(user); err != nil {
			return err
		}
		if err := tenantRepo.Create(tenant); err != nil {
			return err
		}
		if in.PropertyID == "" {
			return nil
		}
		start := now
		return tpRepo.Create(&entity.TenantProperty{
			ID:         uuid.New().String(),
			TenantID:   tenant.ID,
			PropertyID: in.PropertyID,
			Status:     entity.TenantPropertyStatusActive,
			StartDate:  &start,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, resuelve el perfil según user_type y genera JWT.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	profileID, err := uc.profileID(user)
	if err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.UserType, profileID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		User:      *toUserResponse(user),
		ProfileID: profileID,
	}, nil
}

// profileID resuelve el ID del perfil owner/tenant; superadmin y manager usan
// el ID del usuario.
func (uc *AuthUseCase) profileID(user *entity.User) (string, error) {
	switch user.UserType {
	case entity.UserTypeOwner:
		owner, err := uc.ownerRepo.GetByUserID(user.ID)
		if err != nil {
			return "", err
		}
		if owner == nil {
			return "", domain.ErrNotFound
		}
		return owner.ID, nil
	case entity.UserTypeTenant:
		tenant, err := uc.tenantRepo.GetByUserID(user.ID)
		if err != nil {
			return "", err
		}
		if tenant == nil {
			return "", domain.ErrNotFound
		}
		return tenant.ID, nil
	}
	return user.ID, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		UserType:    u.UserType,
		PhoneNumber: u.PhoneNumber,
		Address:     u.Address,
		Status:      u.Status,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
