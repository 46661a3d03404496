package registry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/rentpro/internal/application/dto"
	"github.com/tu-usuario/rentpro/internal/domain"
	"github.com/tu-usuario/rentpro/internal/domain/actor"
	"github.com/tu-usuario/rentpro/internal/domain/entity"
	"github.com/tu-usuario/rentpro/internal/domain/repository"
)

// RegistryUseCase casos de uso del registro de propiedades, unidades y
// cuentas de cobro.
type RegistryUseCase struct {
	txRunner    TxRunner
	propRepo    repository.PropertyRepository
	unitRepo    repository.UnitRepository
	accountRepo repository.BankAccountRepository
	imageRepo   repository.ImageRepository
	leaseRepo   repository.LeaseRepository
}

// NewRegistryUseCase construye el caso de uso.
func NewRegistryUseCase(
	txRunner TxRunner,
	propRepo repository.PropertyRepository,
	unitRepo repository.UnitRepository,
	accountRepo repository.BankAccountRepository,
	imageRepo repository.ImageRepository,
	leaseRepo repository.LeaseRepository,
) *RegistryUseCase {
	return &RegistryUseCase{
		txRunner:    txRunner,
		propRepo:    propRepo,
		unitRepo:    unitRepo,
		accountRepo: accountRepo,
		imageRepo:   imageRepo,
		leaseRepo:   leaseRepo,
	}
}

// activePlanForUpdate bloquea la suscripción activa del owner dentro de la tx
// y devuelve su plan. ErrNoActiveSubscription si no hay.
func activePlanForUpdate(subRepo repository.SubscriptionRepository, planRepo repository.PlanRepository, ownerID string) (*entity.SubscriptionPlan, error) {
	sub, err := subRepo.GetActiveByOwnerForUpdate(ownerID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domain.ErrNoActiveSubscription
	}
	plan, err := planRepo.GetByID(sub.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	return plan, nil
}

// CreateProperty registra una propiedad: dentro de una transacción bloquea la
// suscripción activa, re-chequea el cupo (disponibles+1 <= max_properties) y
// hace el insert. ErrQuotaExceeded si no hay cupo.
func (uc *RegistryUseCase) CreateProperty(ctx context.Context, ownerID string, in dto.CreatePropertyRequest) (*entity.Property, error) {
	now := time.Now()
	prop := &entity.Property{
		ID:           uuid.New().String(),
		OwnerID:      ownerID,
		Title:        in.Title,
		PropertyType: in.PropertyType,
		Address:      in.Address,
		City:         in.City,
		State:        in.State,
		PostalCode:   in.PostalCode,
		Description:  in.Description,
		IsAvailable:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := uc.txRunner.RunRegistry(ctx, func(
		subRepo repository.SubscriptionRepository,
		planRepo repository.PlanRepository,
		propRepo repository.PropertyRepository,
		_ repository.UnitRepository,
	) error {
		plan, err := activePlanForUpdate(subRepo, planRepo, ownerID)
		if err != nil {
			return err
		}
		count, err := propRepo.CountAvailableByOwner(ownerID)
		if err != nil {
			return err
		}
		if count+1 > plan.MaxProperties {
			return domain.ErrQuotaExceeded
		}
		return propRepo.Create(prop)
	})
	if err != nil {
		return nil, err
	}
	return prop, nil
}

// GetProperty devuelve la propiedad con sus unidades e imágenes; autoriza por
// Actor.
func (uc *RegistryUseCase) GetProperty(act actor.Actor, id string) (*entity.Property, []*entity.PropertyUnit, []*entity.PropertyImage, error) {
	prop, err := uc.propRepo.GetByID(id)
	if err != nil {
		return nil, nil, nil, err
	}
	if prop == nil {
		return nil, nil, nil, domain.ErrNotFound
	}
	if act.IsOwner() && !act.OwnsProfile(actor.TypeOwner, prop.OwnerID) {
		return nil, nil, nil, domain.ErrForbidden
	}
	units, err := uc.unitRepo.ListByProperty(id)
	if err != nil {
		return nil, nil, nil, err
	}
	images, err := uc.imageRepo.ListByProperty(id)
	if err != nil {
		return nil, nil, nil, err
	}
	return prop, units, images, nil
}

// ListProperties lista las propiedades del propietario.
func (uc *RegistryUseCase) ListProperties(ownerID string, page dto.PageRequest) ([]*entity.Property, error) {
	page.DefaultPage()
	return uc.propRepo.ListByOwner(ownerID, page.Limit, page.Offset)
}

// UpdateProperty modifica campos editables; el tipo de propiedad es inmutable.
func (uc *RegistryUseCase) UpdateProperty(act actor.Actor, id string, in dto.UpdatePropertyRequest) (*entity.Property, error) {
	prop, err := uc.ownedProperty(act, id)
	if err != nil {
		return nil, err
	}
	if in.Title != "" {
		prop.Title = in.Title
	}
	if in.Address != "" {
		prop.Address = in.Address
	}
	if in.City != "" {
		prop.City = in.City
	}
	if in.State != "" {
		prop.State = in.State
	}
	if in.PostalCode != "" {
		prop.PostalCode = in.PostalCode
	}
	if in.Description != "" {
		prop.Description = in.Description
	}
	if in.IsAvailable != nil {
		prop.IsAvailable = *in.IsAvailable
	}
	prop.UpdatedAt = time.Now()
	if err := uc.propRepo.Update(prop); err != nil {
		return nil, err
	}
	return prop, nil
}

// DeleteProperty elimina la propiedad si ninguna unidad tiene contrato activo;
// unidades, cuentas e imágenes caen en cascada por FK.
func (uc *RegistryUseCase) DeleteProperty(act actor.Actor, id string) error {
	prop, err := uc.ownedProperty(act, id)
	if err != nil {
		return err
	}
	hasActive, err := uc.leaseRepo.ExistsActiveForProperty(prop.ID)
	if err != nil {
		return err
	}
	if hasActive {
		return domain.ErrHasActiveLeases
	}
	return uc.propRepo.Delete(prop.ID)
}

// AddUnit registra una unidad: dentro de una transacción bloquea la
// suscripción activa y re-chequea count(units) < max_units. En propiedades
// comerciales bedrooms y bathrooms se fuerzan a 0, se ignora lo enviado.
func (uc *RegistryUseCase) AddUnit(ctx context.Context, act actor.Actor, propertyID string, in dto.CreateUnitRequest) (*entity.PropertyUnit, error) {
	prop, err := uc.ownedProperty(act, propertyID)
	if err != nil {
		return nil, err
	}
	if in.MonthlyRent.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	unit := &entity.PropertyUnit{
		ID:           uuid.New().String(),
		PropertyID:   prop.ID,
		UnitNumber:   in.UnitNumber,
		MonthlyRent:  in.MonthlyRent,
		Bedrooms:     in.Bedrooms,
		Bathrooms:    in.Bathrooms,
		SquareFeet:   in.SquareFeet,
		BusinessType: in.BusinessType,
		IsAvailable:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if prop.IsCommercial() {
		unit.Bedrooms = 0
		unit.Bathrooms = 0
	}
	err = uc.txRunner.RunRegistry(ctx, func(
		subRepo repository.SubscriptionRepository,
		planRepo repository.PlanRepository,
		_ repository.PropertyRepository,
		unitRepo repository.UnitRepository,
	) error {
		plan, err := activePlanForUpdate(subRepo, planRepo, prop.OwnerID)
		if err != nil {
			return err
		}
		count, err := unitRepo.CountByProperty(prop.ID)
		if err != nil {
			return err
		}
		if count >= plan.MaxUnits {
			return domain.ErrQuotaExceeded
		}
		return unitRepo.Create(unit)
	})
	if err != nil {
		return nil, err
	}
	return unit, nil
}

// UpdateUnit modifica una unidad; en propiedades comerciales bedrooms y
// bathrooms siguen forzados a 0.
func (uc *RegistryUseCase) UpdateUnit(act actor.Actor, unitID string, in dto.UpdateUnitRequest) (*entity.PropertyUnit, error) {
	unit, prop, err := uc.ownedUnit(act, unitID)
	if err != nil {
		return nil, err
	}
	if !in.MonthlyRent.IsZero() {
		if in.MonthlyRent.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		unit.MonthlyRent = in.MonthlyRent
	}
	if in.Bedrooms != nil {
		unit.Bedrooms = *in.Bedrooms
	}
	if in.Bathrooms != nil {
		unit.Bathrooms = *in.Bathrooms
	}
	if in.SquareFeet != nil {
		unit.SquareFeet = *in.SquareFeet
	}
	if in.BusinessType != "" {
		unit.BusinessType = in.BusinessType
	}
	if in.IsAvailable != nil {
		unit.IsAvailable = *in.IsAvailable
	}
	if prop.IsCommercial() {
		unit.Bedrooms = 0
		unit.Bathrooms = 0
	}
	unit.UpdatedAt = time.Now()
	if err := uc.unitRepo.Update(unit); err != nil {
		return nil, err
	}
	return unit, nil
}

// DeleteUnit elimina una unidad sin contrato activo.
func (uc *RegistryUseCase) DeleteUnit(act actor.Actor, unitID string) error {
	unit, _, err := uc.ownedUnit(act, unitID)
	if err != nil {
		return err
	}
	// Rango abierto: cualquier lease activo de la unidad bloquea el borrado.
	hasActive, err := uc.leaseRepo.ExistsActiveOverlap(unit.ID, time.Time{}, time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC), "")
	if err != nil {
		return err
	}
	if hasActive {
		return domain.ErrHasActiveLeases
	}
	return uc.unitRepo.Delete(unit.ID)
}

// AddImage asocia una imagen a la propiedad.
func (uc *RegistryUseCase) AddImage(act actor.Actor, propertyID string, in dto.AddImageRequest) (*entity.PropertyImage, error) {
	prop, err := uc.ownedProperty(act, propertyID)
	if err != nil {
		return nil, err
	}
	img := &entity.PropertyImage{
		ID:         uuid.New().String(),
		PropertyID: prop.ID,
		URL:        in.URL,
		Caption:    in.Caption,
		CreatedAt:  time.Now(),
	}
	if err := uc.imageRepo.Create(img); err != nil {
		return nil, err
	}
	return img, nil
}

// DeleteImage elimina una imagen de la propiedad.
func (uc *RegistryUseCase) DeleteImage(act actor.Actor, imageID string) error {
	img, err := uc.imageRepo.GetByID(imageID)
	if err != nil {
		return err
	}
	if img == nil {
		return domain.ErrNotFound
	}
	if _, err := uc.ownedProperty(act, img.PropertyID); err != nil {
		return err
	}
	return uc.imageRepo.Delete(img.ID)
}

// CreateBankAccount registra una cuenta de cobro en la propiedad. Nace activa.
func (uc *RegistryUseCase) CreateBankAccount(act actor.Actor, propertyID string, in dto.CreateBankAccountRequest) (*entity.BankAccount, error) {
	prop, err := uc.ownedProperty(act, propertyID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	account := &entity.BankAccount{
		ID:          uuid.New().String(),
		PropertyID:  prop.ID,
		Title:       in.Title,
		AccountType: in.AccountType,
		Status:      entity.BankAccountStatusActive,
		AccountMode: in.AccountMode,
		ClientID:    in.ClientID,
		SecretKey:   in.SecretKey,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.accountRepo.Create(account); err != nil {
		return nil, err
	}
	return account, nil
}

// ListBankAccounts lista las cuentas de cobro de la propiedad.
func (uc *RegistryUseCase) ListBankAccounts(act actor.Actor, propertyID string) ([]*entity.BankAccount, error) {
	if _, err := uc.ownedProperty(act, propertyID); err != nil {
		return nil, err
	}
	return uc.accountRepo.ListByProperty(propertyID)
}

// UpdateBankAccount modifica una cuenta de cobro.
func (uc *RegistryUseCase) UpdateBankAccount(act actor.Actor, accountID string, in dto.UpdateBankAccountRequest) (*entity.BankAccount, error) {
	account, err := uc.ownedAccount(act, accountID)
	if err != nil {
		return nil, err
	}
	if in.Title != "" {
		account.Title = in.Title
	}
	if in.Status != "" {
		account.Status = in.Status
	}
	if in.AccountMode != "" {
		account.AccountMode = in.AccountMode
	}
	if in.ClientID != "" {
		account.ClientID = in.ClientID
	}
	if in.SecretKey != "" {
		account.SecretKey = in.SecretKey
	}
	account.UpdatedAt = time.Now()
	if err := uc.accountRepo.Update(account); err != nil {
		return nil, err
	}
	return account, nil
}

// DeleteBankAccount elimina una cuenta de cobro.
func (uc *RegistryUseCase) DeleteBankAccount(act actor.Actor, accountID string) error {
	account, err := uc.ownedAccount(act, accountID)
	if err != nil {
		return err
	}
	return uc.accountRepo.Delete(account.ID)
}

// ownedProperty carga la propiedad y verifica que el actor sea su dueño
// (superadmin pasa).
func (uc *RegistryUseCase) ownedProperty(act actor.Actor, id string) (*entity.Property, error) {
	prop, err := uc.propRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, domain.ErrNotFound
	}
	if !act.OwnsProfile(actor.TypeOwner, prop.OwnerID) {
		return nil, domain.ErrForbidden
	}
	return prop, nil
}

// ownedUnit carga unidad + propiedad y verifica propiedad del actor.
func (uc *RegistryUseCase) ownedUnit(act actor.Actor, unitID string) (*entity.PropertyUnit, *entity.Property, error) {
	unit, err := uc.unitRepo.GetByID(unitID)
	if err != nil {
		return nil, nil, err
	}
	if unit == nil {
		return nil, nil, domain.ErrNotFound
	}
	prop, err := uc.ownedProperty(act, unit.PropertyID)
	if err != nil {
		return nil, nil, err
	}
	return unit, prop, nil
}

// ownedAccount carga la cuenta y verifica propiedad del actor vía la propiedad.
func (uc *RegistryUseCase) ownedAccount(act actor.Actor, accountID string) (*entity.BankAccount, error) {
	account, err := uc.accountRepo.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrNotFound
	}
	if _, err := uc.ownedProperty(act, account.PropertyID); err != nil {
		return nil, err
	}
	return account, nil
}
