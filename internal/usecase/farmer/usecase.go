package farmer

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"farmtally-backend/internal/domain/actor"
	"farmtally-backend/internal/domain/apperr"
	domainFarmer "farmtally-backend/internal/domain/farmer"
	"farmtally-backend/internal/domain/uow"
	"farmtally-backend/pkg/id"
)

type Usecase struct{ uow uow.UnitOfWork }

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

type CreateInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Village string `json:"village"`
}

type FarmerDTO struct {
	FarmerID  string    `json:"farmer_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Village   string    `json:"village"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *Usecase) Create(ctx context.Context, act actor.Actor, in CreateInput) (*FarmerDTO, error) {
	if !act.IsFarmAdmin() {
		return nil, apperr.Permission("create farmer", "requires the farm admin role")
	}
	if in.Name == "" {
		return nil, apperr.Validation("name", "is required")
	}

	var dto *FarmerDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		f := &domainFarmer.Farmer{
			FarmerID:       id.NewID32(),
			OrganizationID: act.OrganizationID,
			Name:           in.Name,
			Phone:          in.Phone,
			Village:        in.Village,
			IsActive:       true,
		}
		if err := r.Farmers.Create(ctx, f); err != nil {
			return err
		}
		dto = toDTO(f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, act actor.Actor, farmerID string) (*FarmerDTO, error) {
	var dto *FarmerDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		f, err := r.Farmers.GetByFarmerID(ctx, act.OrganizationID, farmerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("farmer", farmerID)
			}
			return err
		}
		dto = toDTO(f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) List(ctx context.Context, act actor.Actor) ([]FarmerDTO, error) {
	var out []FarmerDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		fs, err := r.Farmers.List(ctx, act.OrganizationID)
		if err != nil {
			return err
		}
		out = make([]FarmerDTO, 0, len(fs))
		for i := range fs {
			out = append(out, *toDTO(&fs[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Deactivate blocks the farmer from new deliveries and advances without
// touching historical records.
func (u *Usecase) Deactivate(ctx context.Context, act actor.Actor, farmerID string) (*FarmerDTO, error) {
	if !act.IsFarmAdmin() {
		return nil, apperr.Permission("deactivate farmer", "requires the farm admin role")
	}

	var dto *FarmerDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		f, err := r.Farmers.GetByFarmerID(ctx, act.OrganizationID, farmerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("farmer", farmerID)
			}
			return err
		}
		f.IsActive = false
		if err := r.Farmers.Save(ctx, f); err != nil {
			return err
		}
		dto = toDTO(f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func toDTO(f *domainFarmer.Farmer) *FarmerDTO {
	return &FarmerDTO{
		FarmerID:  f.FarmerID,
		Name:      f.Name,
		Phone:     f.Phone,
		Village:   f.Village,
		IsActive:  f.IsActive,
		CreatedAt: f.CreatedAt,
	}
}
