package advance

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"farmtally-backend/internal/domain/actor"
	domainAdvance "farmtally-backend/internal/domain/advance"
	"farmtally-backend/internal/domain/apperr"
	"farmtally-backend/internal/domain/uow"
	"farmtally-backend/pkg/id"
)

type Config struct {
	// ManagerCanCreate lets field managers record advances they pay out
	// in the field; by default only the farm admin may.
	ManagerCanCreate bool
}

type Usecase struct {
	uow uow.UnitOfWork
	cfg Config
}

func NewUsecase(tx uow.UnitOfWork, cfg Config) *Usecase { return &Usecase{uow: tx, cfg: cfg} }

type CreateInput struct {
	FarmerID string          `json:"farmer_id"`
	Amount   decimal.Decimal `json:"amount"`
	PaidAt   time.Time       `json:"paid_at"`
	Notes    string          `json:"notes"`
}

type AdvanceDTO struct {
	AdvanceID     string          `json:"advance_id"`
	FarmerID      string          `json:"farmer_id"`
	ProcessedByID string          `json:"processed_by_id"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	PaidAt        time.Time       `json:"paid_at"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Create records a cash advance against the farmer's future delivery
// value. Advances are append-only from the settlement's perspective.
func (u *Usecase) Create(ctx context.Context, act actor.Actor, in CreateInput) (*AdvanceDTO, error) {
	if !act.IsFarmAdmin() && !(u.cfg.ManagerCanCreate && act.IsFieldManager()) {
		return nil, apperr.Permission("create advance", "role may not record advances")
	}
	if !in.Amount.IsPositive() {
		return nil, apperr.Validation("amount", "must be greater than zero")
	}

	var dto *AdvanceDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		f, err := r.Farmers.GetByFarmerID(ctx, act.OrganizationID, in.FarmerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("farmer", in.FarmerID)
			}
			return err
		}
		if !f.IsActive {
			return apperr.StateConflict("farmer", f.FarmerID, "advance to", "inactive", "active")
		}

		paidAt := in.PaidAt
		if paidAt.IsZero() {
			paidAt = time.Now().UTC()
		}
		a := &domainAdvance.AdvancePayment{
			AdvanceID:      id.NewID32(),
			OrganizationID: act.OrganizationID,
			FarmerID:       f.FarmerID,
			ProcessedByID:  act.UserID,
			Amount:         in.Amount,
			Status:         domainAdvance.StatusCompleted,
			PaidAt:         paidAt,
			Notes:          in.Notes,
		}
		if err := r.Advances.Create(ctx, a); err != nil {
			return err
		}
		dto = toDTO(a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Reverse is an administrative correction: the advance stops counting
// toward the farmer's balance but the row stays for the record.
func (u *Usecase) Reverse(ctx context.Context, act actor.Actor, advanceID string) (*AdvanceDTO, error) {
	if !act.IsFarmAdmin() {
		return nil, apperr.Permission("reverse advance", "requires the farm admin role")
	}

	var dto *AdvanceDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Advances.GetByAdvanceID(ctx, act.OrganizationID, advanceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("advance payment", advanceID)
			}
			return err
		}
		if a.Status != domainAdvance.StatusCompleted {
			return apperr.StateConflict("advance payment", a.AdvanceID, "reverse", string(a.Status), string(domainAdvance.StatusCompleted))
		}
		a.Status = domainAdvance.StatusReversed
		if err := r.Advances.Save(ctx, a); err != nil {
			return err
		}
		dto = toDTO(a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// ListByFarmer returns the farmer's advances, newest first.
func (u *Usecase) ListByFarmer(ctx context.Context, act actor.Actor, farmerID string) ([]AdvanceDTO, error) {
	var out []AdvanceDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		as, err := r.Advances.ListByFarmer(ctx, act.OrganizationID, farmerID)
		if err != nil {
			return err
		}
		out = make([]AdvanceDTO, 0, len(as))
		for i := range as {
			out = append(out, *toDTO(&as[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Balance is the farmer's outstanding advance balance.
func (u *Usecase) Balance(ctx context.Context, act actor.Actor, farmerID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		total, err = r.Advances.SumCompletedByFarmer(ctx, act.OrganizationID, farmerID)
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func toDTO(a *domainAdvance.AdvancePayment) *AdvanceDTO {
	return &AdvanceDTO{
		AdvanceID:     a.AdvanceID,
		FarmerID:      a.FarmerID,
		ProcessedByID: a.ProcessedByID,
		Amount:        a.Amount,
		Status:        string(a.Status),
		PaidAt:        a.PaidAt,
		Notes:         a.Notes,
		CreatedAt:     a.CreatedAt,
	}
}
