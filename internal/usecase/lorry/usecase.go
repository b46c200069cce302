package lorry

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"farmtally-backend/internal/domain/actor"
	"farmtally-backend/internal/domain/apperr"
	domainDelivery "farmtally-backend/internal/domain/delivery"
	domainLorry "farmtally-backend/internal/domain/lorry"
	"farmtally-backend/internal/domain/uow"
	deliveryUC "farmtally-backend/internal/usecase/delivery"
	"farmtally-backend/pkg/id"
)

type Usecase struct{ uow uow.UnitOfWork }

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

type CreateInput struct {
	PlateNumber string          `json:"plate_number"`
	CapacityKg  decimal.Decimal `json:"capacity_kg"`
}

type LorryDTO struct {
	LorryID           string          `json:"lorry_id"`
	PlateNumber       string          `json:"plate_number"`
	CapacityKg        decimal.Decimal `json:"capacity_kg"`
	Status            string          `json:"status"`
	AssignedManagerID string          `json:"assigned_manager_id,omitempty"`
	DeliveryCount     int             `json:"delivery_count"`
	PricedCount       int             `json:"priced_count"`
	StatusUpdatedAt   time.Time       `json:"status_updated_at"`
	CreatedAt         time.Time       `json:"created_at"`
}

// Create registers a new lorry, AVAILABLE, with an org-unique plate.
func (u *Usecase) Create(ctx context.Context, act actor.Actor, in CreateInput) (*LorryDTO, error) {
	if !act.IsFarmAdmin() {
		return nil, apperr.Permission("create lorry", "requires the farm admin role")
	}
	if in.PlateNumber == "" {
		return nil, apperr.Validation("plate_number", "is required")
	}
	if !in.CapacityKg.IsPositive() {
		return nil, apperr.Validation("capacity_kg", "must be greater than zero")
	}

	var dto *LorryDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		// check-then-insert is inside the tx; the unique index backstops it
		_, err := r.Lorries.GetByPlate(ctx, act.OrganizationID, in.PlateNumber)
		switch {
		case err == nil:
			return apperr.Validation("plate_number", "already registered in organization")
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		l := &domainLorry.Lorry{
			LorryID:         id.NewID32(),
			OrganizationID:  act.OrganizationID,
			PlateNumber:     in.PlateNumber,
			CapacityKg:      in.CapacityKg,
			Status:          domainLorry.StatusAvailable,
			StatusUpdatedAt: time.Now().UTC(),
		}
		if err := r.Lorries.Create(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Assign hands an AVAILABLE lorry to a field manager.
func (u *Usecase) Assign(ctx context.Context, act actor.Actor, lorryID, managerID string) (*LorryDTO, error) {
	if !act.IsFarmAdmin() {
		return nil, apperr.Permission("assign lorry", "requires the farm admin role")
	}
	if managerID == "" {
		return nil, apperr.Validation("manager_id", "is required")
	}
	return u.transition(ctx, act, lorryID, func(l *domainLorry.Lorry, now time.Time) error {
		if !l.Status.CanTransition(domainLorry.StatusAssigned) {
			return apperr.StateConflict("lorry", l.LorryID, "assign", string(l.Status), string(domainLorry.StatusAvailable))
		}
		l.AssignedManagerID = managerID
		l.SetStatus(domainLorry.StatusAssigned, now)
		return nil
	})
}

// Unassign releases an ASSIGNED lorry back to the pool. Once loading
// has begun the assignment sticks.
func (u *Usecase) Unassign(ctx context.Context, act actor.Actor, lorryID string) (*LorryDTO, error) {
	if !act.IsFarmAdmin() {
		return nil, apperr.Permission("unassign lorry", "requires the farm admin role")
	}
	return u.transition(ctx, act, lorryID, func(l *domainLorry.Lorry, now time.Time) error {
		if l.Status != domainLorry.StatusAssigned {
			return apperr.StateConflict("lorry", l.LorryID, "unassign", string(l.Status), string(domainLorry.StatusAssigned))
		}
		l.AssignedManagerID = ""
		l.SetStatus(domainLorry.StatusAvailable, now)
		return nil
	})
}

// Submit closes field collection: every PENDING delivery moves to
// IN_PROGRESS and the lorry to SUBMITTED. Re-submitting a SUBMITTED
// lorry sweeps up deliveries added after the first submission.
func (u *Usecase) Submit(ctx context.Context, act actor.Actor, lorryID string) (*LorryDTO, error) {
	if !act.IsFieldManager() {
		return nil, apperr.Permission("submit lorry", "requires the field manager role")
	}
	return u.transition(ctx, act, lorryID, nil, u.submitTx)
}

func (u *Usecase) submitTx(ctx context.Context, act actor.Actor, r uow.Repos, l *domainLorry.Lorry, now time.Time) error {
	if l.AssignedManagerID != act.UserID {
		return apperr.Permission("submit lorry", "lorry is assigned to a different field manager")
	}
	if l.Status != domainLorry.StatusLoading && l.Status != domainLorry.StatusSubmitted {
		return apperr.StateConflict("lorry", l.LorryID, "submit", string(l.Status), string(domainLorry.StatusLoading))
	}
	if l.DeliveryCount == 0 {
		return apperr.StateConflict("lorry", l.LorryID, "submit", "empty", "at least one delivery")
	}
	if err := r.Deliveries.BulkTransition(ctx, l.LorryID, domainDelivery.StatusPending, domainDelivery.StatusInProgress, now); err != nil {
		return err
	}
	if l.Status == domainLorry.StatusLoading {
		l.SetStatus(domainLorry.StatusSubmitted, now)
	}
	// A fully pre-priced run processes immediately on submit.
	return deliveryUC.FlipLorryIfAllPriced(ctx, r, l, now)
}

// MarkSentToDealer is the terminal administrative action: requires
// PROCESSED, completes every delivery and seals the run.
func (u *Usecase) MarkSentToDealer(ctx context.Context, act actor.Actor, lorryID string) (*LorryDTO, error) {
	if !act.IsFarmAdmin() {
		return nil, apperr.Permission("send lorry to dealer", "requires the farm admin role")
	}
	return u.transition(ctx, act, lorryID, nil, func(ctx context.Context, act actor.Actor, r uow.Repos, l *domainLorry.Lorry, now time.Time) error {
		if l.Status != domainLorry.StatusProcessed {
			return apperr.StateConflict("lorry", l.LorryID, "send to dealer", string(l.Status), string(domainLorry.StatusProcessed))
		}
		if err := r.Deliveries.BulkTransition(ctx, l.LorryID, domainDelivery.StatusProcessed, domainDelivery.StatusCompleted, now); err != nil {
			return err
		}
		if err := r.Deliveries.BulkTransition(ctx, l.LorryID, domainDelivery.StatusInProgress, domainDelivery.StatusCompleted, now); err != nil {
			return err
		}
		l.SetStatus(domainLorry.StatusSentToDealer, now)
		logrus.WithField("lorry_id", l.LorryID).Info("lorry sent to dealer, run closed")
		return nil
	})
}

// Delete removes a lorry that holds no unfinished deliveries.
func (u *Usecase) Delete(ctx context.Context, act actor.Actor, lorryID string) error {
	if !act.IsFarmAdmin() {
		return apperr.Permission("delete lorry", "requires the farm admin role")
	}
	return u.uow.WithinLorryTx(ctx, act.OrganizationID, lorryID, func(r uow.Repos, l *domainLorry.Lorry) error {
		open, err := r.Deliveries.CountOpenByLorry(ctx, l.LorryID)
		if err != nil {
			return err
		}
		if open > 0 {
			return apperr.StateConflict("lorry", l.LorryID, "delete", string(l.Status), "no non-completed deliveries")
		}
		return r.Lorries.Delete(ctx, l)
	})
}

// Get returns one lorry in the caller's organization.
func (u *Usecase) Get(ctx context.Context, act actor.Actor, lorryID string) (*LorryDTO, error) {
	var dto *LorryDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Lorries.GetByLorryID(ctx, act.OrganizationID, lorryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("lorry", lorryID)
			}
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// List returns the organization's lorries.
func (u *Usecase) List(ctx context.Context, act actor.Actor) ([]LorryDTO, error) {
	var out []LorryDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		ls, err := r.Lorries.List(ctx, act.OrganizationID)
		if err != nil {
			return err
		}
		out = make([]LorryDTO, 0, len(ls))
		for i := range ls {
			out = append(out, *toDTO(&ls[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type txStep func(ctx context.Context, act actor.Actor, r uow.Repos, l *domainLorry.Lorry, now time.Time) error

// transition runs simple state changes under the lorry row lock. steps
// run in order after the optional quick mutation.
func (u *Usecase) transition(ctx context.Context, act actor.Actor, lorryID string, mutate func(l *domainLorry.Lorry, now time.Time) error, steps ...txStep) (*LorryDTO, error) {
	var dto *LorryDTO
	err := u.uow.WithinLorryTx(ctx, act.OrganizationID, lorryID, func(r uow.Repos, l *domainLorry.Lorry) error {
		now := time.Now().UTC()
		if mutate != nil {
			if err := mutate(l, now); err != nil {
				return err
			}
		}
		for _, step := range steps {
			if err := step(ctx, act, r, l, now); err != nil {
				return err
			}
		}
		if err := r.Lorries.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("lorry", lorryID)
		}
		return nil, err
	}
	return dto, nil
}

func toDTO(l *domainLorry.Lorry) *LorryDTO {
	return &LorryDTO{
		LorryID:           l.LorryID,
		PlateNumber:       l.PlateNumber,
		CapacityKg:        l.CapacityKg,
		Status:            string(l.Status),
		AssignedManagerID: l.AssignedManagerID,
		DeliveryCount:     l.DeliveryCount,
		PricedCount:       l.PricedCount,
		StatusUpdatedAt:   l.StatusUpdatedAt,
		CreatedAt:         l.CreatedAt,
	}
}
