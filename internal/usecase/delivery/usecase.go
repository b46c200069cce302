package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"farmtally-backend/internal/domain/actor"
	"farmtally-backend/internal/domain/apperr"
	domainDelivery "farmtally-backend/internal/domain/delivery"
	domainLorry "farmtally-backend/internal/domain/lorry"
	"farmtally-backend/internal/domain/uow"
	"farmtally-backend/internal/settlement"
	"farmtally-backend/pkg/id"
)

// DuplicatePolicy decides what happens when a farmer with an open
// delivery is added to the same lorry again.
type DuplicatePolicy int

const (
	// DuplicateReplace deletes the prior PENDING delivery and recreates
	// it in the same transaction, treating the add as a resubmission.
	DuplicateReplace DuplicatePolicy = iota
	// DuplicateReject refuses the add with a state conflict.
	DuplicateReject
)

type Config struct {
	// InterestRate is the flat charge on the advance balance at pricing
	// time; zero means settlement.DefaultInterestRate.
	InterestRate decimal.Decimal
	OnDuplicate  DuplicatePolicy
}

type Usecase struct {
	uow  uow.UnitOfWork
	rate decimal.Decimal
	dup  DuplicatePolicy
}

func NewUsecase(tx uow.UnitOfWork, cfg Config) *Usecase {
	rate := cfg.InterestRate
	if rate.IsZero() {
		rate = settlement.DefaultInterestRate
	}
	return &Usecase{uow: tx, rate: rate, dup: cfg.OnDuplicate}
}

// AddFarmerToLorry records a farmer's contribution on a lorry run:
// computes the weight chain, snapshots the advance balance for
// reference, creates the delivery PENDING and advances the lorry to
// LOADING on its first delivery.
func (u *Usecase) AddFarmerToLorry(ctx context.Context, act actor.Actor, in AddFarmerInput) (*DeliveryDTO, error) {
	if !act.IsFieldManager() {
		return nil, apperr.Permission("add farmer to lorry", "requires the field manager role")
	}
	if err := validateRawInput(in.BagsCount, in.IndividualWeights, in.MoistureContent); err != nil {
		return nil, err
	}

	var dto *DeliveryDTO
	err := u.uow.WithinLorryTx(ctx, act.OrganizationID, in.LorryID, func(r uow.Repos, l *domainLorry.Lorry) error {
		now := time.Now().UTC()
		if l.Status.Terminal() {
			return apperr.StateConflict("lorry", l.LorryID, "add delivery to", string(l.Status), "any state before SENT_TO_DEALER")
		}
		if l.AssignedManagerID != act.UserID {
			return apperr.Permission("add farmer to lorry", "lorry is assigned to a different field manager")
		}

		f, err := r.Farmers.GetByFarmerID(ctx, act.OrganizationID, in.FarmerID)
		if err != nil {
			return notFoundOr(err, "farmer", in.FarmerID)
		}
		if !f.IsActive {
			return apperr.StateConflict("farmer", f.FarmerID, "add", "inactive", "active")
		}

		// Duplicate guard: at most one open delivery per (lorry, farmer).
		existing, err := r.Deliveries.GetOpenByLorryFarmer(ctx, l.LorryID, f.FarmerID)
		switch {
		case err == nil:
			if u.dup == DuplicateReject {
				return apperr.StateConflict("delivery", existing.DeliveryID, "duplicate for farmer "+f.FarmerID+" on", string(existing.Status), "")
			}
			if existing.Status != domainDelivery.StatusPending {
				return apperr.StateConflict("delivery", existing.DeliveryID, "replace", string(existing.Status), string(domainDelivery.StatusPending))
			}
			if err := r.Deliveries.Delete(ctx, existing); err != nil {
				return err
			}
			l.DeliveryCount--
			if existing.Priced() {
				l.PricedCount--
			}
			logrus.WithFields(logrus.Fields{
				"lorry_id":  l.LorryID,
				"farmer_id": f.FarmerID,
				"replaced":  existing.DeliveryID,
			}).Info("delivery resubmitted, replacing pending record")
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		gross := settlement.GrossWeight(in.IndividualWeights)
		std := settlement.StandardDeduction(in.BagsCount, in.MoistureContent)
		net := settlement.NetWeight(gross, std, decimal.Zero)

		// Informational snapshot only; pricing takes its own later.
		balance, err := r.Advances.SumCompletedByFarmer(ctx, act.OrganizationID, f.FarmerID)
		if err != nil {
			return err
		}

		d := &domainDelivery.Delivery{
			DeliveryID:        id.NewID32(),
			OrganizationID:    act.OrganizationID,
			LorryID:           l.LorryID,
			FarmerID:          f.FarmerID,
			FieldManagerID:    act.UserID,
			BagsCount:         in.BagsCount,
			IndividualWeights: in.IndividualWeights,
			MoistureContent:   in.MoistureContent,
			Notes:             in.Notes,
			GrossWeight:       gross,
			StandardDeduction: std,
			NetWeight:         net,
			AdvanceAmount:     balance,
			Status:            domainDelivery.StatusPending,
			DeliveredAt:       now,
		}
		if err := r.Deliveries.Create(ctx, d); err != nil {
			return err
		}

		l.DeliveryCount++
		switch l.Status {
		case domainLorry.StatusAssigned:
			l.SetStatus(domainLorry.StatusLoading, now)
		case domainLorry.StatusProcessed:
			// An unpriced delivery landed after the all-priced flip; the
			// join condition no longer holds, so the lorry steps back.
			l.SetStatus(domainLorry.StatusSubmitted, now)
		}
		if err := r.Lorries.Save(ctx, l); err != nil {
			return err
		}

		dto = toDTO(d, l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Update replaces a PENDING delivery's raw input and recomputes the
// weight chain. Only the creating field manager may call it.
func (u *Usecase) Update(ctx context.Context, act actor.Actor, in UpdateInput) (*DeliveryDTO, error) {
	if err := validateRawInput(in.BagsCount, in.IndividualWeights, in.MoistureContent); err != nil {
		return nil, err
	}

	var dto *DeliveryDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		d, err := r.Deliveries.GetByDeliveryID(ctx, act.OrganizationID, in.DeliveryID)
		if err != nil {
			return notFoundOr(err, "delivery", in.DeliveryID)
		}
		if !domainDelivery.CanMutate(act.Role, d.Status, domainDelivery.FieldBagsCount) {
			if act.IsFieldManager() && d.Status != domainDelivery.StatusPending {
				return apperr.StateConflict("delivery", d.DeliveryID, "edit", string(d.Status), string(domainDelivery.StatusPending))
			}
			return apperr.Permission("edit delivery", "field is not editable by this role in state "+string(d.Status))
		}
		if d.FieldManagerID != act.UserID {
			return apperr.Permission("edit delivery", "created by a different field manager")
		}

		d.BagsCount = in.BagsCount
		d.IndividualWeights = in.IndividualWeights
		d.MoistureContent = in.MoistureContent
		d.Notes = in.Notes
		u.recomputeWeights(d)
		if err := r.Deliveries.Save(ctx, d); err != nil {
			return err
		}
		dto = toDTO(d, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// SetQuality applies the admin's quality assessment and recomputes the
// weight chain, plus the financials if the delivery is already priced.
func (u *Usecase) SetQuality(ctx context.Context, act actor.Actor, in QualityInput) (*DeliveryDTO, error) {
	if in.QualityDeduction.IsNegative() {
		return nil, apperr.Validation("quality_deduction", "must not be negative")
	}

	var dto *DeliveryDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		d, err := r.Deliveries.GetByDeliveryID(ctx, act.OrganizationID, in.DeliveryID)
		if err != nil {
			return notFoundOr(err, "delivery", in.DeliveryID)
		}
		if !domainDelivery.CanMutate(act.Role, d.Status, domainDelivery.FieldQualityDeduction) {
			if act.IsFarmAdmin() {
				return apperr.StateConflict("delivery", d.DeliveryID, "edit quality on", string(d.Status), "any state before COMPLETED")
			}
			return apperr.Permission("set quality deduction", "not editable by role "+string(act.Role)+" in state "+string(d.Status))
		}
		l, err := r.Lorries.GetByLorryID(ctx, act.OrganizationID, d.LorryID)
		if err != nil {
			return notFoundOr(err, "lorry", d.LorryID)
		}
		if l.Status.Terminal() {
			return apperr.StateConflict("lorry", l.LorryID, "edit quality on", string(l.Status), "any state before SENT_TO_DEALER")
		}
		if in.QualityDeduction.GreaterThan(d.GrossWeight) {
			return apperr.Validation("quality_deduction", "must not exceed gross weight "+d.GrossWeight.String())
		}

		d.QualityDeduction = in.QualityDeduction
		d.QualityGrade = in.QualityGrade
		u.recomputeWeights(d)
		if err := r.Deliveries.Save(ctx, d); err != nil {
			return err
		}
		dto = toDTO(d, l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// SetPricing prices one delivery and, under the lorry row lock,
// re-evaluates the lorry-wide join condition: when every delivery is
// priced and none is still PENDING, the whole run flips to PROCESSED.
func (u *Usecase) SetPricing(ctx context.Context, act actor.Actor, in PricingInput) (*DeliveryDTO, error) {
	if !in.PricePerKg.IsPositive() {
		return nil, apperr.Validation("price_per_kg", "must be greater than zero")
	}

	var dto *DeliveryDTO
	err := u.uow.WithinLorryTx(ctx, act.OrganizationID, in.LorryID, func(r uow.Repos, l *domainLorry.Lorry) error {
		now := time.Now().UTC()
		if l.Status.Terminal() {
			return apperr.StateConflict("lorry", l.LorryID, "price deliveries on", string(l.Status), "any state before SENT_TO_DEALER")
		}
		d, err := r.Deliveries.GetByDeliveryID(ctx, act.OrganizationID, in.DeliveryID)
		if err != nil {
			return notFoundOr(err, "delivery", in.DeliveryID)
		}
		if d.LorryID != l.LorryID {
			return apperr.NotFound("delivery", in.DeliveryID)
		}
		if !domainDelivery.CanMutate(act.Role, d.Status, domainDelivery.FieldPricePerKg) {
			if act.IsFarmAdmin() {
				return apperr.StateConflict("delivery", d.DeliveryID, "price", string(d.Status), "any state before COMPLETED")
			}
			return apperr.Permission("set pricing", "not editable by role "+string(act.Role)+" in state "+string(d.Status))
		}

		firstPricing := !d.Priced()
		if firstPricing {
			// Snapshot the advance balance once; re-pricing keeps it so
			// the advance is never subtracted twice. The read is not
			// locked against a concurrent advance creation; that window
			// is accepted (admin operates both sequentially).
			balance, err := r.Advances.SumCompletedByFarmer(ctx, act.OrganizationID, d.FarmerID)
			if err != nil {
				return err
			}
			d.AdvanceAmount = balance
		}

		d.PricePerKg = in.PricePerKg
		s := settlement.Settle(d.NetWeight, d.PricePerKg, d.AdvanceAmount, u.rate)
		d.TotalValue = s.TotalValue
		d.InterestCharges = s.InterestCharges
		d.FinalAmount = s.FinalAmount
		if err := r.Deliveries.Save(ctx, d); err != nil {
			return err
		}

		if firstPricing {
			l.PricedCount++
		}
		if err := FlipLorryIfAllPriced(ctx, r, l, now); err != nil {
			return err
		}
		if err := r.Lorries.Save(ctx, l); err != nil {
			return err
		}

		// Reload so the DTO reflects a bulk flip that touched this row.
		if l.Status == domainLorry.StatusProcessed && d.Status == domainDelivery.StatusInProgress {
			d.Status = domainDelivery.StatusProcessed
			d.ProcessedAt = &now
		}
		dto = toDTO(d, l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Delete removes a PENDING delivery. Only the creating field manager
// may do it; deleting the lorry's last delivery steps the lorry back
// from LOADING to ASSIGNED.
func (u *Usecase) Delete(ctx context.Context, act actor.Actor, in DeleteInput) error {
	return u.uow.WithinLorryTx(ctx, act.OrganizationID, in.LorryID, func(r uow.Repos, l *domainLorry.Lorry) error {
		now := time.Now().UTC()
		d, err := r.Deliveries.GetByDeliveryID(ctx, act.OrganizationID, in.DeliveryID)
		if err != nil {
			return notFoundOr(err, "delivery", in.DeliveryID)
		}
		if d.LorryID != l.LorryID {
			return apperr.NotFound("delivery", in.DeliveryID)
		}
		if d.Status != domainDelivery.StatusPending {
			return apperr.StateConflict("delivery", d.DeliveryID, "delete", string(d.Status), string(domainDelivery.StatusPending))
		}
		if !act.IsFieldManager() || d.FieldManagerID != act.UserID {
			return apperr.Permission("delete delivery", "only the creating field manager may delete")
		}

		if err := r.Deliveries.Delete(ctx, d); err != nil {
			return err
		}
		l.DeliveryCount--
		if d.Priced() {
			l.PricedCount--
		}
		if l.DeliveryCount == 0 && l.Status == domainLorry.StatusLoading {
			l.SetStatus(domainLorry.StatusAssigned, now)
		}
		// Removing the last unpriced row can satisfy the join condition
		// just like pricing it would.
		if err := FlipLorryIfAllPriced(ctx, r, l, now); err != nil {
			return err
		}
		return r.Lorries.Save(ctx, l)
	})
}

// Get returns one delivery within the caller's organization.
func (u *Usecase) Get(ctx context.Context, act actor.Actor, deliveryID string) (*DeliveryDTO, error) {
	var dto *DeliveryDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		d, err := r.Deliveries.GetByDeliveryID(ctx, act.OrganizationID, deliveryID)
		if err != nil {
			return notFoundOr(err, "delivery", deliveryID)
		}
		dto = toDTO(d, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// ListByLorry returns every delivery of a lorry run, org-scoped.
func (u *Usecase) ListByLorry(ctx context.Context, act actor.Actor, lorryID string) ([]DeliveryDTO, error) {
	var out []DeliveryDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Lorries.GetByLorryID(ctx, act.OrganizationID, lorryID)
		if err != nil {
			return notFoundOr(err, "lorry", lorryID)
		}
		ds, err := r.Deliveries.ListByLorry(ctx, l.LorryID)
		if err != nil {
			return err
		}
		out = make([]DeliveryDTO, 0, len(ds))
		for i := range ds {
			out = append(out, *toDTO(&ds[i], l))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FlipLorryIfAllPriced evaluates the join condition under the caller's
// lorry row lock: every delivery priced and none still PENDING. The
// flip is idempotent; a lorry already PROCESSED is left alone. The
// caller saves the lorry afterwards.
func FlipLorryIfAllPriced(ctx context.Context, r uow.Repos, l *domainLorry.Lorry, now time.Time) error {
	if l.Status != domainLorry.StatusSubmitted || !l.AllPriced() {
		return nil
	}
	pending, err := r.Deliveries.CountByLorryAndStatus(ctx, l.LorryID, domainDelivery.StatusPending)
	if err != nil {
		return err
	}
	if pending > 0 {
		return nil
	}
	if err := r.Deliveries.BulkTransition(ctx, l.LorryID, domainDelivery.StatusInProgress, domainDelivery.StatusProcessed, now); err != nil {
		return err
	}
	l.SetStatus(domainLorry.StatusProcessed, now)
	logrus.WithField("lorry_id", l.LorryID).Info("all deliveries priced, lorry processed")
	return nil
}

func (u *Usecase) recomputeWeights(d *domainDelivery.Delivery) {
	d.GrossWeight = settlement.GrossWeight(d.IndividualWeights)
	d.StandardDeduction = settlement.StandardDeduction(d.BagsCount, d.MoistureContent)
	d.NetWeight = settlement.NetWeight(d.GrossWeight, d.StandardDeduction, d.QualityDeduction)
	if d.Priced() {
		s := settlement.Settle(d.NetWeight, d.PricePerKg, d.AdvanceAmount, u.rate)
		d.TotalValue = s.TotalValue
		d.InterestCharges = s.InterestCharges
		d.FinalAmount = s.FinalAmount
	}
}

func validateRawInput(bags int, weights []decimal.Decimal, moisture decimal.Decimal) error {
	if bags <= 0 {
		return apperr.Validation("bags_count", "must be greater than zero")
	}
	if len(weights) != bags {
		return apperr.Validation("individual_weights", fmt.Sprintf("expected %d entries, got %d", bags, len(weights)))
	}
	for i, w := range weights {
		if !w.IsPositive() {
			return apperr.Validation("individual_weights", fmt.Sprintf("entry %d must be positive", i+1))
		}
	}
	if moisture.IsNegative() || moisture.GreaterThan(decimal.NewFromInt(100)) {
		return apperr.Validation("moisture_content", "must be between 0 and 100")
	}
	return nil
}

func notFoundOr(err error, entity, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(entity, id)
	}
	return err
}

func toDTO(d *domainDelivery.Delivery, l *domainLorry.Lorry) *DeliveryDTO {
	dto := &DeliveryDTO{
		DeliveryID:        d.DeliveryID,
		LorryID:           d.LorryID,
		FarmerID:          d.FarmerID,
		FieldManagerID:    d.FieldManagerID,
		BagsCount:         d.BagsCount,
		IndividualWeights: d.IndividualWeights,
		MoistureContent:   d.MoistureContent,
		GrossWeight:       d.GrossWeight,
		StandardDeduction: d.StandardDeduction,
		QualityDeduction:  d.QualityDeduction,
		QualityGrade:      d.QualityGrade,
		NetWeight:         d.NetWeight,
		PricePerKg:        d.PricePerKg,
		TotalValue:        d.TotalValue,
		AdvanceAmount:     d.AdvanceAmount,
		InterestCharges:   d.InterestCharges,
		FinalAmount:       d.FinalAmount,
		Status:            string(d.Status),
		Notes:             d.Notes,
		DeliveredAt:       d.DeliveredAt,
	}
	if l != nil {
		dto.LorryStatus = string(l.Status)
	}
	return dto
}
