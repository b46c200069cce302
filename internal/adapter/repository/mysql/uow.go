package mysql

import (
	"context"

	"farmtally-backend/internal/domain/lorry"
	"farmtally-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Farmers:    &FarmerRepository{db: tx},
		Lorries:    &LorryRepository{db: tx},
		Deliveries: &DeliveryRepository{db: tx},
		Advances:   &AdvanceRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinLorryTx(ctx context.Context, orgID, lorryID string, fn func(r uow.Repos, l *lorry.Lorry) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the lorry row up-front so sibling pricing edits serialize
		l, err := r.Lorries.GetByLorryIDForUpdate(ctx, orgID, lorryID)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}
