package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCollection stores records in a SQL table through gorm.
// The table is derived from T; owner scoping uses the owner_id column.
type GormCollection[T any, P Doc[T]] struct {
	db *gorm.DB
}

func NewGormCollection[T any, P Doc[T]](db *gorm.DB) *GormCollection[T, P] {
	return &GormCollection[T, P]{db: db}
}

func (c *GormCollection[T, P]) scoped(ctx context.Context, owner string) *gorm.DB {
	return c.db.WithContext(ctx).Where("owner_id = ?", owner)
}

func (c *GormCollection[T, P]) Get(ctx context.Context, owner, id string) (*T, error) {
	var rec T
	err := c.scoped(ctx, owner).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *GormCollection[T, P]) List(ctx context.Context, owner string, q Query) ([]T, error) {
	tx := c.scoped(ctx, owner)
	for _, f := range q.Where {
		tx = tx.Where(clause.Eq{Column: clause.Column{Name: f.Field}, Value: f.Value})
	}
	if q.OrderBy != "" {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: q.OrderBy}, Desc: q.Desc})
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var out []T
	if err := tx.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (c *GormCollection[T, P]) Save(ctx context.Context, owner string, rec *T) error {
	p := P(rec)
	if p.GetID() == "" {
		p.SetID(uuid.NewString())
	} else {
		var existing T
		err := c.db.WithContext(ctx).Where("id = ?", p.GetID()).First(&existing).Error
		switch {
		case err == nil:
			if P(&existing).GetOwnerID() != owner {
				return ErrNotFound
			}
			p.SetCreatedAt(P(&existing).GetCreatedAt())
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
	}
	p.SetOwnerID(owner)
	p.Touch(now())
	return c.db.WithContext(ctx).Save(rec).Error
}

func (c *GormCollection[T, P]) Update(ctx context.Context, owner, id string, fields map[string]any) error {
	values := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		values[k] = v
	}
	values["updated_at"] = now()

	res := c.scoped(ctx, owner).Model(new(T)).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *GormCollection[T, P]) Delete(ctx context.Context, owner, id string) error {
	res := c.scoped(ctx, owner).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
