package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/crazythursday/copywriting/internal/entities"
)

// Insert stores records in one transaction: either every row is created or none.
func (d *Database) Insert(ctx context.Context, collection string, records []entities.CopywritingInput) ([]entities.Copywriting, error) {
	rows := make([]entities.Copywriting, len(records))
	for i, r := range records {
		rows[i] = entities.Copywriting{Content: r.Content, Status: r.Status}
	}
	if len(rows) == 0 {
		return rows, nil
	}

	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Table(collection).Create(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	return rows, nil
}

// List returns rows matching filter, newest first.
func (d *Database) List(ctx context.Context, collection string, filter entities.ListFilter) ([]entities.Copywriting, error) {
	query := d.DB.WithContext(ctx).Table(collection)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var rows []entities.Copywriting
	err := query.Order("created_at DESC").Order("id DESC").Find(&rows).Error
	return rows, err
}

// Count returns the number of rows with status, or all rows when status is empty.
func (d *Database) Count(ctx context.Context, collection string, status entities.CopywritingStatus) (int64, error) {
	query := d.DB.WithContext(ctx).Table(collection)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var total int64
	err := query.Count(&total).Error
	return total, err
}

func (d *Database) UpdateStatus(ctx context.Context, collection string, id uint, status entities.CopywritingStatus) (*entities.Copywriting, error) {
	var row entities.Copywriting
	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(collection).First(&row, id).Error; err != nil {
			return err
		}
		row.Status = status
		return tx.Table(collection).Save(&row).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (d *Database) Delete(ctx context.Context, collection string, id uint) error {
	result := d.DB.WithContext(ctx).Table(collection).Delete(&entities.Copywriting{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrNotFound
	}
	return nil
}
