package repository

import (
	"context"

	"gorm.io/gorm"
)

const (
	DefaultTableLimit = 50
	MaxTableLimit     = 500
)

// inspectableTables lists every table the admin viewer may read. users is
// deliberately absent.
var inspectableTables = []string{
	"workers",
	"client_requests",
	"contact_messages",
	"franchise_applications",
}

// TablePage is one window of raw rows from an inspectable table.
type TablePage struct {
	Table  string                   `json:"table"`
	Rows   []map[string]interface{} `json:"rows"`
	Total  int64                    `json:"total"`
	Limit  int                      `json:"limit"`
	Offset int                      `json:"offset"`
}

type AdminRepository interface {
	ListTables() []string
	Stats(ctx context.Context) (map[string]int64, error)
	TableData(ctx context.Context, table string, limit, offset int) (*TablePage, error)
}

type adminRepository struct {
	store
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{store{db: db}}
}

// IsInspectable reports whether table is on the admin allow-list.
func IsInspectable(table string) bool {
	for _, t := range inspectableTables {
		if t == table {
			return true
		}
	}
	return false
}

// ClampPage normalises paging parameters for TableData.
func ClampPage(limit, offset int) (int, int) {
	switch {
	case limit <= 0:
		limit = DefaultTableLimit
	case limit > MaxTableLimit:
		limit = MaxTableLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (r *adminRepository) ListTables() []string {
	out := make([]string, len(inspectableTables))
	copy(out, inspectableTables)
	return out
}

func (r *adminRepository) Stats(ctx context.Context) (map[string]int64, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	stats := make(map[string]int64, len(inspectableTables))
	for _, table := range inspectableTables {
		var count int64
		if err := db.Table(table).Count(&count).Error; err != nil {
			return nil, translate(err)
		}
		stats[table] = count
	}
	return stats, nil
}

// TableData rejects names outside the allow-list before touching the database.
func (r *adminRepository) TableData(ctx context.Context, table string, limit, offset int) (*TablePage, error) {
	if !IsInspectable(table) {
		return nil, ErrInvalidTarget
	}
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	limit, offset = ClampPage(limit, offset)

	var total int64
	if err := db.Table(table).Count(&total).Error; err != nil {
		return nil, translate(err)
	}

	rows := []map[string]interface{}{}
	err = db.Table(table).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}

	return &TablePage{Table: table, Rows: rows, Total: total, Limit: limit, Offset: offset}, nil
}
