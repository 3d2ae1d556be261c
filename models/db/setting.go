package dbmodels

import (
	"database/sql/driver"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
	"probation-eval-backend/models"
)

type Setting struct {
	Code      models.SettingCode `gorm:"type:varchar(64);primaryKey"`
	Value     string
	Values    Recipients
	UpdatedAt time.Time
}

// Recipients - text[] в postgres, текстовый литерал массива в sqlite
type Recipients []string

func (r Recipients) Value() (driver.Value, error) {
	return pq.StringArray(r).Value()
}

func (r *Recipients) Scan(src any) error {
	return (*pq.StringArray)(r).Scan(src)
}

func (Recipients) GormDataType() string {
	return "text"
}

func (Recipients) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}
