package dbmodels

import "time"

// Employee - запись справочника сотрудников, ID берется из табеля
type Employee struct {
	ID               string `gorm:"type:varchar(64);primaryKey"`
	Name             string `gorm:"type:varchar(255);index"`
	Position         string
	Section          string
	Department       string
	StartDate        string
	DueProbationDate string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
