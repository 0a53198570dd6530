package models

import (
	"time"

	"gorm.io/datatypes"
)

// ExportLog records every generated report for the audit trail shown in the
// admin settings page. Writing the log must never fail an export.
type ExportLog struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	Format   string `gorm:"size:16" json:"format"` // pdf | excel | details
	Filename string `gorm:"size:255" json:"filename"`
	RowCount int    `json:"rowCount"`

	// Column snapshot for tabular exports, nil for detail reports.
	Columns datatypes.JSON `json:"columns,omitempty"`
}
