package models

// DocumentSequenceModel is the per-prefix, per-year counter behind
// document number allocation. Rows are upserted atomically so two
// concurrent allocations never observe the same value.
type DocumentSequenceModel struct {
	Prefix     string `gorm:"type:varchar(10);primaryKey"`
	Year       int    `gorm:"primaryKey"`
	LastNumber int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (DocumentSequenceModel) TableName() string {
	return "document_sequences"
}
