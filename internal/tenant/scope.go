package tenant

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scope membatasi query ke satu company. Kolom dikualifikasi dengan tabel
// utama supaya tetap jelas saat query memakai Joins.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{
			Column: clause.Column{Table: clause.CurrentTable, Name: "company_id"},
			Value:  companyID,
		})
	}
}
