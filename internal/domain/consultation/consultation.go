// Package consultation holds the dermatology consultation record. The
// consultation module of the application is not live yet; the entity is
// migrated so existing rows survive, and the API answers "coming soon".
package consultation

import (
	"time"

	"github.com/google/uuid"
)

type Consultation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	PatientID uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index" json:"patient_id"`

	Date      time.Time `gorm:"column:fecha;type:date;not null" json:"fecha"`
	Diagnosis string    `gorm:"column:diagnostico;type:text;not null" json:"diagnostico"`
	Treatment string    `gorm:"column:tratamiento;type:text;not null" json:"tratamiento"`
	Notes     string    `gorm:"column:notas;type:text" json:"notas,omitempty"`
}

func (Consultation) TableName() string {
	return "clinical.consultations"
}
