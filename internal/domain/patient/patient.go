package patient

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Gender uses the clinic's wire literals so records stay compatible with the
// existing patients table.
type Gender string

const (
	GenderMale   Gender = "masculino"
	GenderFemale Gender = "femenino"
	GenderOther  Gender = "otro"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

type Patient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	FirstName   string    `gorm:"column:nombre;type:varchar(100);not null" json:"nombre"`
	LastName    string    `gorm:"column:apellido;type:varchar(100);not null" json:"apellido"`
	DateOfBirth time.Time `gorm:"column:fecha_nacimiento;type:date;not null" json:"fecha_nacimiento"`
	Gender      Gender    `gorm:"column:genero;type:varchar(20);not null" json:"genero"`

	Phone          string `gorm:"column:telefono;type:varchar(20)" json:"telefono,omitempty"`
	Email          string `gorm:"column:email;type:varchar(255)" json:"email,omitempty"`
	Address        string `gorm:"column:direccion;type:text" json:"direccion,omitempty"`
	MedicalHistory string `gorm:"column:historial_medico;type:text" json:"historial_medico,omitempty"`
	Allergies      string `gorm:"column:alergias;type:text" json:"alergias,omitempty"`
}

func (Patient) TableName() string {
	return "clinical.patients"
}

func (p *Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Age is the display age: calendar-year difference, no month/day adjustment.
// This matches what the patient cards have always shown.
func (p *Patient) Age() int {
	return time.Now().Year() - p.DateOfBirth.Year()
}

type CreatePatientCommand struct {
	FirstName      string
	LastName       string
	DateOfBirth    time.Time
	Gender         Gender
	Phone          string
	Email          string
	Address        string
	MedicalHistory string
	Allergies      string
}

// UpdatePatientCommand carries a partial update: nil fields are left
// untouched on the stored record.
type UpdatePatientCommand struct {
	FirstName      *string
	LastName       *string
	DateOfBirth    *time.Time
	Gender         *Gender
	Phone          *string
	Email          *string
	Address        *string
	MedicalHistory *string
	Allergies      *string
}
