// Package photo holds the lesion photo gallery types. Like consultations,
// the gallery is migrated but still served as "coming soon".
package photo

import (
	"time"

	"github.com/google/uuid"
)

type LesionType string

const (
	LesionMelanoma   LesionType = "melanoma"
	LesionNevus      LesionType = "nevus"
	LesionPsoriasis  LesionType = "psoriasis"
	LesionEczema     LesionType = "eczema"
	LesionAcne       LesionType = "acne"
	LesionDermatitis LesionType = "dermatitis"
	LesionWarts      LesionType = "verrugas"
	LesionOther      LesionType = "otro"
)

func (l LesionType) IsValid() bool {
	switch l {
	case LesionMelanoma, LesionNevus, LesionPsoriasis, LesionEczema,
		LesionAcne, LesionDermatitis, LesionWarts, LesionOther:
		return true
	}
	return false
}

// BodyLocation is the annotated body region of a lesion photo, using the
// clinic's wire literals.
type BodyLocation string

const (
	LocationHead         BodyLocation = "cabeza"
	LocationNeck         BodyLocation = "cuello"
	LocationChest        BodyLocation = "torax"
	LocationBack         BodyLocation = "espalda"
	LocationAbdomen      BodyLocation = "abdomen"
	LocationLeftArm      BodyLocation = "brazo_izquierdo"
	LocationRightArm     BodyLocation = "brazo_derecho"
	LocationLeftForearm  BodyLocation = "antebrazo_izquierdo"
	LocationRightForearm BodyLocation = "antebrazo_derecho"
	LocationLeftHand     BodyLocation = "mano_izquierda"
	LocationRightHand    BodyLocation = "mano_derecha"
	LocationLeftLeg      BodyLocation = "pierna_izquierda"
	LocationRightLeg     BodyLocation = "pierna_derecha"
	LocationLeftThigh    BodyLocation = "muslo_izquierdo"
	LocationRightThigh   BodyLocation = "muslo_derecho"
	LocationLeftCalf     BodyLocation = "pantorrilla_izquierda"
	LocationRightCalf    BodyLocation = "pantorrilla_derecha"
	LocationLeftFoot     BodyLocation = "pie_izquierdo"
	LocationRightFoot    BodyLocation = "pie_derecho"
	LocationOther        BodyLocation = "otro"
)

type Photo struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	ConsultationID uuid.UUID `gorm:"column:consultation_id;type:uuid;not null;index" json:"consultation_id"`
	PatientID      uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index" json:"patient_id"`

	URL          string       `gorm:"column:url;type:text;not null" json:"url"`
	LesionType   LesionType   `gorm:"column:lesion_type;type:varchar(30);not null" json:"lesion_type"`
	BodyLocation BodyLocation `gorm:"column:body_location;type:varchar(40);not null" json:"body_location"`
	Description  string       `gorm:"column:description;type:text" json:"description,omitempty"`
	FilePath     string       `gorm:"column:file_path;type:text;not null" json:"file_path"`
}

func (Photo) TableName() string {
	return "clinical.photos"
}
