package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dermaclinic/dermaclinic-api/internal/domain/patient"
)

// PatientRepository is the gorm-backed implementation of patient.Repository.
// Every operation is a single round trip; there is no retry and no cache.
type PatientRepository struct {
	db *gorm.DB
}

var _ patient.Repository = (*PatientRepository)(nil)

func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

func (r *PatientRepository) Create(ctx context.Context, p *patient.Patient) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PatientRepository) GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	var p patient.Patient
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Absence is a normal result, not a failure.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PatientRepository) Update(ctx context.Context, id uuid.UUID, cmd *patient.UpdatePatientCommand) (*patient.Patient, error) {
	var p patient.Patient
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, patient.ErrPatientNotFound
	}
	if err != nil {
		return nil, err
	}

	updates := updateColumns(cmd)
	if len(updates) == 0 {
		return &p, nil
	}

	if err := r.db.WithContext(ctx).Model(&p).Updates(updates).Error; err != nil {
		return nil, err
	}

	// Re-read so the caller sees store-assigned values (updated_at).
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("reloading updated patient: %w", err)
	}
	return &p, nil
}

func (r *PatientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Hard delete. A missing id is not an error.
	return r.db.WithContext(ctx).Delete(&patient.Patient{}, "id = ?", id).Error
}

func (r *PatientRepository) List(ctx context.Context) ([]*patient.Patient, error) {
	var patients []*patient.Patient
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *PatientRepository) Search(ctx context.Context, query string) ([]*patient.Patient, error) {
	if query == "" {
		return r.List(ctx)
	}

	pattern := "%" + query + "%"
	var patients []*patient.Patient
	err := r.db.WithContext(ctx).
		Where("nombre ILIKE ? OR apellido ILIKE ? OR email ILIKE ?", pattern, pattern, pattern).
		Order("created_at DESC").
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func updateColumns(cmd *patient.UpdatePatientCommand) map[string]any {
	updates := map[string]any{}
	if cmd.FirstName != nil {
		updates["nombre"] = *cmd.FirstName
	}
	if cmd.LastName != nil {
		updates["apellido"] = *cmd.LastName
	}
	if cmd.DateOfBirth != nil {
		updates["fecha_nacimiento"] = *cmd.DateOfBirth
	}
	if cmd.Gender != nil {
		updates["genero"] = *cmd.Gender
	}
	if cmd.Phone != nil {
		updates["telefono"] = *cmd.Phone
	}
	if cmd.Email != nil {
		updates["email"] = *cmd.Email
	}
	if cmd.Address != nil {
		updates["direccion"] = *cmd.Address
	}
	if cmd.MedicalHistory != nil {
		updates["historial_medico"] = *cmd.MedicalHistory
	}
	if cmd.Allergies != nil {
		updates["alergias"] = *cmd.Allergies
	}
	return updates
}
