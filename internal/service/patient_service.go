package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/dermaclinic/dermaclinic-api/internal/domain/patient"
	"github.com/dermaclinic/dermaclinic-api/pkg/metrics"
)

// PatientService translates patient operations into store calls and
// normalizes every store failure into a RepositoryError carrying the
// clinic's Spanish action description. It holds no state of its own.
type PatientService struct {
	repo     patient.Repository
	auditSvc *AuditService
	metrics  *metrics.Collector
	log      *zap.Logger
	tracer   trace.Tracer
}

func NewPatientService(repo patient.Repository, auditSvc *AuditService, m *metrics.Collector, log *zap.Logger) *PatientService {
	return &PatientService{
		repo:     repo,
		auditSvc: auditSvc,
		metrics:  m,
		log:      log,
		tracer:   otel.Tracer("dermaclinic/patient"),
	}
}

func (s *PatientService) CreatePatient(ctx context.Context, cmd *patient.CreatePatientCommand, callerID uuid.UUID, callerRole string, ip string) (*patient.Patient, error) {
	ctx, span := s.tracer.Start(ctx, "PatientService.CreatePatient")
	defer span.End()

	if err := validateCreateCommand(cmd); err != nil {
		return nil, err
	}

	p := &patient.Patient{
		FirstName:      strings.TrimSpace(cmd.FirstName),
		LastName:       strings.TrimSpace(cmd.LastName),
		DateOfBirth:    cmd.DateOfBirth,
		Gender:         cmd.Gender,
		Phone:          strings.TrimSpace(cmd.Phone),
		Email:          strings.ToLower(strings.TrimSpace(cmd.Email)),
		Address:        cmd.Address,
		MedicalHistory: cmd.MedicalHistory,
		Allergies:      cmd.Allergies,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error("failed to create patient", zap.Error(err))
		return nil, repoError("crear paciente", err)
	}

	s.metrics.PatientsCreatedTotal.Inc()
	span.SetAttributes(attribute.String("patient.id", p.ID.String()))

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       callerID,
		UserRole:     callerRole,
		Action:       "create",
		ResourceType: "patient",
		ResourceID:   p.ID.String(),
		IPAddress:    ip,
	})

	s.log.Info("patient created",
		zap.String("patient_id", p.ID.String()),
		zap.String("created_by", callerID.String()),
	)

	return p, nil
}

// GetPatient returns (nil, nil) when the id does not exist; absence is not
// an error here.
func (s *PatientService) GetPatient(ctx context.Context, id uuid.UUID, callerID uuid.UUID, callerRole string, ip string) (*patient.Patient, error) {
	ctx, span := s.tracer.Start(ctx, "PatientService.GetPatient")
	defer span.End()

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Error("failed to load patient", zap.String("patient_id", id.String()), zap.Error(err))
		return nil, repoError("cargar paciente", err)
	}
	if p == nil {
		return nil, nil
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       callerID,
		UserRole:     callerRole,
		Action:       "read",
		ResourceType: "patient",
		ResourceID:   id.String(),
		IPAddress:    ip,
	})

	return p, nil
}

func (s *PatientService) UpdatePatient(ctx context.Context, id uuid.UUID, cmd *patient.UpdatePatientCommand, callerID uuid.UUID, callerRole string, ip string) (*patient.Patient, error) {
	ctx, span := s.tracer.Start(ctx, "PatientService.UpdatePatient")
	defer span.End()

	if err := validateUpdateCommand(cmd); err != nil {
		return nil, err
	}

	p, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		s.log.Error("failed to update patient", zap.String("patient_id", id.String()), zap.Error(err))
		return nil, repoError("actualizar paciente", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       callerID,
		UserRole:     callerRole,
		Action:       "update",
		ResourceType: "patient",
		ResourceID:   id.String(),
		IPAddress:    ip,
	})

	return p, nil
}

func (s *PatientService) DeletePatient(ctx context.Context, id uuid.UUID, callerID uuid.UUID, callerRole string, ip string) error {
	ctx, span := s.tracer.Start(ctx, "PatientService.DeletePatient")
	defer span.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error("failed to delete patient", zap.String("patient_id", id.String()), zap.Error(err))
		return repoError("eliminar paciente", err)
	}

	s.metrics.PatientsDeletedTotal.Inc()

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       callerID,
		UserRole:     callerRole,
		Action:       "delete",
		ResourceType: "patient",
		ResourceID:   id.String(),
		IPAddress:    ip,
	})

	s.log.Info("patient deleted",
		zap.String("patient_id", id.String()),
		zap.String("deleted_by", callerID.String()),
	)

	return nil
}

func (s *PatientService) ListPatients(ctx context.Context) ([]*patient.Patient, error) {
	ctx, span := s.tracer.Start(ctx, "PatientService.ListPatients")
	defer span.End()

	patients, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("failed to list patients", zap.Error(err))
		return nil, repoError("cargar pacientes", err)
	}
	return patients, nil
}

func (s *PatientService) SearchPatients(ctx context.Context, query string) ([]*patient.Patient, error) {
	ctx, span := s.tracer.Start(ctx, "PatientService.SearchPatients")
	defer span.End()
	span.SetAttributes(attribute.Int("query.length", len(query)))

	patients, err := s.repo.Search(ctx, query)
	if err != nil {
		s.log.Error("failed to search patients", zap.Error(err))
		return nil, repoError("buscar pacientes", err)
	}

	s.metrics.PatientSearchesTotal.Inc()
	return patients, nil
}

func validateCreateCommand(cmd *patient.CreatePatientCommand) error {
	var errs []string

	if strings.TrimSpace(cmd.FirstName) == "" {
		errs = append(errs, "el nombre es obligatorio")
	}
	if strings.TrimSpace(cmd.LastName) == "" {
		errs = append(errs, "el apellido es obligatorio")
	}
	if cmd.DateOfBirth.IsZero() {
		errs = append(errs, "la fecha de nacimiento es obligatoria")
	}
	if !cmd.DateOfBirth.IsZero() && cmd.DateOfBirth.After(time.Now()) {
		errs = append(errs, "la fecha de nacimiento no puede ser futura")
	}
	if !cmd.Gender.IsValid() {
		errs = append(errs, "el género no es válido")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func validateUpdateCommand(cmd *patient.UpdatePatientCommand) error {
	var errs []string

	if cmd.FirstName != nil && strings.TrimSpace(*cmd.FirstName) == "" {
		errs = append(errs, "el nombre no puede quedar vacío")
	}
	if cmd.LastName != nil && strings.TrimSpace(*cmd.LastName) == "" {
		errs = append(errs, "el apellido no puede quedar vacío")
	}
	if cmd.Gender != nil && !cmd.Gender.IsValid() {
		errs = append(errs, "el género no es válido")
	}
	if cmd.DateOfBirth != nil && cmd.DateOfBirth.After(time.Now()) {
		errs = append(errs, "la fecha de nacimiento no puede ser futura")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
