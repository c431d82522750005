package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dermaclinic/dermaclinic-api/internal/domain/patient"
	"github.com/dermaclinic/dermaclinic-api/internal/service"
)

const dateLayout = "2006-01-02"

type PatientHandler struct {
	svc *service.PatientService
}

func NewPatientHandler(svc *service.PatientService) *PatientHandler {
	return &PatientHandler{svc: svc}
}

type createPatientRequest struct {
	FirstName      string `json:"nombre" binding:"required"`
	LastName       string `json:"apellido" binding:"required"`
	DateOfBirth    string `json:"fecha_nacimiento" binding:"required"`
	Gender         string `json:"genero" binding:"required"`
	Phone          string `json:"telefono"`
	Email          string `json:"email"`
	Address        string `json:"direccion"`
	MedicalHistory string `json:"historial_medico"`
	Allergies      string `json:"alergias"`
}

type updatePatientRequest struct {
	FirstName      *string `json:"nombre"`
	LastName       *string `json:"apellido"`
	DateOfBirth    *string `json:"fecha_nacimiento"`
	Gender         *string `json:"genero"`
	Phone          *string `json:"telefono"`
	Email          *string `json:"email"`
	Address        *string `json:"direccion"`
	MedicalHistory *string `json:"historial_medico"`
	Allergies      *string `json:"alergias"`
}

type patientResponse struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"nombre"`
	LastName       string    `json:"apellido"`
	DateOfBirth    string    `json:"fecha_nacimiento"`
	Gender         string    `json:"genero"`
	Phone          string    `json:"telefono,omitempty"`
	Email          string    `json:"email,omitempty"`
	Address        string    `json:"direccion,omitempty"`
	MedicalHistory string    `json:"historial_medico,omitempty"`
	Allergies      string    `json:"alergias,omitempty"`
	Age            int       `json:"edad"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toPatientResponse(p *patient.Patient) patientResponse {
	return patientResponse{
		ID:             p.ID.String(),
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		DateOfBirth:    p.DateOfBirth.Format(dateLayout),
		Gender:         string(p.Gender),
		Phone:          p.Phone,
		Email:          p.Email,
		Address:        p.Address,
		MedicalHistory: p.MedicalHistory,
		Allergies:      p.Allergies,
		Age:            p.Age(),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toPatientResponses(patients []*patient.Patient) []patientResponse {
	out := make([]patientResponse, 0, len(patients))
	for _, p := range patients {
		out = append(out, toPatientResponse(p))
	}
	return out
}

// List returns every patient, newest first.
func (h *PatientHandler) List(c *gin.Context) {
	patients, err := h.svc.ListPatients(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toPatientResponses(patients))
}

// Search runs the server-side substring search over name and email.
func (h *PatientHandler) Search(c *gin.Context) {
	patients, err := h.svc.SearchPatients(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toPatientResponses(patients))
}

func (h *PatientHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	callerID, role := caller(c)
	p, err := h.svc.GetPatient(c.Request.Context(), id, callerID, role, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if p == nil {
		respondError(c, http.StatusNotFound, "Paciente no encontrado")
		return
	}
	respondOK(c, toPatientResponse(p))
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req createPatientRequest
	if !bindJSON(c, &req) {
		return
	}

	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		respondError(c, http.StatusBadRequest, "fecha_nacimiento must be formatted as YYYY-MM-DD")
		return
	}

	cmd := &patient.CreatePatientCommand{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		DateOfBirth:    dob,
		Gender:         patient.Gender(req.Gender),
		Phone:          req.Phone,
		Email:          req.Email,
		Address:        req.Address,
		MedicalHistory: req.MedicalHistory,
		Allergies:      req.Allergies,
	}

	callerID, role := caller(c)
	p, err := h.svc.CreatePatient(c.Request.Context(), cmd, callerID, role, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, toPatientResponse(p))
}

func (h *PatientHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updatePatientRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := &patient.UpdatePatientCommand{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		Email:          req.Email,
		Address:        req.Address,
		MedicalHistory: req.MedicalHistory,
		Allergies:      req.Allergies,
	}
	if req.Gender != nil {
		g := patient.Gender(*req.Gender)
		cmd.Gender = &g
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse(dateLayout, *req.DateOfBirth)
		if err != nil {
			respondError(c, http.StatusBadRequest, "fecha_nacimiento must be formatted as YYYY-MM-DD")
			return
		}
		cmd.DateOfBirth = &dob
	}

	callerID, role := caller(c)
	p, err := h.svc.UpdatePatient(c.Request.Context(), id, cmd, callerID, role, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toPatientResponse(p))
}

func (h *PatientHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	callerID, role := caller(c)
	if err := h.svc.DeletePatient(c.Request.Context(), id, callerID, role, c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
