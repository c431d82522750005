package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dermaclinic/dermaclinic-api/internal/domain"
	"github.com/dermaclinic/dermaclinic-api/internal/domain/patient"
	"github.com/dermaclinic/dermaclinic-api/internal/service"
	"github.com/dermaclinic/dermaclinic-api/pkg/metrics"
)

var testMetrics = metrics.NewCollector("handler_test")

// stubPatientRepo keeps patients in a map; just enough store behavior for
// handler tests.
type stubPatientRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*patient.Patient
	fail error
}

func newStubPatientRepo() *stubPatientRepo {
	return &stubPatientRepo{byID: make(map[uuid.UUID]*patient.Patient)}
}

func (s *stubPatientRepo) Create(_ context.Context, p *patient.Patient) error {
	if s.fail != nil {
		return s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = uuid.New()
	s.byID[p.ID] = p
	return nil
}

func (s *stubPatientRepo) GetByID(_ context.Context, id uuid.UUID) (*patient.Patient, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byID[id], nil
}

func (s *stubPatientRepo) Update(_ context.Context, id uuid.UUID, cmd *patient.UpdatePatientCommand) (*patient.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok {
		return nil, patient.ErrPatientNotFound
	}
	if cmd.Allergies != nil {
		p.Allergies = *cmd.Allergies
	}
	if cmd.FirstName != nil {
		p.FirstName = *cmd.FirstName
	}
	return p, nil
}

func (s *stubPatientRepo) Delete(_ context.Context, id uuid.UUID) error {
	if s.fail != nil {
		return s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, id)
	return nil
}

func (s *stubPatientRepo) List(_ context.Context) ([]*patient.Patient, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*patient.Patient, 0, len(s.byID))
	for _, p := range s.byID {
		out = append(out, p)
	}
	return out, nil
}

func (s *stubPatientRepo) Search(ctx context.Context, _ string) ([]*patient.Patient, error) {
	return s.List(ctx)
}

type stubAuditRepo struct{}

func (stubAuditRepo) Create(context.Context, *domain.AuditLog) error { return nil }

func newTestRouter(repo patient.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)

	auditSvc := service.NewAuditService(stubAuditRepo{}, testMetrics, zap.NewNop())
	svc := service.NewPatientService(repo, auditSvc, testMetrics, zap.NewNop())
	h := NewPatientHandler(svc)

	r := gin.New()
	r.GET("/patients", h.List)
	r.GET("/patients/search", h.Search)
	r.POST("/patients", h.Create)
	r.GET("/patients/:id", h.Get)
	r.PATCH("/patients/:id", h.Update)
	r.DELETE("/patients/:id", h.Delete)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validCreateBody() map[string]any {
	return map[string]any{
		"nombre":           "Juan",
		"apellido":         "Pérez",
		"fecha_nacimiento": "1990-05-01",
		"genero":           "masculino",
		"telefono":         "600111222",
	}
}

func TestCreatePatientEndpoint(t *testing.T) {
	r := newTestRouter(newStubPatientRepo())

	w := doJSON(t, r, http.MethodPost, "/patients", validCreateBody())

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data patientResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Juan", resp.Data.FirstName)
	assert.Equal(t, "Pérez", resp.Data.LastName)
	assert.Equal(t, "1990-05-01", resp.Data.DateOfBirth)
	assert.Equal(t, "masculino", resp.Data.Gender)
	assert.NotEmpty(t, resp.Data.ID)
}

func TestCreatePatientEndpoint_MissingRequiredField(t *testing.T) {
	r := newTestRouter(newStubPatientRepo())

	body := validCreateBody()
	delete(body, "nombre")
	w := doJSON(t, r, http.MethodPost, "/patients", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePatientEndpoint_BadDateFormat(t *testing.T) {
	r := newTestRouter(newStubPatientRepo())

	body := validCreateBody()
	body["fecha_nacimiento"] = "01/05/1990"
	w := doJSON(t, r, http.MethodPost, "/patients", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "YYYY-MM-DD")
}

func TestGetPatientEndpoint_NotFound(t *testing.T) {
	r := newTestRouter(newStubPatientRepo())

	w := doJSON(t, r, http.MethodGet, "/patients/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Paciente no encontrado")
}

func TestGetPatientEndpoint_InvalidUUID(t *testing.T) {
	r := newTestRouter(newStubPatientRepo())

	w := doJSON(t, r, http.MethodGet, "/patients/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdatePatientEndpoint_NotFound(t *testing.T) {
	r := newTestRouter(newStubPatientRepo())

	w := doJSON(t, r, http.MethodPatch, "/patients/"+uuid.NewString(), map[string]any{"alergias": "polen"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeletePatientEndpoint(t *testing.T) {
	repo := newStubPatientRepo()
	r := newTestRouter(repo)

	create := doJSON(t, r, http.MethodPost, "/patients", validCreateBody())
	require.Equal(t, http.StatusCreated, create.Code)

	var resp struct {
		Data patientResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(create.Body.Bytes(), &resp))

	del := doJSON(t, r, http.MethodDelete, "/patients/"+resp.Data.ID, nil)
	assert.Equal(t, http.StatusNoContent, del.Code)

	get := doJSON(t, r, http.MethodGet, "/patients/"+resp.Data.ID, nil)
	assert.Equal(t, http.StatusNotFound, get.Code)
}

func TestListPatientsEndpoint_StoreFailure(t *testing.T) {
	repo := newStubPatientRepo()
	repo.fail = errors.New("connection refused")
	r := newTestRouter(repo)

	w := doJSON(t, r, http.MethodGet, "/patients", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Error al cargar pacientes: connection refused")
}

func TestComingSoonEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/consultations", ComingSoon("consultations"))

	w := doJSON(t, r, http.MethodGet, "/consultations", nil)

	assert.Equal(t, http.StatusNotImplemented, w.Code)
	assert.Contains(t, w.Body.String(), "Próximamente")
}
