package patient

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestPatient(first, last, email string) *Patient {
	return &Patient{
		ID:          uuid.New(),
		FirstName:   first,
		LastName:    last,
		Email:       email,
		DateOfBirth: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
		Gender:      GenderMale,
	}
}

func TestFilter_EmptyQueryReturnsInputUnchanged(t *testing.T) {
	patients := []*Patient{
		newTestPatient("Juan", "Pérez", "juan@example.com"),
		newTestPatient("Ana", "García", "ana@example.com"),
	}

	got := Filter(patients, "")

	assert.Equal(t, patients, got)
	// Identity: the very same slice, not a copy.
	assert.Len(t, got, 2)
	assert.Same(t, patients[0], got[0])
	assert.Same(t, patients[1], got[1])
}

func TestFilter_MatchesFirstNameCaseInsensitive(t *testing.T) {
	p := newTestPatient("Juan", "Pérez", "")

	for _, query := range []string{"juan", "JUAN", "Jua", "uAn"} {
		got := Filter([]*Patient{p}, query)
		assert.Len(t, got, 1, "query %q should match", query)
	}

	got := Filter([]*Patient{p}, "juanzzz_not_present")
	assert.Empty(t, got)
}

func TestFilter_MatchesLastNameAndEmail(t *testing.T) {
	p := newTestPatient("Ana", "Lopez", "Ana@Example.COM")

	assert.Len(t, Filter([]*Patient{p}, "lopez"), 1)
	assert.Len(t, Filter([]*Patient{p}, "ana@example"), 1)
	assert.Empty(t, Filter([]*Patient{p}, "garcia"))
}

func TestFilter_NoEmailDoesNotMatchEmailQueries(t *testing.T) {
	p := newTestPatient("Juan", "Pérez", "")

	assert.Empty(t, Filter([]*Patient{p}, "@example.com"))
}

// Matching folds case but never accents: "lopez" must not find "López".
// This pins down how the filter relates to the store's ILIKE comparison,
// which is also accent-sensitive under the default collation.
func TestFilter_AccentSensitive(t *testing.T) {
	p := newTestPatient("Ana", "López", "ana@x.com")

	assert.Empty(t, Filter([]*Patient{p}, "lopez"))
	assert.Len(t, Filter([]*Patient{p}, "lópez"), 1)
	assert.Len(t, Filter([]*Patient{p}, "LÓPEZ"), 1)
}

func TestFilter_MatchesIDSubstring(t *testing.T) {
	p := newTestPatient("Juan", "Pérez", "")

	full := p.ID.String()
	assert.Len(t, Filter([]*Patient{p}, full), 1)
	assert.Len(t, Filter([]*Patient{p}, full[:8]), 1)
}

func TestFilter_PreservesOrder(t *testing.T) {
	a := newTestPatient("Maria", "Santos", "")
	b := newTestPatient("Mario", "Ruiz", "")
	c := newTestPatient("Pedro", "Mar", "")

	got := Filter([]*Patient{a, b, c}, "mar")

	assert.Equal(t, []*Patient{a, b, c}, got)
}

func TestFilter_RepeatedCallsYieldEqualResults(t *testing.T) {
	patients := []*Patient{
		newTestPatient("Juan", "Pérez", "juan@example.com"),
		newTestPatient("Ana", "García", ""),
	}

	first := Filter(patients, "an")
	second := Filter(patients, "an")

	assert.Equal(t, first, second)
}
