package activities

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activity-signup/internal/models"
)

func TestDefaultCatalog_IsValidSeed(t *testing.T) {
	catalog := DefaultCatalog()
	require.NotEmpty(t, catalog)

	_, err := NewRegistry(catalog, Options{})
	require.NoError(t, err)

	for _, a := range catalog {
		assert.LessOrEqual(t, len(a.Participants), a.MaxParticipants, a.Name)
	}
}

func TestParseCatalog(t *testing.T) {
	data := []byte(`{
		"Robotics": {
			"description": "Build robots",
			"schedule": "Mondays, 4:00 PM",
			"max_participants": 8,
			"participants": ["ada@mergington.edu"]
		},
		"Choir": {
			"description": "Sing together",
			"schedule": "Thursdays, 3:00 PM",
			"max_participants": 40
		}
	}`)

	catalog, err := ParseCatalog(data)
	require.NoError(t, err)
	require.Len(t, catalog, 2)

	assert.Equal(t, "Choir", catalog[0].Name)
	assert.Empty(t, catalog[0].Participants)
	assert.Equal(t, "Robotics", catalog[1].Name)
	assert.Equal(t, 8, catalog[1].MaxParticipants)
	assert.Equal(t, []string{"ada@mergington.edu"}, catalog[1].Participants)
}

func TestParseCatalog_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty object", `{}`},
		{"not an object", `[]`},
		{"missing schedule", `{"A": {"description": "d", "max_participants": 1}}`},
		{"negative capacity", `{"A": {"description": "d", "schedule": "s", "max_participants": -1}}`},
		{"unknown field", `{"A": {"description": "d", "schedule": "s", "max_participants": 1, "room": "101"}}`},
		{"duplicate participant", `{"A": {"description": "d", "schedule": "s", "max_participants": 3, "participants": ["x@y.io", "x@y.io"]}}`},
		{"over capacity", `{"A": {"description": "d", "schedule": "s", "max_participants": 1, "participants": ["x@y.io", "z@y.io"]}}`},
		{"malformed", `{"A":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Chess Club": {"description": "d", "schedule": "s", "max_participants": 2}}`), 0o600))

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, catalog, 1)
	assert.Equal(t, "Chess Club", catalog[0].Name)

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestSaveCatalog_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.json")
	require.NoError(t, SaveCatalog(path, DefaultCatalog()))

	loaded, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, loaded, len(DefaultCatalog()))

	r, err := NewRegistry(loaded, Options{})
	require.NoError(t, err)
	view, err := r.Get("Chess Club")
	require.NoError(t, err)
	assert.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu"}, view.Participants)
}

func TestMarshalCatalog_EmptyRosterIsArray(t *testing.T) {
	data, err := MarshalCatalog([]models.Activity{{Name: "Choir", MaxParticipants: 3}})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"participants": []`)

	_, err = MarshalCatalog([]models.Activity{{Name: "Choir"}, {Name: "Choir"}})
	assert.Error(t, err)
}
