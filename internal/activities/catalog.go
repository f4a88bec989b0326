package activities

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"activity-signup/internal/common/validation"
	"activity-signup/internal/models"
)

//go:embed catalog.schema.json
var catalogSchema string

// DefaultCatalog is the built-in Mergington High School catalog.
func DefaultCatalog() []models.Activity {
	return []models.Activity{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		{
			Name:            "Soccer Team",
			Description:     "Join the school soccer team and compete in matches",
			Schedule:        "Tuesdays and Thursdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 22,
			Participants:    []string{"liam@mergington.edu", "noah@mergington.edu"},
		},
		{
			Name:            "Basketball Team",
			Description:     "Practice and play basketball with the school team",
			Schedule:        "Wednesdays and Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"ava@mergington.edu", "mia@mergington.edu"},
		},
		{
			Name:            "Art Club",
			Description:     "Explore your creativity through painting and drawing",
			Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"amelia@mergington.edu", "harper@mergington.edu"},
		},
		{
			Name:            "Drama Club",
			Description:     "Act, direct, and produce plays and performances",
			Schedule:        "Mondays and Wednesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"ella@mergington.edu", "scarlett@mergington.edu"},
		},
		{
			Name:            "Math Club",
			Description:     "Solve challenging problems and participate in math competitions",
			Schedule:        "Tuesdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 10,
			Participants:    []string{"james@mergington.edu", "benjamin@mergington.edu"},
		},
		{
			Name:            "Debate Team",
			Description:     "Develop public speaking and argumentation skills",
			Schedule:        "Fridays, 4:00 PM - 5:30 PM",
			MaxParticipants: 12,
			Participants:    []string{"charlotte@mergington.edu", "henry@mergington.edu"},
		},
	}
}

// LoadCatalog reads a catalog file shaped like the GET /activities response.
func LoadCatalog(path string) ([]models.Activity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return ParseCatalog(data)
}

// ParseCatalog validates and decodes a JSON catalog. Activities come back
// sorted by name.
func ParseCatalog(data []byte) ([]models.Activity, error) {
	result, err := validation.ValidateJSON(data, catalogSchema)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, fmt.Errorf("catalog does not match schema: %s", strings.Join(result.GetErrorMessages(), "; "))
	}

	var views map[string]models.ActivityView
	if err := json.Unmarshal(data, &views); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	for name, v := range views {
		if len(v.Participants) > v.MaxParticipants {
			return nil, fmt.Errorf("activity %q: %d participants exceed max_participants %d",
				name, len(v.Participants), v.MaxParticipants)
		}
	}
	return FromViews(views), nil
}

// FromViews converts a GET /activities style map into catalog entries,
// sorted by name.
func FromViews(views map[string]models.ActivityView) []models.Activity {
	out := make([]models.Activity, 0, len(views))
	for name, v := range views {
		out = append(out, models.Activity{
			Name:            name,
			Description:     v.Description,
			Schedule:        v.Schedule,
			MaxParticipants: v.MaxParticipants,
			Participants:    v.Participants,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// MarshalCatalog encodes activities in the catalog file format.
func MarshalCatalog(catalog []models.Activity) ([]byte, error) {
	views := make(map[string]models.ActivityView, len(catalog))
	for i := range catalog {
		if _, dup := views[catalog[i].Name]; dup {
			return nil, fmt.Errorf("duplicate activity %q", catalog[i].Name)
		}
		views[catalog[i].Name] = catalog[i].View()
	}
	return json.MarshalIndent(views, "", "  ")
}

// SaveCatalog writes the catalog to path, creating parent directories.
func SaveCatalog(path string, catalog []models.Activity) error {
	data, err := MarshalCatalog(catalog)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create catalog directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog %s: %w", path, err)
	}
	return nil
}
