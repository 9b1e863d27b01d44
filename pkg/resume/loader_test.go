package resume

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `{
  "contact": {"name": "Jane Doe", "email": "jane@x.com", "phone": "555-1234", "location": "NYC"},
  "summary": "Increased sales by 25% over one year.",
  "experience": [
    {"company": "Acme", "position": "Engineer", "startDate": "01/2020", "endDate": "Present",
     "description": "Built <fast> & reliable services"}
  ],
  "education": [{"institution": "State U", "degree": "BS", "startDate": "2012", "endDate": "2016"}],
  "skills": ["Python", "SQL", "Python"]
}`

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "resume.json")

	err := os.WriteFile(path, []byte(sampleResume), 0600)
	require.NoError(t, err)

	data, err := Load(path)
	require.NoError(t, err)

	require.NotNil(t, data.Contact)
	assert.Equal(t, "Jane Doe", data.Contact.Name)
	assert.Len(t, data.Experience, 1)
	assert.Equal(t, "01/2020", data.Experience[0].StartDate)
	assert.Equal(t, []string{"Python", "SQL", "Python"}, data.Skills, "duplicates are kept")
}

func TestLoadNonexistent(t *testing.T) {
	_, err := Load("/nonexistent/resume.json")
	assert.Error(t, err)
}

func TestLoadShapeErrorIsDetectable(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "resume.json")

	err := os.WriteFile(path, []byte(`{"experience": "lots"}`), 0600)
	require.NoError(t, err)

	_, err = Load(path)
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "experience", vErr.Field)
}

func TestDecodeShapeErrors(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		field string
	}{
		{name: "experience not a list", raw: `{"experience": {"company": "Acme"}}`, field: "experience"},
		{name: "skills not strings", raw: `{"skills": ["Go", 7]}`, field: "skills"},
		{name: "contact not an object", raw: `{"contact": "jane"}`, field: "contact"},
		{name: "top level array", raw: `[1, 2]`, field: "resume"},
		{name: "malformed", raw: `{"summary": `, field: "resume"},
		{name: "empty", raw: "   ", field: "resume"},
		{name: "null", raw: "null", field: "resume"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.raw))
			require.Error(t, err)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "got %T", err)
			assert.Equal(t, tt.field, vErr.Field)
			assert.Contains(t, err.Error(), "validation error")
		})
	}
}

func TestDecodeMissingSectionsAreFine(t *testing.T) {
	data, err := Decode([]byte(`{"contact": null, "summary": null, "experience": null}`))
	require.NoError(t, err)

	assert.Nil(t, data.Contact)
	assert.Empty(t, data.Summary)
	assert.True(t, data.IsEmpty())
}

func TestSerialize(t *testing.T) {
	data := Data{
		Contact: &Contact{Name: "Jane"},
		Experience: []Experience{
			{Company: "A&B", StartDate: "2020", Description: "line one\nline <two>"},
		},
	}

	got := data.Serialize()
	assert.Equal(t, `{"contact":{"name":"Jane","email":"","phone":"","location":"","linkedin":""},`+
		`"experience":[{"company":"A&B","position":"","startDate":"2020","endDate":"","description":"line one\nline <two>"}]}`, got)
	assert.Equal(t, "{}", Data{}.Serialize())
}

func TestSerializeDecodedKeepsInput(t *testing.T) {
	raw := `{
  "id": 42,
  "contact": {"name": "A", "linkedin": ""},
  "notes": "spaced    out",
  "summary": null
}`

	data, err := Decode([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, `{"id":42,"contact":{"name":"A","linkedin":""},"notes":"spaced    out","summary":null}`, data.Serialize())
	assert.False(t, data.IsEmpty())
}

func TestIsEmptyIgnoresUnknownFields(t *testing.T) {
	data, err := Decode([]byte(`{"id": "r-1"}`))
	require.NoError(t, err)

	assert.True(t, data.IsEmpty())
}
