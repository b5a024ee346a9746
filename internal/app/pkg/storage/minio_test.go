package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFileName(t *testing.T) {
	cases := map[string]string{
		"Jane Doe":          "jane-doe",
		"  ":                "file",
		"Émile O'Brien":     "mile-o-brien",
		"report_2024.md":    "report_2024.md",
		"__--weird--name__": "weird--name",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeFileName(in), in)
	}
}

func TestPublicURL(t *testing.T) {
	m := &MinIO{bucket: "intakes", publicBase: "https://files.example.org/storage"}
	assert.Equal(t, "https://files.example.org/storage/intakes/a/b.md", m.PublicURL("a/b.md"))
}
