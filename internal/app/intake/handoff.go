package intake

import (
	"context"
	"fmt"
	"strings"

	"github.com/matrukan/tricog/internal/app/ds"
	"github.com/matrukan/tricog/internal/app/pkg/storage"
)

// ObjectStore is where hand-off summaries are written, see storage.MinIO.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// Handoff publishes a Markdown summary of every completed intake for the
// consulting cardiologist.
type Handoff struct {
	store  ObjectStore
	prefix string
}

func NewHandoff(store ObjectStore) *Handoff {
	return &Handoff{store: store, prefix: "intakes"}
}

// Publish writes the summary and returns its object key.
func (h *Handoff) Publish(ctx context.Context, p *ds.PatientIntake) (string, error) {
	key := fmt.Sprintf("%s/%s-%s.md", h.prefix, p.SessionID, storage.SanitizeFileName(p.Name))
	if _, err := h.store.Put(ctx, key, []byte(Summary(p)), "text/markdown; charset=utf-8"); err != nil {
		return "", err
	}
	return key, nil
}

// Summary renders an intake as Markdown, answers grouped per symptom.
func Summary(p *ds.PatientIntake) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Consultation request %s\n\n", p.SessionID)
	fmt.Fprintf(&b, "- Name: %s\n- Email: %s\n- Gender: %s\n", p.Name, p.Email, p.Gender)
	fmt.Fprintf(&b, "- Symptoms: %s\n", strings.Join(p.Symptoms, ", "))

	for _, symptom := range p.Symptoms {
		fmt.Fprintf(&b, "\n## %s\n\n", strings.ToUpper(symptom))
		answered := false
		for _, a := range p.Responses {
			if a.Symptom != symptom {
				continue
			}
			answered = true
			fmt.Fprintf(&b, "**Q:** %s\n**A:** %s\n\n", a.Question, a.Answer)
		}
		if !answered {
			b.WriteString("_no follow-up answers_\n")
		}
	}
	return b.String()
}
