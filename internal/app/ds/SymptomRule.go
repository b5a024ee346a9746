package ds

import (
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SymptomRule maps a canonical symptom key to its follow-up questions.
type SymptomRule struct {
	Symptom           string                      `gorm:"primaryKey;type:varchar(200)" json:"symptom" yaml:"symptom"`
	FollowUpQuestions datatypes.JSONSlice[string] `gorm:"not null" json:"follow_up_questions" yaml:"follow_up_questions"`
}

func (SymptomRule) TableName() string {
	return "symptom_rules"
}

// NormalizeSymptom is the canonical form used for keys and lookups.
func NormalizeSymptom(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (r *SymptomRule) normalize() {
	r.Symptom = NormalizeSymptom(r.Symptom)
	if r.FollowUpQuestions == nil {
		r.FollowUpQuestions = datatypes.JSONSlice[string]{}
	}
}

func (r *SymptomRule) BeforeSave(tx *gorm.DB) error {
	r.normalize()
	return nil
}

func (r *SymptomRule) AfterFind(tx *gorm.DB) error {
	if r.FollowUpQuestions == nil {
		r.FollowUpQuestions = datatypes.JSONSlice[string]{}
	}
	return nil
}

// NewSymptomRule builds a normalized rule.
func NewSymptomRule(symptom string, questions ...string) SymptomRule {
	r := SymptomRule{Symptom: symptom, FollowUpQuestions: append(datatypes.JSONSlice[string]{}, questions...)}
	r.normalize()
	return r
}
