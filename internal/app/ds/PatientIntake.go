package ds

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type IntakeStage string

const (
	StageName      IntakeStage = "name"
	StageEmail     IntakeStage = "email"
	StageGender    IntakeStage = "gender"
	StageSymptoms  IntakeStage = "symptoms"
	StageFollowUp  IntakeStage = "follow_up"
	StageCompleted IntakeStage = "completed"
)

const (
	IntakeActive    = "active"
	IntakeCompleted = "completed"
)

// IntakeAnswer is one answered follow-up question.
type IntakeAnswer struct {
	Symptom  string `json:"symptom"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// PatientIntake holds the whole state of one intake conversation, so a
// reply can be processed without any in-process session.
type PatientIntake struct {
	SessionID     string                            `gorm:"primaryKey;type:varchar(36)" json:"session_id"`
	Name          string                            `gorm:"type:varchar(200)" json:"name"`
	Email         string                            `gorm:"type:varchar(200)" json:"email"`
	Gender        string                            `gorm:"type:varchar(50)" json:"gender"`
	Stage         IntakeStage                       `gorm:"type:varchar(20);not null" json:"stage"`
	Symptoms      datatypes.JSONSlice[string]       `gorm:"not null" json:"symptoms"`
	Responses     datatypes.JSONSlice[IntakeAnswer] `gorm:"not null" json:"responses"`
	SymptomIndex  int                               `gorm:"not null;default:0" json:"-"`
	QuestionIndex int                               `gorm:"not null;default:0" json:"-"`
	Status        string                            `gorm:"type:varchar(20);not null;default:active" json:"status"`
	HandoffKey    string                            `gorm:"type:varchar(200)" json:"handoff_key,omitempty"`
	Version       int                               `gorm:"not null;default:0" json:"-"`
	CreatedAt     time.Time                         `gorm:"not null;index" json:"created_at"`
	UpdatedAt     time.Time                         `json:"updated_at"`
}

func (p *PatientIntake) BeforeSave(tx *gorm.DB) error {
	if p.Symptoms == nil {
		p.Symptoms = datatypes.JSONSlice[string]{}
	}
	if p.Responses == nil {
		p.Responses = datatypes.JSONSlice[IntakeAnswer]{}
	}
	return nil
}
