// Package intake runs the patient intake conversation: basic details first,
// then free-text symptoms mapped onto the rule vocabulary, then the stored
// follow-up questions of each matched symptom in order.
package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/matrukan/tricog/internal/app/ds"
	"github.com/matrukan/tricog/internal/app/matcher"
	"github.com/matrukan/tricog/internal/app/pkg/logger"
	"github.com/matrukan/tricog/internal/app/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotFound = errors.New("unknown intake session")
	ErrConflict = errors.New("intake session was updated concurrently")
)

// Store is the persistence the conversation needs.
type Store interface {
	Symptoms(ctx context.Context) ([]string, error)
	GetRule(ctx context.Context, symptom string) (ds.SymptomRule, error)
	CreateIntake(ctx context.Context, p *ds.PatientIntake) error
	GetIntake(ctx context.Context, sessionID string) (*ds.PatientIntake, error)
	UpdateIntake(ctx context.Context, p *ds.PatientIntake) error
	ListIntakes(ctx context.Context) ([]ds.PatientIntake, error)
}

// Turn is the outcome of one conversation step.
type Turn struct {
	SessionID string         `json:"session_id"`
	Stage     ds.IntakeStage `json:"stage"`
	Reply     string         `json:"reply"`
	Symptoms  []string       `json:"symptoms"`
}

type Service struct {
	store    Store
	matcher  *matcher.Matcher
	handoff  *Handoff
	validate *validator.Validate
	log      *logrus.Entry
}

// NewService wires the conversation. handoff may be nil.
func NewService(store Store, m *matcher.Matcher, handoff *Handoff) *Service {
	return &Service{
		store:    store,
		matcher:  m,
		handoff:  handoff,
		validate: validator.New(),
		log:      logger.Component("intake"),
	}
}

const welcome = "Hello! I'm your Tricog Health digital assistant. I'm here to help collect information " +
	"about your symptoms before your consultation with our cardiologist. " +
	"Let's start with some basic information. What is your name?"

func (s *Service) Start(ctx context.Context) (Turn, error) {
	p := &ds.PatientIntake{
		SessionID: uuid.NewString(),
		Stage:     ds.StageName,
		Status:    ds.IntakeActive,
	}
	if err := s.store.CreateIntake(ctx, p); err != nil {
		return Turn{}, err
	}
	s.log.WithField("session_id", p.SessionID).Info("intake started")
	return turn(p, welcome), nil
}

func (s *Service) Get(ctx context.Context, sessionID string) (*ds.PatientIntake, error) {
	p, err := s.store.GetIntake(ctx, sessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return p, err
}

func (s *Service) List(ctx context.Context) ([]ds.PatientIntake, error) {
	return s.store.ListIntakes(ctx)
}

// Reply feeds one patient message into the conversation and returns the next prompt.
func (s *Service) Reply(ctx context.Context, sessionID, message string) (Turn, error) {
	p, err := s.Get(ctx, sessionID)
	if err != nil {
		return Turn{}, err
	}
	message = strings.TrimSpace(message)

	var reply string
	changed := true
	switch p.Stage {
	case ds.StageName:
		p.Name = message
		p.Stage = ds.StageEmail
		reply = fmt.Sprintf("Nice to meet you, %s! Now, could you please provide your email address?", message)

	case ds.StageEmail:
		if err := s.validate.Var(message, "required,email"); err != nil {
			reply, changed = "Please provide a valid email address.", false
			break
		}
		p.Email = message
		p.Stage = ds.StageGender
		reply = "Thank you! Could you please tell me your gender (Male/Female/Other)?"

	case ds.StageGender:
		p.Gender = message
		p.Stage = ds.StageSymptoms
		reply, err = s.symptomPrompt(ctx)

	case ds.StageSymptoms:
		reply, changed, err = s.takeSymptoms(ctx, p, message)

	case ds.StageFollowUp:
		reply, err = s.takeAnswer(ctx, p, message)

	default:
		reply, changed = "Your intake is complete. Our cardiologist will review it before your consultation.", false
	}
	if err != nil {
		return Turn{}, err
	}

	if changed {
		if err := s.save(ctx, p); err != nil {
			return Turn{}, err
		}
		if p.Stage == ds.StageCompleted && p.HandoffKey == "" {
			s.publish(ctx, p)
		}
	}
	return turn(p, reply), nil
}

func (s *Service) symptomPrompt(ctx context.Context) (string, error) {
	known, err := s.store.Symptoms(ctx)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("Thank you for providing your information! Now, I need to understand your symptoms " +
		"to help our cardiologist prepare for your consultation.\n\n" +
		"Please describe the main symptoms you're experiencing. For example:\n")
	for _, k := range known {
		b.WriteString("- ")
		b.WriteString(k)
		b.WriteString("\n")
	}
	b.WriteString("\nWhat symptoms are bothering you?")
	return b.String(), nil
}

func (s *Service) takeSymptoms(ctx context.Context, p *ds.PatientIntake, message string) (string, bool, error) {
	known, err := s.store.Symptoms(ctx)
	if err != nil {
		return "", false, err
	}
	found := s.matcher.Match(message, known)
	if len(found) == 0 {
		return "I couldn't identify any specific cardiac symptoms from your message. Could you please be more specific? " +
			"For example, you might say 'I have chest pain' or 'I feel short of breath'.", false, nil
	}

	p.Symptoms = found
	p.SymptomIndex, p.QuestionIndex = 0, 0
	symptom, question, ok, err := s.nextQuestion(ctx, p)
	if err != nil {
		return "", false, err
	}
	if !ok {
		return s.complete(p), true, nil
	}
	p.Stage = ds.StageFollowUp
	return fmt.Sprintf("Thank you for sharing that. I've identified that you're experiencing: %s.\n\n"+
		"Now I need to ask some specific questions about your %s:\n\n%s",
		strings.Join(found, ", "), symptom, question), true, nil
}

func (s *Service) takeAnswer(ctx context.Context, p *ds.PatientIntake, message string) (string, error) {
	symptom, question, ok, err := s.nextQuestion(ctx, p)
	if err != nil {
		return "", err
	}
	if !ok {
		return s.complete(p), nil
	}
	p.Responses = append(p.Responses, ds.IntakeAnswer{Symptom: symptom, Question: question, Answer: message})
	p.QuestionIndex++

	next, question, ok, err := s.nextQuestion(ctx, p)
	if err != nil {
		return "", err
	}
	if !ok {
		return s.complete(p), nil
	}
	if next != symptom {
		return fmt.Sprintf("Now let's talk about your %s:\n\n%s", next, question), nil
	}
	return question, nil
}

// nextQuestion moves the cursor past symptoms that have no rule or no
// questions left and returns the question it points at.
func (s *Service) nextQuestion(ctx context.Context, p *ds.PatientIntake) (string, string, bool, error) {
	for p.SymptomIndex < len(p.Symptoms) {
		symptom := p.Symptoms[p.SymptomIndex]
		rule, err := s.store.GetRule(ctx, symptom)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return "", "", false, err
		}
		if err == nil && p.QuestionIndex < len(rule.FollowUpQuestions) {
			return symptom, rule.FollowUpQuestions[p.QuestionIndex], true, nil
		}
		p.SymptomIndex++
		p.QuestionIndex = 0
	}
	return "", "", false, nil
}

func (s *Service) complete(p *ds.PatientIntake) string {
	p.Stage = ds.StageCompleted
	p.Status = ds.IntakeCompleted
	return fmt.Sprintf("Thank you for providing all the information about your symptoms. "+
		"I have collected detailed information about your %s.\n\n"+
		"Our cardiologist will receive this information and will be better prepared for your consultation.",
		strings.Join(p.Symptoms, ", "))
}

func (s *Service) save(ctx context.Context, p *ds.PatientIntake) error {
	err := s.store.UpdateIntake(ctx, p)
	if errors.Is(err, repository.ErrStale) {
		return ErrConflict
	}
	return err
}

// publish hands a completed intake over. Failures are logged only; the
// patient's conversation is already saved.
func (s *Service) publish(ctx context.Context, p *ds.PatientIntake) {
	log := s.log.WithField("session_id", p.SessionID)
	if s.handoff == nil {
		log.Info("intake completed, hand-off disabled")
		return
	}
	key, err := s.handoff.Publish(ctx, p)
	if err != nil {
		log.WithError(err).Error("intake hand-off failed")
		return
	}
	p.HandoffKey = key
	if err := s.save(ctx, p); err != nil {
		log.WithError(err).Warn("could not record hand-off key")
		return
	}
	log.WithField("key", key).Info("intake handed off")
}

func turn(p *ds.PatientIntake, reply string) Turn {
	symptoms := []string(p.Symptoms)
	if symptoms == nil {
		symptoms = []string{}
	}
	return Turn{SessionID: p.SessionID, Stage: p.Stage, Reply: reply, Symptoms: symptoms}
}
