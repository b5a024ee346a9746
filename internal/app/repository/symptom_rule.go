package repository

import (
	"context"
	"fmt"

	"github.com/matrukan/tricog/internal/app/ds"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *Repository) ListRules(ctx context.Context) ([]ds.SymptomRule, error) {
	rules := make([]ds.SymptomRule, 0)
	err := r.db.WithContext(ctx).Order("symptom ASC").Find(&rules).Error
	if err != nil {
		return nil, fmt.Errorf("list symptom rules: %w", err)
	}
	return rules, nil
}

// GetRule looks a rule up by key; the key is normalized first.
func (r *Repository) GetRule(ctx context.Context, symptom string) (ds.SymptomRule, error) {
	var rule ds.SymptomRule
	err := r.db.WithContext(ctx).Where("symptom = ?", ds.NormalizeSymptom(symptom)).First(&rule).Error
	if err != nil {
		return ds.SymptomRule{}, notFound(err)
	}
	return rule, nil
}

// Symptoms returns every known key in ascending order.
func (r *Repository) Symptoms(ctx context.Context) ([]string, error) {
	keys := make([]string, 0)
	err := r.db.WithContext(ctx).Model(&ds.SymptomRule{}).Order("symptom ASC").Pluck("symptom", &keys).Error
	if err != nil {
		return nil, fmt.Errorf("list symptom keys: %w", err)
	}
	return keys, nil
}

// Seed inserts every rule whose key is not stored yet and leaves existing
// rows untouched. The whole batch commits or rolls back as one unit.
func (r *Repository) Seed(ctx context.Context, rules []ds.SymptomRule) (int, error) {
	inserted := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seen := make(map[string]struct{}, len(rules))
		for _, rule := range rules {
			rule := ds.NewSymptomRule(rule.Symptom, rule.FollowUpQuestions...)
			if rule.Symptom == "" {
				continue
			}
			if _, dup := seen[rule.Symptom]; dup {
				continue
			}
			seen[rule.Symptom] = struct{}{}

			var count int64
			if err := tx.Model(&ds.SymptomRule{}).Where("symptom = ?", rule.Symptom).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			// a concurrent seeder may have inserted the key since the check
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rule)
			if res.Error != nil {
				return res.Error
			}
			inserted += int(res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("seed symptom rules: %w", err)
	}
	return inserted, nil
}

// SaveRule creates or replaces a rule. Administrative use only.
func (r *Repository) SaveRule(ctx context.Context, rule ds.SymptomRule) (ds.SymptomRule, error) {
	rule = ds.NewSymptomRule(rule.Symptom, rule.FollowUpQuestions...)
	if rule.Symptom == "" {
		return ds.SymptomRule{}, fmt.Errorf("save symptom rule: empty symptom")
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symptom"}},
		DoUpdates: clause.AssignmentColumns([]string{"follow_up_questions"}),
	}).Create(&rule).Error
	if err != nil {
		return ds.SymptomRule{}, fmt.Errorf("save symptom rule %q: %w", rule.Symptom, err)
	}
	return rule, nil
}
