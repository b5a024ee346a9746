package seed

import (
	"fmt"
	"os"

	"github.com/matrukan/tricog/internal/app/ds"

	"gopkg.in/yaml.v3"
)

type ruleFile struct {
	Rules []struct {
		Symptom           string   `yaml:"symptom"`
		FollowUpQuestions []string `yaml:"follow_up_questions"`
	} `yaml:"rules"`
}

// LoadFile reads rules from a YAML document of the form
//
//	rules:
//	  - symptom: chest pain
//	    follow_up_questions:
//	      - When did the chest pain start?
func LoadFile(path string) ([]ds.SymptomRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) ([]ds.SymptomRule, error) {
	var f ruleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}
	rules := make([]ds.SymptomRule, 0, len(f.Rules))
	for i, r := range f.Rules {
		rule := ds.NewSymptomRule(r.Symptom, r.FollowUpQuestions...)
		if rule.Symptom == "" {
			return nil, fmt.Errorf("parse rules file: rule %d has no symptom", i)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
