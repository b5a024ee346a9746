package repository

import (
	"context"
	"fmt"

	"github.com/matrukan/tricog/internal/app/ds"
)

func (r *Repository) CreateIntake(ctx context.Context, p *ds.PatientIntake) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create intake: %w", err)
	}
	return nil
}

func (r *Repository) GetIntake(ctx context.Context, sessionID string) (*ds.PatientIntake, error) {
	var p ds.PatientIntake
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// ListIntakes returns all intakes, newest first.
func (r *Repository) ListIntakes(ctx context.Context) ([]ds.PatientIntake, error) {
	list := make([]ds.PatientIntake, 0)
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list intakes: %w", err)
	}
	return list, nil
}

// UpdateIntake writes p only if the stored version still equals p.Version,
// then bumps the version. Returns ErrStale when another writer won.
func (r *Repository) UpdateIntake(ctx context.Context, p *ds.PatientIntake) error {
	expected := p.Version
	p.Version = expected + 1
	res := r.db.WithContext(ctx).Model(p).
		Where("version = ?", expected).
		Select("*").Omit("session_id", "created_at").
		Updates(p)
	if res.Error != nil {
		p.Version = expected
		return fmt.Errorf("update intake %s: %w", p.SessionID, res.Error)
	}
	if res.RowsAffected == 0 {
		p.Version = expected
		return ErrStale
	}
	return nil
}
