package heat

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/products"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/shared/dberr"
)

const MaxRecommendations = 6

// Catalog is the part of the product store the quiz needs.
type Catalog interface {
	ListByScoville(ctx context.Context, min, max, limit int) ([]products.Product, error)
	ListNearestHeat(ctx context.Context, heatLevel, limit int, exclude []string) ([]products.Product, error)
}

type Service struct {
	db       *gorm.DB
	analyzer Analyzer
	catalog  Catalog
}

func NewService(db *gorm.DB, a Analyzer, c Catalog) *Service {
	return &Service{db: db, analyzer: a, catalog: c}
}

type Result struct {
	Profile         Profile            `json:"profile"`
	Recommendations []products.Product `json:"recommendations"`
}

// Analyze scores the answers, stores the profile (linked to userID when
// non-empty) and picks products in the profile's scoville range, topping up
// with the nearest heat levels.
func (s *Service) Analyze(ctx context.Context, userID string, a Answers) (Result, error) {
	if err := ValidateAnswers(a); err != nil {
		return Result{}, err
	}
	an, err := s.analyzer.Analyze(ctx, a)
	if err != nil {
		return Result{}, err
	}

	p := Profile{
		ID:          uuid.NewString(),
		Answers:     datatypes.NewJSONType(a),
		HeatLevel:   an.HeatLevel,
		Label:       an.Label,
		MinScoville: an.MinScoville,
		MaxScoville: an.MaxScoville,
		FlavorNotes: datatypes.NewJSONSlice(nonNil(an.FlavorNotes)),
		Summary:     an.Summary,
		Source:      an.Source,
		CreatedAt:   time.Now(),
	}
	if userID != "" {
		p.UserID = &userID
	}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return Result{}, err
	}

	recs, err := s.Recommend(ctx, p)
	if err != nil {
		return Result{}, err
	}
	return Result{Profile: p, Recommendations: recs}, nil
}

func (s *Service) Recommend(ctx context.Context, p Profile) ([]products.Product, error) {
	out, err := s.catalog.ListByScoville(ctx, p.MinScoville, p.MaxScoville, MaxRecommendations)
	if err != nil {
		return nil, err
	}
	if len(out) >= MaxRecommendations {
		return out[:MaxRecommendations], nil
	}

	exclude := make([]string, 0, len(out))
	for _, pr := range out {
		exclude = append(exclude, pr.ID)
	}
	// products use a 1..10 scale
	more, err := s.catalog.ListNearestHeat(ctx, p.HeatLevel*2, MaxRecommendations-len(out), exclude)
	if err != nil {
		return nil, err
	}
	return append(out, more...), nil
}

func (s *Service) Latest(ctx context.Context, userID string) (Profile, error) {
	var p Profile
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&p).Error
	if err != nil {
		if dberr.IsNotFound(err) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	return p, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
