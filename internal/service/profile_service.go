package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"devconnector/internal/cache"
	apperrors "devconnector/internal/errors"
	"devconnector/internal/model"
	"devconnector/internal/repository"
)

// ProfileInput carries the editable profile fields. Skills is a comma
// separated list.
type ProfileInput struct {
	Company        string
	Website        string
	Location       string
	Status         string
	Skills         string
	Bio            string
	GitHubUsername string
	Social         model.Social
}

// ProfileService manages developer profiles and account removal.
type ProfileService interface {
	GetCurrent(ctx context.Context, userID string) (*model.Profile, error)
	Upsert(ctx context.Context, userID string, in ProfileInput) (*model.Profile, error)
	List(ctx context.Context) ([]model.Profile, error)
	GetByUserID(ctx context.Context, userID string) (*model.Profile, error)
	DeleteAccount(ctx context.Context, userID string) error
	AddExperience(ctx context.Context, userID string, exp model.Experience) (*model.Profile, error)
	RemoveExperience(ctx context.Context, userID, expID string) (*model.Profile, error)
	AddEducation(ctx context.Context, userID string, edu model.Education) (*model.Profile, error)
	RemoveEducation(ctx context.Context, userID, eduID string) (*model.Profile, error)
}

type profileService struct {
	repo   repository.ProfileRepository
	cache  *cache.Client
	logger *slog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(repo repository.ProfileRepository, cache *cache.Client, logger *slog.Logger) ProfileService {
	return &profileService{repo: repo, cache: cache, logger: logger}
}

func (s *profileService) GetCurrent(ctx context.Context, userID string) (*model.Profile, error) {
	return s.find(ctx, userID)
}

// Upsert creates the user's profile or overwrites the fields present in in.
func (s *profileService) Upsert(ctx context.Context, userID string, in ProfileInput) (*model.Profile, error) {
	profile, err := s.find(ctx, userID)
	created := false
	switch {
	case errors.Is(err, apperrors.ErrProfileNotFound):
		profile = &model.Profile{UserID: userID}
		created = true
	case err != nil:
		return nil, err
	}

	applyProfileInput(profile, in)

	if created {
		err = s.repo.Create(ctx, profile)
	} else {
		err = s.repo.Save(ctx, profile)
	}
	if err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return s.find(ctx, userID)
}

func applyProfileInput(p *model.Profile, in ProfileInput) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&p.Company, in.Company)
	set(&p.Website, in.Website)
	set(&p.Location, in.Location)
	set(&p.Status, in.Status)
	set(&p.Bio, in.Bio)
	set(&p.GitHubUsername, in.GitHubUsername)
	set(&p.Social.YouTube, in.Social.YouTube)
	set(&p.Social.Twitter, in.Social.Twitter)
	set(&p.Social.Facebook, in.Social.Facebook)
	set(&p.Social.LinkedIn, in.Social.LinkedIn)
	set(&p.Social.Instagram, in.Social.Instagram)
	if skills := SplitSkills(in.Skills); len(skills) > 0 {
		p.Skills = skills
	}
}

// SplitSkills splits a comma separated skill list, dropping blanks.
func SplitSkills(raw string) []string {
	skills := []string{}
	for _, skill := range strings.Split(raw, ",") {
		if skill = strings.TrimSpace(skill); skill != "" {
			skills = append(skills, skill)
		}
	}
	return skills
}

func (s *profileService) List(ctx context.Context) ([]model.Profile, error) {
	profiles, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return profiles, nil
}

// GetByUserID returns a user's profile; a malformed id is reported as no profile.
func (s *profileService) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, apperrors.ErrProfileNotFound
	}
	return s.find(ctx, userID)
}

// DeleteAccount removes the user together with their profile and posts and
// evicts their cached entries.
func (s *profileService) DeleteAccount(ctx context.Context, userID string) error {
	postIDs, err := s.repo.DeleteAccount(ctx, userID)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	keys := []string{userCacheKey(userID)}
	for _, id := range postIDs {
		keys = append(keys, postCacheKey(id))
	}
	_ = s.cache.Delete(ctx, keys...)
	s.logger.InfoContext(ctx, "account deleted", slog.String("user_id", userID))
	return nil
}

func (s *profileService) AddExperience(ctx context.Context, userID string, exp model.Experience) (*model.Profile, error) {
	profile, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	exp.ID = uuid.NewString()
	profile.Experience = append([]model.Experience{exp}, profile.Experience...)
	if err := s.repo.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) RemoveExperience(ctx context.Context, userID, expID string) (*model.Profile, error) {
	profile, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, exp := range profile.Experience {
		if exp.ID == expID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperrors.ErrExperienceNotFound
	}
	profile.Experience = append(profile.Experience[:idx], profile.Experience[idx+1:]...)
	if err := s.repo.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) AddEducation(ctx context.Context, userID string, edu model.Education) (*model.Profile, error) {
	profile, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	edu.ID = uuid.NewString()
	profile.Education = append([]model.Education{edu}, profile.Education...)
	if err := s.repo.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) RemoveEducation(ctx context.Context, userID, eduID string) (*model.Profile, error) {
	profile, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, edu := range profile.Education {
		if edu.ID == eduID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperrors.ErrEducationNotFound
	}
	profile.Education = append(profile.Education[:idx], profile.Education[idx+1:]...)
	if err := s.repo.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) find(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return profile, nil
}
