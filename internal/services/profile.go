package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/internal/platform/apierr"
	"github.com/devconnect/devconnect-backend/internal/platform/logger"
	"github.com/devconnect/devconnect-backend/internal/store"
)

// ProfileCache caches the public profile directory. Implementations must be
// safe for concurrent use; a nil cache disables caching.
type ProfileCache interface {
	GetDirectory(ctx context.Context) ([]domain.ProfileView, bool)
	SetDirectory(ctx context.Context, views []domain.ProfileView)
	Invalidate(ctx context.Context)
}

// ProfileInput carries the upsert fields. Empty optional fields are treated
// as omitted and leave existing values untouched.
type ProfileInput struct {
	Status         string
	Skills         string
	Company        string
	Website        string
	Location       string
	Bio            string
	GithubUsername string
	Youtube        string
	Twitter        string
	Facebook       string
	Linkedin       string
	Instagram      string
}

type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

type ProfileService interface {
	Upsert(ctx context.Context, uid string, input ProfileInput) (*domain.Profile, error)
	GetOwn(ctx context.Context, uid string) (*domain.ProfileView, error)
	ListAll(ctx context.Context) ([]domain.ProfileView, error)
	GetByUserID(ctx context.Context, userID string) (*domain.ProfileView, error)
	Delete(ctx context.Context, uid string) error
	AddExperience(ctx context.Context, uid string, input ExperienceInput) (*domain.Profile, error)
	RemoveExperience(ctx context.Context, uid, expID string) (*domain.Profile, error)
	AddEducation(ctx context.Context, uid string, input EducationInput) (*domain.Profile, error)
	RemoveEducation(ctx context.Context, uid, eduID string) (*domain.Profile, error)
}

type profileService struct {
	log      *logger.Logger
	profiles store.ProfileStore
	posts    store.PostStore
	users    store.UserStore
	cache    ProfileCache
}

func NewProfileService(log *logger.Logger, profiles store.ProfileStore, posts store.PostStore, users store.UserStore, cache ProfileCache) ProfileService {
	serviceLog := log.With("service", "ProfileService")
	return &profileService{log: serviceLog, profiles: profiles, posts: posts, users: users, cache: cache}
}

func (s *profileService) Upsert(ctx context.Context, uid string, input ProfileInput) (*domain.Profile, error) {
	if strings.TrimSpace(input.Status) == "" {
		return nil, apierr.Invalid("status_required", errors.New("status is required"))
	}
	skills := domain.SplitSkills(input.Skills)
	if len(skills) == 0 {
		return nil, apierr.Invalid("skills_required", errors.New("skills is required"))
	}

	var profile *domain.Profile
	for attempt := 0; attempt < saveAttempts; attempt++ {
		existing, err := s.profiles.Load(ctx, uid)
		switch {
		case errors.Is(err, store.ErrNotFound):
			profile = &domain.Profile{
				UserID:     uid,
				Skills:     []string{},
				Experience: []domain.Experience{},
				Education:  []domain.Education{},
				CreatedAt:  time.Now().UTC(),
			}
		case err != nil:
			return nil, apierr.Internal("store_fault", err)
		default:
			profile = existing
		}

		profile.Status = input.Status
		profile.Skills = skills
		mergeField(&profile.Company, input.Company)
		mergeField(&profile.Website, input.Website)
		mergeField(&profile.Location, input.Location)
		mergeField(&profile.Bio, input.Bio)
		mergeField(&profile.GithubUsername, input.GithubUsername)
		mergeField(&profile.Social.Youtube, input.Youtube)
		mergeField(&profile.Social.Twitter, input.Twitter)
		mergeField(&profile.Social.Facebook, input.Facebook)
		mergeField(&profile.Social.Linkedin, input.Linkedin)
		mergeField(&profile.Social.Instagram, input.Instagram)

		err = s.profiles.Save(ctx, profile)
		if errors.Is(err, store.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, apierr.Internal("store_fault", err)
		}
		s.invalidate(ctx)
		return profile, nil
	}
	return nil, apierr.Internal("save_contention", store.ErrVersionConflict)
}

func (s *profileService) GetOwn(ctx context.Context, uid string) (*domain.ProfileView, error) {
	return s.getView(ctx, uid)
}

func (s *profileService) GetByUserID(ctx context.Context, userID string) (*domain.ProfileView, error) {
	return s.getView(ctx, userID)
}

func (s *profileService) ListAll(ctx context.Context) ([]domain.ProfileView, error) {
	if s.cache != nil {
		if views, ok := s.cache.GetDirectory(ctx); ok {
			return views, nil
		}
	}

	profiles, err := s.profiles.LoadAll(ctx)
	if err != nil {
		return nil, apierr.Internal("store_fault", err)
	}
	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}
	owners, err := s.users.LoadDisplay(ctx, ids)
	if err != nil {
		return nil, apierr.Internal("store_fault", err)
	}

	views := make([]domain.ProfileView, 0, len(profiles))
	for _, p := range profiles {
		views = append(views, domain.ProfileView{Profile: *p, Owner: owners[p.UserID]})
	}
	if s.cache != nil {
		s.cache.SetDirectory(ctx, views)
	}
	return views, nil
}

// Delete removes the caller's content in dependency order: posts first, then
// the profile, then the user record. A caller without a profile still gets
// their posts and user record removed.
func (s *profileService) Delete(ctx context.Context, uid string) error {
	if err := s.posts.DeleteByAuthor(ctx, uid); err != nil {
		return apierr.Internal("store_fault", err)
	}
	if err := s.profiles.Delete(ctx, uid); err != nil && !errors.Is(err, store.ErrNotFound) {
		return apierr.Internal("store_fault", err)
	}
	if err := s.users.Delete(ctx, uid); err != nil && !errors.Is(err, store.ErrNotFound) {
		return apierr.Internal("store_fault", err)
	}
	s.invalidate(ctx)
	s.log.Info("account deleted", "user_id", uid)
	return nil
}

func (s *profileService) AddExperience(ctx context.Context, uid string, input ExperienceInput) (*domain.Profile, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apierr.Invalid("title_required", errors.New("title is required"))
	}
	if strings.TrimSpace(input.Company) == "" {
		return nil, apierr.Invalid("company_required", errors.New("company is required"))
	}
	if input.From.IsZero() {
		return nil, apierr.Invalid("from_required", errors.New("from date is required"))
	}

	entry := domain.Experience{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Company:     input.Company,
		Location:    input.Location,
		From:        input.From,
		To:          input.To,
		Current:     input.Current,
		Description: input.Description,
	}
	return s.mutate(ctx, uid, func(profile *domain.Profile) error {
		profile.Experience = append([]domain.Experience{entry}, profile.Experience...)
		return nil
	})
}

// RemoveExperience filters the entry out by id. Matching nothing is not an
// error: deletion is a set difference, not an existence-checked delete.
func (s *profileService) RemoveExperience(ctx context.Context, uid, expID string) (*domain.Profile, error) {
	return s.mutate(ctx, uid, func(profile *domain.Profile) error {
		entries := make([]domain.Experience, 0, len(profile.Experience))
		for _, e := range profile.Experience {
			if e.ID != expID {
				entries = append(entries, e)
			}
		}
		profile.Experience = entries
		return nil
	})
}

func (s *profileService) AddEducation(ctx context.Context, uid string, input EducationInput) (*domain.Profile, error) {
	if strings.TrimSpace(input.School) == "" {
		return nil, apierr.Invalid("school_required", errors.New("school is required"))
	}
	if strings.TrimSpace(input.Degree) == "" {
		return nil, apierr.Invalid("degree_required", errors.New("degree is required"))
	}
	if strings.TrimSpace(input.FieldOfStudy) == "" {
		return nil, apierr.Invalid("field_of_study_required", errors.New("field of study is required"))
	}
	if input.From.IsZero() {
		return nil, apierr.Invalid("from_required", errors.New("from date is required"))
	}

	entry := domain.Education{
		ID:           uuid.NewString(),
		School:       input.School,
		Degree:       input.Degree,
		FieldOfStudy: input.FieldOfStudy,
		From:         input.From,
		To:           input.To,
		Current:      input.Current,
		Description:  input.Description,
	}
	return s.mutate(ctx, uid, func(profile *domain.Profile) error {
		profile.Education = append([]domain.Education{entry}, profile.Education...)
		return nil
	})
}

func (s *profileService) RemoveEducation(ctx context.Context, uid, eduID string) (*domain.Profile, error) {
	return s.mutate(ctx, uid, func(profile *domain.Profile) error {
		entries := make([]domain.Education, 0, len(profile.Education))
		for _, e := range profile.Education {
			if e.ID != eduID {
				entries = append(entries, e)
			}
		}
		profile.Education = entries
		return nil
	})
}

func (s *profileService) getView(ctx context.Context, userID string) (*domain.ProfileView, error) {
	profile, err := s.profiles.Load(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apierr.NotFound("profile_not_found", errors.New("profile not found"))
		}
		return nil, apierr.Internal("store_fault", err)
	}
	owners, err := s.users.LoadDisplay(ctx, []string{userID})
	if err != nil {
		return nil, apierr.Internal("store_fault", err)
	}
	return &domain.ProfileView{Profile: *profile, Owner: owners[userID]}, nil
}

func (s *profileService) mutate(ctx context.Context, uid string, fn func(*domain.Profile) error) (*domain.Profile, error) {
	for attempt := 0; attempt < saveAttempts; attempt++ {
		profile, err := s.profiles.Load(ctx, uid)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, apierr.NotFound("profile_not_found", errors.New("profile not found"))
			}
			return nil, apierr.Internal("store_fault", err)
		}
		if err := fn(profile); err != nil {
			return nil, err
		}
		err = s.profiles.Save(ctx, profile)
		if errors.Is(err, store.ErrVersionConflict) {
			s.log.Debug("profile save conflicted, retrying", "user_id", uid, "attempt", attempt+1)
			continue
		}
		if err != nil {
			return nil, apierr.Internal("store_fault", err)
		}
		s.invalidate(ctx)
		return profile, nil
	}
	return nil, apierr.Internal("save_contention", store.ErrVersionConflict)
}

func (s *profileService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

func mergeField(dst *string, src string) {
	if strings.TrimSpace(src) != "" {
		*dst = src
	}
}
