package service

import (
	"context"
	"strings"
	"time"

	"devhub/internal/models"
	"devhub/internal/repository"
	"devhub/internal/validation"
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

// UpsertProfileInput uses pointers so an omitted field can be told apart
// from one sent empty.
type UpsertProfileInput struct {
	UserID         uint    `json:"-"`
	Status         *string `json:"status"`
	Skills         *string `json:"skills"`
	Company        *string `json:"company"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	Bio            *string `json:"bio"`
	GitHubUsername *string `json:"githubusername"`
	YouTube        *string `json:"youtube"`
	Twitter        *string `json:"twitter"`
	Facebook       *string `json:"facebook"`
	LinkedIn       *string `json:"linkedin"`
	Instagram      *string `json:"instagram"`
}

type ExperienceInput struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type EducationInput struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, userRepo: userRepo}
}

// Upsert creates the caller's profile or merges the supplied fields into it.
func (s *ProfileService) Upsert(ctx context.Context, in UpsertProfileInput) (*models.Profile, error) {
	existing, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	if err != nil && !models.IsCode(err, models.CodeNotFound) {
		return nil, err
	}
	creating := existing == nil

	var v validation.Errors
	if creating || in.Status != nil {
		v.Required("status", deref(in.Status), "status is required")
	}
	var skills []string
	if creating || in.Skills != nil {
		skills = validation.SplitSkills(deref(in.Skills))
		if len(skills) == 0 {
			v.Add("skills", "skills are required")
		}
	}
	if in.GitHubUsername != nil && strings.TrimSpace(*in.GitHubUsername) != "" {
		if err := validation.ValidateGitHubUsername(strings.TrimSpace(*in.GitHubUsername)); err != nil {
			v.Add("githubusername", err.Error())
		}
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	profile := existing
	if creating {
		if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
			return nil, err
		}
		profile = &models.Profile{UserID: in.UserID}
	}

	applyProfileFields(profile, in, skills)

	if creating {
		err = s.profileRepo.Create(ctx, profile)
		if models.IsCode(err, models.CodeConflict) {
			// A concurrent first submission created the row; merge into it.
			err = s.mergeInto(ctx, in, skills)
		}
	} else {
		err = s.profileRepo.Update(ctx, profile)
	}
	if err != nil {
		return nil, err
	}

	return s.profileRepo.GetByUserID(ctx, in.UserID)
}

func (s *ProfileService) mergeInto(ctx context.Context, in UpsertProfileInput, skills []string) error {
	profile, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	if err != nil {
		return err
	}
	applyProfileFields(profile, in, skills)
	return s.profileRepo.Update(ctx, profile)
}

func applyProfileFields(p *models.Profile, in UpsertProfileInput, skills []string) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}

	set(&p.Status, in.Status)
	set(&p.Company, in.Company)
	set(&p.Website, in.Website)
	set(&p.Location, in.Location)
	set(&p.Bio, in.Bio)
	set(&p.GitHubUsername, in.GitHubUsername)
	if in.Skills != nil {
		p.Skills = skills
	}

	set(&p.Social.YouTube, in.YouTube)
	set(&p.Social.Twitter, in.Twitter)
	set(&p.Social.Facebook, in.Facebook)
	set(&p.Social.LinkedIn, in.LinkedIn)
	set(&p.Social.Instagram, in.Instagram)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Mine returns the caller's profile.
func (s *ProfileService) Mine(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if models.IsCode(err, models.CodeNotFound) {
		return nil, models.NewNotFoundError("There is no profile for this user")
	}
	return profile, err
}

// ByUser returns any user's profile for public viewing.
func (s *ProfileService) ByUser(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserIDCached(ctx, userID)
}

func (s *ProfileService) List(ctx context.Context, limit, offset int) ([]*models.Profile, error) {
	return s.profileRepo.List(ctx, limit, offset)
}

// AddExperience prepends an entry to the caller's profile.
func (s *ProfileService) AddExperience(ctx context.Context, userID uint, in ExperienceInput) (*models.Profile, error) {
	var v validation.Errors
	v.Required("title", in.Title, "title is required")
	v.Required("company", in.Company, "company is required")
	from, to := parseRange(&v, in.From, in.To)
	if err := v.Err(); err != nil {
		return nil, err
	}

	profile, err := s.Mine(ctx, userID)
	if err != nil {
		return nil, err
	}

	exp := &models.Experience{
		Title:       strings.TrimSpace(in.Title),
		Company:     strings.TrimSpace(in.Company),
		Location:    strings.TrimSpace(in.Location),
		From:        from,
		To:          to,
		Current:     in.Current,
		Description: in.Description,
	}
	if err := s.profileRepo.AddExperience(ctx, profile, exp); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

func (s *ProfileService) DeleteExperience(ctx context.Context, userID, expID uint) (*models.Profile, error) {
	profile, err := s.Mine(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.DeleteExperience(ctx, profile, expID); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

// AddEducation prepends an entry to the caller's profile.
func (s *ProfileService) AddEducation(ctx context.Context, userID uint, in EducationInput) (*models.Profile, error) {
	var v validation.Errors
	v.Required("school", in.School, "school is required")
	v.Required("degree", in.Degree, "degree is required")
	v.Required("fieldofstudy", in.FieldOfStudy, "fieldofstudy is required")
	from, to := parseRange(&v, in.From, in.To)
	if err := v.Err(); err != nil {
		return nil, err
	}

	profile, err := s.Mine(ctx, userID)
	if err != nil {
		return nil, err
	}

	edu := &models.Education{
		School:       strings.TrimSpace(in.School),
		Degree:       strings.TrimSpace(in.Degree),
		FieldOfStudy: strings.TrimSpace(in.FieldOfStudy),
		From:         from,
		To:           to,
		Current:      in.Current,
		Description:  in.Description,
	}
	if err := s.profileRepo.AddEducation(ctx, profile, edu); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

func (s *ProfileService) DeleteEducation(ctx context.Context, userID, eduID uint) (*models.Profile, error) {
	profile, err := s.Mine(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.DeleteEducation(ctx, profile, eduID); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

// DeleteAccount removes the user with their profile and posts.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID uint) error {
	return s.profileRepo.DeleteAccount(ctx, userID)
}

func parseRange(v *validation.Errors, fromRaw, toRaw string) (time.Time, *time.Time) {
	var from time.Time
	if strings.TrimSpace(fromRaw) == "" {
		v.Add("from", "from is required")
	} else if parsed, err := validation.ParseDate(fromRaw); err != nil {
		v.Add("from", "from must be a date (YYYY-MM-DD)")
	} else {
		from = parsed
	}

	if strings.TrimSpace(toRaw) == "" {
		return from, nil
	}
	to, err := validation.ParseDate(toRaw)
	if err != nil {
		v.Add("to", "to must be a date (YYYY-MM-DD)")
		return from, nil
	}
	return from, &to
}
