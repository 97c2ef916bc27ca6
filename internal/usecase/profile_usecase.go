package usecase

import (
	"context"
	"strings"
	"time"

	"siso/internal/domain/entity"
	"siso/internal/domain/repository"
	"siso/pkg/errors"
	"siso/pkg/logger"
)

const minUsernameLength = 3

type ProfileUseCase struct {
	musicianRepo repository.MusicianRepository
	uploadRepo   repository.UploadRepository
	identity     IdentityProvider
	now          func() time.Time
}

func NewProfileUseCase(musicianRepo repository.MusicianRepository, uploadRepo repository.UploadRepository, identity IdentityProvider) *ProfileUseCase {
	return &ProfileUseCase{
		musicianRepo: musicianRepo,
		uploadRepo:   uploadRepo,
		identity:     identity,
		now:          time.Now,
	}
}

// UpdateProfileInput carries a partial update. Empty fields are left as they
// are; list fields are comma separated.
type UpdateProfileInput struct {
	FullName    string
	Location    string
	Bio         string
	Genres      string
	Skills      string
	Experience  string
	Influences  string
	SpotifyLink string
	YoutubeLink string
}

type MeView struct {
	User    *entity.CurrentUser `json:"user"`
	Profile *entity.Musician    `json:"profile,omitempty"`
}

type PublicProfile struct {
	Profile *entity.Musician       `json:"profile"`
	Uploads []*entity.UploadRecord `json:"uploads"`
}

func (uc *ProfileUseCase) GetMe(ctx context.Context, userID string) (*MeView, error) {
	user, err := uc.identity.GetCurrentUser(ctx, userID)
	if err != nil {
		return nil, errors.Unauthorized("Unable to resolve current user", err)
	}

	profile, err := uc.musicianRepo.GetByID(ctx, userID)
	if err != nil && !errors.Is(err, errors.CodeNotFound) {
		return nil, err
	}

	return &MeView{User: user, Profile: profile}, nil
}

func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.Musician, error) {
	existing, err := uc.musicianRepo.GetByID(ctx, userID)
	if err != nil && !errors.Is(err, errors.CodeNotFound) {
		return nil, err
	}

	update := &entity.Musician{
		ID:          userID,
		FullName:    strings.TrimSpace(input.FullName),
		Location:    strings.TrimSpace(input.Location),
		Bio:         strings.TrimSpace(input.Bio),
		Genres:      splitList(input.Genres),
		Skills:      splitList(input.Skills),
		Experience:  strings.TrimSpace(input.Experience),
		Influences:  splitList(input.Influences),
		SpotifyLink: strings.TrimSpace(input.SpotifyLink),
		YoutubeLink: strings.TrimSpace(input.YoutubeLink),
		UpdatedAt:   uc.now().UTC(),
	}
	if existing == nil {
		update.CreatedAt = update.UpdatedAt
		if user, err := uc.identity.GetCurrentUser(ctx, userID); err == nil {
			update.Email = user.Email
		}
	}

	if err := uc.musicianRepo.Merge(ctx, update); err != nil {
		return nil, err
	}

	if update.FullName != "" && (existing == nil || existing.FullName != update.FullName) {
		if err := uc.identity.UpdateDisplayName(ctx, userID, update.FullName); err != nil {
			logger.Warn("Failed to update display name for %s: %v", userID, err)
		}
	}

	return uc.musicianRepo.GetByID(ctx, userID)
}

func (uc *ProfileUseCase) UpdateUsername(ctx context.Context, userID, username string) (*entity.Musician, error) {
	username = strings.TrimSpace(username)
	if len([]rune(username)) < minUsernameLength {
		return nil, errors.Validation("Username must be at least 3 characters long")
	}

	update := &entity.Musician{
		ID:        userID,
		Username:  username,
		UpdatedAt: uc.now().UTC(),
	}
	if err := uc.musicianRepo.Merge(ctx, update); err != nil {
		return nil, err
	}

	if err := uc.identity.UpdateDisplayName(ctx, userID, username); err != nil {
		return nil, errors.Internal("Failed to update display name", err)
	}

	return uc.musicianRepo.GetByID(ctx, userID)
}

func (uc *ProfileUseCase) GetPublicProfile(ctx context.Context, userID string, uploadLimit int) (*PublicProfile, error) {
	profile, err := uc.musicianRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.Role = ""

	uploads, _, err := uc.uploadRepo.ListByOwner(ctx, userID, uploadLimit, 0)
	if err != nil {
		return nil, err
	}
	if uploads == nil {
		uploads = []*entity.UploadRecord{}
	}

	return &PublicProfile{Profile: profile, Uploads: uploads}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
