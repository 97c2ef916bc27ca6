package entity

import (
	"time"
)

type Musician struct {
	ID          string   `json:"id" firestore:"id"`
	Email       string   `json:"email" firestore:"email"`
	Username    string   `json:"username,omitempty" firestore:"username,omitempty"`
	FullName    string   `json:"full_name,omitempty" firestore:"fullName,omitempty"`
	Location    string   `json:"location,omitempty" firestore:"location,omitempty"`
	Bio         string   `json:"bio,omitempty" firestore:"bio,omitempty"`
	Genres      []string `json:"genres,omitempty" firestore:"genres,omitempty"`
	Skills      []string `json:"skills,omitempty" firestore:"skills,omitempty"`
	Experience  string   `json:"experience,omitempty" firestore:"experience,omitempty"`
	Influences  []string `json:"influences,omitempty" firestore:"influences,omitempty"`
	SpotifyLink string   `json:"spotify_link,omitempty" firestore:"spotifyLink,omitempty"`
	YoutubeLink string   `json:"youtube_link,omitempty" firestore:"youtubeLink,omitempty"`
	Role        string   `json:"role,omitempty" firestore:"role,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (m *Musician) IsAdmin() bool {
	return m.Role == "admin"
}

// CurrentUser is the identity provider's view of the caller.
type CurrentUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}
