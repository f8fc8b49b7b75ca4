package domain

import (
	"strings"
	"time"
)

// Profile is an aggregate root keyed by the owning user's id: at most one
// profile exists per user, and the lookup key is the upsert key.
type Profile struct {
	UserID         string       `bson:"_id" json:"user"`
	Company        string       `bson:"company,omitempty" json:"company,omitempty"`
	Website        string       `bson:"website,omitempty" json:"website,omitempty"`
	Location       string       `bson:"location,omitempty" json:"location,omitempty"`
	Status         string       `bson:"status" json:"status"`
	Skills         []string     `bson:"skills" json:"skills"`
	Bio            string       `bson:"bio,omitempty" json:"bio,omitempty"`
	GithubUsername string       `bson:"github_username,omitempty" json:"githubusername,omitempty"`
	Social         Social       `bson:"social" json:"social"`
	Experience     []Experience `bson:"experience" json:"experience"`
	Education      []Education  `bson:"education" json:"education"`
	CreatedAt      time.Time    `bson:"created_at" json:"createdAt"`
	Version        int64        `bson:"version" json:"-"`
}

type Social struct {
	Youtube   string `bson:"youtube,omitempty" json:"youtube,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Linkedin  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
}

type Experience struct {
	ID          string     `bson:"id" json:"id"`
	Title       string     `bson:"title" json:"title"`
	Company     string     `bson:"company" json:"company"`
	Location    string     `bson:"location,omitempty" json:"location,omitempty"`
	From        time.Time  `bson:"from" json:"from"`
	To          *time.Time `bson:"to,omitempty" json:"to,omitempty"`
	Current     bool       `bson:"current" json:"current"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
}

type Education struct {
	ID           string     `bson:"id" json:"id"`
	School       string     `bson:"school" json:"school"`
	Degree       string     `bson:"degree" json:"degree"`
	FieldOfStudy string     `bson:"field_of_study" json:"fieldofstudy"`
	From         time.Time  `bson:"from" json:"from"`
	To           *time.Time `bson:"to,omitempty" json:"to,omitempty"`
	Current      bool       `bson:"current" json:"current"`
	Description  string     `bson:"description,omitempty" json:"description,omitempty"`
}

// ProfileView joins a profile with the owner's public display fields. The
// owner fields are resolved by reference at read time, never duplicated into
// the stored profile.
type ProfileView struct {
	Profile
	Owner Owner `json:"owner"`
}

// SplitSkills normalizes a comma-delimited skills string: per-item trim,
// empty items dropped, order preserved, duplicates kept.
func SplitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
