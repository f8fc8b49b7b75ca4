package domain

import "time"

// Post is an aggregate root: the post itself plus its ordered likes and
// comments, persisted and loaded as one unit.
type Post struct {
	ID           string    `bson:"_id" json:"id"`
	Text         string    `bson:"text" json:"text"`
	AuthorID     string    `bson:"author_id" json:"user"`
	AuthorName   string    `bson:"author_name" json:"name"`
	AuthorAvatar string    `bson:"author_avatar" json:"avatar"`
	Likes        []Like    `bson:"likes" json:"likes"`
	Comments     []Comment `bson:"comments" json:"comments"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	Version      int64     `bson:"version" json:"-"`
}

// Like is keyed by user: a given UserID appears at most once in Post.Likes.
// Insertion order is preserved, newest first.
type Like struct {
	UserID string `bson:"user_id" json:"user"`
}

type Comment struct {
	ID           string    `bson:"id" json:"id"`
	Text         string    `bson:"text" json:"text"`
	AuthorID     string    `bson:"author_id" json:"user"`
	AuthorName   string    `bson:"author_name" json:"name"`
	AuthorAvatar string    `bson:"author_avatar" json:"avatar"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}

// Liked reports whether userID currently holds a like on the post.
func (p *Post) Liked(userID string) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// FindComment returns the comment with the given id, or nil.
func (p *Post) FindComment(commentID string) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			return &p.Comments[i]
		}
	}
	return nil
}
