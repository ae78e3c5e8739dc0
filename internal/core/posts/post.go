package posts

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// Visibility is the access class of a post.
type Visibility string

const (
	// VisibilityPublic posts are readable by any authenticated viewer.
	VisibilityPublic Visibility = "public"

	// VisibilityFriends posts are readable only by mutual follows of the
	// author (and the author).
	VisibilityFriends Visibility = "friends"
)

// Valid reports whether v is a known visibility class.
func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityFriends
}

// Post is the stored form of a post. Counter columns are denormalized and
// maintained in the same transaction as their source rows.
type Post struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	AuthorID     uuid.UUID  `json:"authorId" db:"author_id"`
	Body         string     `json:"body" db:"body"`
	MediaKey     *string    `json:"-" db:"media_key"`
	Visibility   Visibility `json:"visibility" db:"visibility"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	ExpiresAt    time.Time  `json:"expiresAt" db:"expires_at"`
	SoftDeleted  bool       `json:"-" db:"soft_deleted"`
	ViewCount    int        `json:"viewCount" db:"view_count"`
	LikeCount    int        `json:"likeCount" db:"like_count"`
	CommentCount int        `json:"commentCount" db:"comment_count"`
}

// ViewerPost is a post row hydrated with the viewer-dependent fields the
// read queries join in (one round trip, no lazy loading).
type ViewerPost struct {
	Post
	AuthorDisplayName string `db:"author_display_name"`
	LikedByViewer     bool   `db:"liked_by_viewer"`
}

// PostView is the per-viewer projection served to clients. Stored fields
// plus viewer-dependent computations; never the storage entity itself.
type PostView struct {
	ID                uuid.UUID  `json:"id"`
	AuthorID          uuid.UUID  `json:"authorId"`
	AuthorDisplayName string     `json:"authorDisplayName"`
	Body              string     `json:"body"`
	MediaURL          *string    `json:"mediaUrl"`
	Visibility        Visibility `json:"visibility"`
	CreatedAt         time.Time  `json:"createdAt"`
	ExpiresAt         time.Time  `json:"expiresAt"`
	HoursRemaining    float64    `json:"hoursRemaining"`
	ViewCount         int        `json:"viewCount"`
	LikeCount         int        `json:"likeCount"`
	CommentCount      int        `json:"commentCount"`
	LikedByViewer     bool       `json:"likedByViewer"`
}

// CreatePostRequest is the input for creating a post. Media is optional;
// when present the bytes are streamed to the blob store before the row is
// inserted.
type CreatePostRequest struct {
	AuthorID   uuid.UUID
	Body       string
	Visibility Visibility
	Media      *MediaUpload
}

// MediaUpload describes an uploaded media file.
type MediaUpload struct {
	ContentType string
	Size        int64
	Data        io.Reader
}

// LikeResult reports the state after a like or unlike.
type LikeResult struct {
	Action    string `json:"action"`
	LikeCount int    `json:"likeCount"`
	Liked     bool   `json:"liked"`
}

// ViewResult reports the view counter after a record-view call.
type ViewResult struct {
	ViewCount int  `json:"viewCount"`
	Counted   bool `json:"counted"`
}
