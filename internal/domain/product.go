package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review tags accepted on a Reddit review
const (
	TagPositive = "positive"
	TagNegative = "negative"
	TagNeutral  = "neutral"
)

const (
	MaxProductPhotos = 5
	MaxRedditReviews = 10
	DefaultScore     = 50
	MinScore         = 0
	MaxScore         = 100
)

// RedditReview is a quoted external review with a sentiment tag
type RedditReview struct {
	Comment   string `json:"comment" bson:"comment"`
	Tag       string `json:"tag" bson:"tag"`
	Link      string `json:"link" bson:"link"`
	Author    string `json:"author" bson:"author"`
	Subreddit string `json:"subreddit" bson:"subreddit"`
}

// Product represents a reviewed affiliate item
type Product struct {
	ID                primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title             string             `json:"productTitle" bson:"productTitle"`
	Description       string             `json:"productDescription" bson:"productDescription"`
	Photos            []string           `json:"productPhotos" bson:"productPhotos"`
	Price             string             `json:"productPrice" bson:"productPrice"`
	AffiliateLink     string             `json:"affiliateLink" bson:"affiliateLink"`
	AffiliateLinkText string             `json:"affiliateLinkText" bson:"affiliateLinkText"`
	Pros              []string           `json:"pros" bson:"pros"`
	Cons              []string           `json:"cons" bson:"cons"`
	RedditReviews     []RedditReview     `json:"redditReviews" bson:"redditReviews"`
	Score             int                `json:"productScore" bson:"productScore"`
	CreatedAt         time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt" bson:"updatedAt"`

	Likes `bson:",inline"`
}

// Likes holds the two parallel like sets of a product.
// LikeCount == len(LikedBy) and AnonymousLikeCount == len(AnonymousLikedBy) are kept by Toggle.
type Likes struct {
	LikeCount          int      `json:"likeCount" bson:"likeCount"`
	LikedBy            []string `json:"likedBy" bson:"likedBy"`
	AnonymousLikeCount int      `json:"anonymousLikeCount" bson:"anonymousLikeCount"`
	AnonymousLikedBy   []string `json:"anonymousLikedBy" bson:"anonymousLikedBy"`
}

// Normalize fills sets missing from older documents and clamps negative counts
func (l *Likes) Normalize() {
	if l.LikedBy == nil {
		l.LikedBy = []string{}
	}
	if l.AnonymousLikedBy == nil {
		l.AnonymousLikedBy = []string{}
	}
	if l.LikeCount < 0 {
		l.LikeCount = 0
	}
	if l.AnonymousLikeCount < 0 {
		l.AnonymousLikeCount = 0
	}
}

// Total is the displayed like count
func (l *Likes) Total() int {
	return l.LikeCount + l.AnonymousLikeCount
}

// Has reports whether id is in the set matching its kind
func (l *Likes) Has(id Identity) bool {
	set, _ := l.bucket(id)
	if set == nil {
		return false
	}
	return indexOf(*set, id.Key()) >= 0
}

// Toggle flips the membership of id and returns true when id now likes the product
func (l *Likes) Toggle(id Identity) bool {
	set, count := l.bucket(id)
	if set == nil {
		return false
	}

	if i := indexOf(*set, id.Key()); i >= 0 {
		*set = append((*set)[:i:i], (*set)[i+1:]...)
		*count--
		if *count < 0 {
			*count = 0
		}
		return false
	}

	*set = append(*set, id.Key())
	*count++
	return true
}

func (l *Likes) bucket(id Identity) (*[]string, *int) {
	switch id.Kind() {
	case IdentityAuthenticated:
		return &l.LikedBy, &l.LikeCount
	case IdentityAnonymous:
		return &l.AnonymousLikedBy, &l.AnonymousLikeCount
	default:
		return nil, nil
	}
}

func indexOf(set []string, key string) int {
	for i, v := range set {
		if v == key {
			return i
		}
	}
	return -1
}
