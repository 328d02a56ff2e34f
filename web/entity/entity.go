// Package entity defines the JSON shapes shared between services and the
// route layer.
package entity

import (
	"bibliophile/database/model"
)

// Msg is the uniform response body: every failure carries a human-readable
// message, successes may carry one too.
type Msg struct {
	Message string `json:"message"`
}

// Review is a review row denormalized with its author's username; reviews
// are always displayed with an author name, never a bare user id.
type Review struct {
	Id         int        `json:"id"`
	BookId     string     `json:"bookId"`
	Username   string     `json:"username"`
	Content    *string    `json:"content"`
	Rate       int        `json:"rate"`
	Favorite   bool       `json:"favorite"`
	ReviewedAt model.Date `json:"reviewedAt"`
}

// BooklistWithBooks is a booklist plus the ordered book ids it contains.
type BooklistWithBooks struct {
	Id              int      `json:"id"`
	UserId          int      `json:"userId"`
	ListName        string   `json:"listName"`
	ListDescription *string  `json:"listDescription"`
	Books           []string `json:"books"`
}

// UserProfile aggregates everything shown on a profile page. The slices are
// empty, never nil, for a user with no content.
type UserProfile struct {
	Id        int              `json:"id"`
	Username  string           `json:"username"`
	Booklists []model.Booklist `json:"booklists"`
	Quotes    []model.Quote    `json:"quotes"`
	Reviews   []Review         `json:"reviews"`
}
