// Package model defines the persistence entities of the bibliophile backend.
package model

// User owns booklists, quotes and reviews, and takes part in follow edges.
// The password hash never leaves the server.
type User struct {
	Id           int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Email        string `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Username     string `json:"username" gorm:"size:50;uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"size:255;not null"`
}

// Booklist is a named collection of external book ids. The list name is
// unique per owner, not globally.
type Booklist struct {
	Id              int     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserId          int     `json:"userId" gorm:"uniqueIndex:uq_listname_per_user;not null"`
	ListName        string  `json:"listName" gorm:"size:50;uniqueIndex:uq_listname_per_user;not null"`
	ListDescription *string `json:"listDescription" gorm:"size:255"`
	User            *User   `json:"-" gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

// BooklistBook is one entry of a booklist. The book id is an external
// catalog key (OpenLibrary), so there is no FK for it; the pair index keeps
// a book from appearing twice in the same list.
type BooklistBook struct {
	Id         int       `json:"id" gorm:"primaryKey;autoIncrement"`
	BooklistId int       `json:"booklistId" gorm:"uniqueIndex:uq_book_per_list;not null"`
	BookId     string    `json:"bookId" gorm:"size:32;uniqueIndex:uq_book_per_list;not null"`
	Booklist   *Booklist `json:"-" gorm:"foreignKey:BooklistId;constraint:OnDelete:CASCADE"`
}

type Quote struct {
	Id      int    `json:"id" gorm:"primaryKey;autoIncrement"`
	UserId  int    `json:"userId" gorm:"not null"`
	Content string `json:"content" gorm:"size:255;not null"`
	User    *User  `json:"-" gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

// Review rates an external book. Rate is validated to [0,10] at the route
// boundary before a row is ever written.
type Review struct {
	Id         int     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserId     int     `json:"userId" gorm:"not null"`
	BookId     string  `json:"bookId" gorm:"size:32;not null"`
	Content    *string `json:"content" gorm:"size:255"`
	Rate       int     `json:"rate" gorm:"not null"`
	Favorite   bool    `json:"favorite" gorm:"not null;default:false"`
	ReviewedAt Date    `json:"reviewedAt" gorm:"type:date;not null"`
	User       *User   `json:"-" gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

// Follow is a directed edge between two users. The pair index is the actual
// arbiter against duplicate follows; the service pre-check only exists to
// give a friendlier conflict message.
type Follow struct {
	Id         int   `json:"id" gorm:"primaryKey;autoIncrement"`
	FollowerId int   `json:"followerId" gorm:"uniqueIndex:uq_follow_pair;not null"`
	FolloweeId int   `json:"followeeId" gorm:"uniqueIndex:uq_follow_pair;not null"`
	Follower   *User `json:"-" gorm:"foreignKey:FollowerId;constraint:OnDelete:CASCADE"`
	Followee   *User `json:"-" gorm:"foreignKey:FolloweeId;constraint:OnDelete:CASCADE"`
}

// TableName keeps the table name the frontend-era schema used.
func (Follow) TableName() string {
	return "followers"
}
