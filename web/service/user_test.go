package service

import (
	"testing"

	"bibliophile/database"

	"github.com/stretchr/testify/assert"
)

func TestCreateAndCheckUser(t *testing.T) {
	setup(t)
	svc := UserService{}

	user, err := svc.CreateUser("alice@example.com", "alice", "correct horse")
	assert.NoError(t, err)
	assert.NotZero(t, user.Id)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	assert.NotNil(t, svc.CheckUser("alice", "correct horse"))
	assert.Nil(t, svc.CheckUser("alice", "wrong"))
	assert.Nil(t, svc.CheckUser("nobody", "correct horse"))
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	setup(t)
	svc := UserService{}

	_, err := svc.CreateUser("a@example.com", "alice", "pw")
	assert.NoError(t, err)

	_, err = svc.CreateUser("b@example.com", "alice", "pw")
	assert.Error(t, err)
	assert.True(t, database.IsConstraintViolation(err))
}

func TestResolveUserID(t *testing.T) {
	setup(t)
	svc := UserService{}
	user := mustCreateUser(t, "alice")

	byName, err := svc.ResolveUserID("alice")
	assert.NoError(t, err)
	assert.Equal(t, user.Id, byName)

	byId, err := svc.ResolveUserID("1")
	assert.NoError(t, err)
	assert.Equal(t, user.Id, byId)

	missing, err := svc.ResolveUserID("nobody")
	assert.NoError(t, err)
	assert.Zero(t, missing)
}

func TestGetUserProfileEmpty(t *testing.T) {
	setup(t)
	svc := UserService{}
	user := mustCreateUser(t, "alice")

	profile, err := svc.GetUserProfile(user.Id)
	assert.NoError(t, err)
	assert.NotNil(t, profile)
	assert.Equal(t, "alice", profile.Username)
	assert.Empty(t, profile.Booklists)
	assert.Empty(t, profile.Quotes)
	assert.Empty(t, profile.Reviews)

	missing, err := svc.GetUserProfile(9999)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGetUserProfileAggregates(t *testing.T) {
	setup(t)
	userSvc := UserService{}
	quoteSvc := QuoteService{}
	booklistSvc := BooklistService{}
	reviewSvc := ReviewService{}

	alice := mustCreateUser(t, "alice")
	bob := mustCreateUser(t, "bob")

	_, err := quoteSvc.AddQuote(alice.Id, "so many books, so little time")
	assert.NoError(t, err)
	_, err = booklistSvc.AddBooklist(alice.Id, "Favorites", nil)
	assert.NoError(t, err)
	_, err = reviewSvc.AddReview(newReview(alice.Id, "OL1M", 8))
	assert.NoError(t, err)

	// bob's content must not leak into alice's profile
	_, err = quoteSvc.AddQuote(bob.Id, "not hers")
	assert.NoError(t, err)

	profile, err := userSvc.GetUserProfile(alice.Id)
	assert.NoError(t, err)
	assert.NotNil(t, profile)
	assert.Equal(t, "alice", profile.Username)
	assert.Len(t, profile.Booklists, 1)
	assert.Len(t, profile.Quotes, 1)
	assert.Len(t, profile.Reviews, 1)
	assert.Equal(t, "alice", profile.Reviews[0].Username)
}

func TestDeleteUserCascades(t *testing.T) {
	setup(t)
	userSvc := UserService{}
	quoteSvc := QuoteService{}
	booklistSvc := BooklistService{}
	reviewSvc := ReviewService{}
	followerSvc := FollowerService{}

	alice := mustCreateUser(t, "alice")
	bob := mustCreateUser(t, "bob")

	_, err := quoteSvc.AddQuote(alice.Id, "so many books, so little time")
	assert.NoError(t, err)

	booklist, err := booklistSvc.AddBooklist(alice.Id, "Favorites", nil)
	assert.NoError(t, err)
	outcome, err := booklistSvc.AddBook(booklist.Id, alice.Id, "OL1M")
	assert.NoError(t, err)
	assert.Equal(t, OutcomeOK, outcome)

	_, err = reviewSvc.AddReview(newReview(alice.Id, "OL1M", 8))
	assert.NoError(t, err)

	assert.NoError(t, followerSvc.AddFollow(alice.Id, bob.Id))
	assert.NoError(t, followerSvc.AddFollow(bob.Id, alice.Id))

	deleted, err := userSvc.DeleteUser(alice.Id)
	assert.NoError(t, err)
	assert.True(t, deleted)

	quotes, err := quoteSvc.AllQuotes()
	assert.NoError(t, err)
	assert.Empty(t, quotes)

	booklists, err := booklistSvc.AllBooklists()
	assert.NoError(t, err)
	assert.Empty(t, booklists)

	reviews, err := reviewSvc.AllReviews()
	assert.NoError(t, err)
	assert.Empty(t, reviews)

	follows, err := followerSvc.AllFollows()
	assert.NoError(t, err)
	assert.Empty(t, follows)
}
