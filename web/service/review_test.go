package service

import (
	"testing"
	"time"

	"bibliophile/database/model"

	"github.com/stretchr/testify/assert"
)

func newReview(userId int, bookId string, rate int) *model.Review {
	return &model.Review{
		UserId:     userId,
		BookId:     bookId,
		Rate:       rate,
		Favorite:   true,
		ReviewedAt: model.NewDate(2024, time.January, 1),
	}
}

func TestAddReviewCarriesUsername(t *testing.T) {
	setup(t)
	svc := ReviewService{}
	bob := mustCreateUser(t, "bob")

	created, err := svc.AddReview(newReview(bob.Id, "OL1M", 8))
	assert.NoError(t, err)
	assert.NotZero(t, created.Id)
	assert.Equal(t, "bob", created.Username)
	assert.Equal(t, "OL1M", created.BookId)
	assert.Equal(t, 8, created.Rate)
	assert.True(t, created.Favorite)
	assert.Equal(t, "2024-01-01", created.ReviewedAt.String())
}

func TestReviewLookups(t *testing.T) {
	setup(t)
	svc := ReviewService{}
	alice := mustCreateUser(t, "alice")
	bob := mustCreateUser(t, "bob")

	created, err := svc.AddReview(newReview(bob.Id, "OL1M", 8))
	assert.NoError(t, err)
	_, err = svc.AddReview(newReview(alice.Id, "OL2M", 5))
	assert.NoError(t, err)

	byId, err := svc.GetReview(created.Id)
	assert.NoError(t, err)
	assert.NotNil(t, byId)
	assert.Equal(t, "bob", byId.Username)

	missing, err := svc.GetReview(9999)
	assert.NoError(t, err)
	assert.Nil(t, missing)

	byBook, err := svc.ReviewsByBook("OL1M")
	assert.NoError(t, err)
	assert.Len(t, byBook, 1)
	assert.Equal(t, "bob", byBook[0].Username)

	byUser, err := svc.ReviewsByUser(alice.Id)
	assert.NoError(t, err)
	assert.Len(t, byUser, 1)
	assert.Equal(t, "OL2M", byUser[0].BookId)

	all, err := svc.AllReviews()
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateReviewOwnership(t *testing.T) {
	setup(t)
	svc := ReviewService{}
	alice := mustCreateUser(t, "alice")
	bob := mustCreateUser(t, "bob")

	created, err := svc.AddReview(newReview(bob.Id, "OL1M", 8))
	assert.NoError(t, err)

	outcome, err := svc.UpdateReview(created.Id, alice.Id, newReview(alice.Id, "OL1M", 2))
	assert.NoError(t, err)
	assert.Equal(t, OutcomeForbidden, outcome)

	outcome, err = svc.UpdateReview(9999, bob.Id, newReview(bob.Id, "OL1M", 2))
	assert.NoError(t, err)
	assert.Equal(t, OutcomeNotFound, outcome)

	outcome, err = svc.UpdateReview(created.Id, bob.Id, newReview(bob.Id, "OL1M", 2))
	assert.NoError(t, err)
	assert.Equal(t, OutcomeOK, outcome)

	updated, err := svc.GetReview(created.Id)
	assert.NoError(t, err)
	assert.Equal(t, 2, updated.Rate)
}

func TestDeleteReviewOwnership(t *testing.T) {
	setup(t)
	svc := ReviewService{}
	alice := mustCreateUser(t, "alice")
	bob := mustCreateUser(t, "bob")

	created, err := svc.AddReview(newReview(bob.Id, "OL1M", 8))
	assert.NoError(t, err)

	outcome, err := svc.DeleteReview(created.Id, alice.Id)
	assert.NoError(t, err)
	assert.Equal(t, OutcomeForbidden, outcome)

	outcome, err = svc.DeleteReview(created.Id, bob.Id)
	assert.NoError(t, err)
	assert.Equal(t, OutcomeOK, outcome)

	gone, err := svc.GetReview(created.Id)
	assert.NoError(t, err)
	assert.Nil(t, gone)
}
