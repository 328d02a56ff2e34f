package service

import (
	"bibliophile/database"
	"bibliophile/database/model"
	"bibliophile/web/entity"

	"gorm.io/gorm"
)

const reviewColumns = "reviews.id, reviews.book_id, users.username, " +
	"reviews.content, reviews.rate, reviews.favorite, reviews.reviewed_at"

type ReviewService struct{}

// reviewQuery joins reviews with their authors; every review leaves this
// service carrying a username.
func (s *ReviewService) reviewQuery(db *gorm.DB) *gorm.DB {
	return db.Table("reviews").
		Select(reviewColumns).
		Joins("INNER JOIN users ON users.id = reviews.user_id")
}

func (s *ReviewService) AllReviews() ([]entity.Review, error) {
	reviews := make([]entity.Review, 0)
	err := s.reviewQuery(database.GetDB()).Scan(&reviews).Error
	return reviews, err
}

// GetReview returns nil without error when no such review exists.
func (s *ReviewService) GetReview(id int) (*entity.Review, error) {
	reviews := make([]entity.Review, 0)
	err := s.reviewQuery(database.GetDB()).
		Where("reviews.id = ?", id).
		Scan(&reviews).Error
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, nil
	}
	return &reviews[0], nil
}

func (s *ReviewService) ReviewsByUser(userId int) ([]entity.Review, error) {
	reviews := make([]entity.Review, 0)
	err := s.reviewQuery(database.GetDB()).
		Where("reviews.user_id = ?", userId).
		Scan(&reviews).Error
	return reviews, err
}

func (s *ReviewService) ReviewsByBook(bookId string) ([]entity.Review, error) {
	reviews := make([]entity.Review, 0)
	err := s.reviewQuery(database.GetDB()).
		Where("reviews.book_id = ?", bookId).
		Scan(&reviews).Error
	return reviews, err
}

// AddReview persists the review and returns it denormalized with the
// author's username.
func (s *ReviewService) AddReview(review *model.Review) (*entity.Review, error) {
	created := &entity.Review{}
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		var user model.User
		if err := tx.First(&user, review.UserId).Error; err != nil {
			return err
		}
		*created = entity.Review{
			Id:         review.Id,
			BookId:     review.BookId,
			Username:   user.Username,
			Content:    review.Content,
			Rate:       review.Rate,
			Favorite:   review.Favorite,
			ReviewedAt: review.ReviewedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *ReviewService) UpdateReview(id int, userId int, updated *model.Review) (MutationOutcome, error) {
	outcome := OutcomeOK
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		var review model.Review
		if err := tx.First(&review, id).Error; err != nil {
			if database.IsNotFound(err) {
				outcome = OutcomeNotFound
				return nil
			}
			return err
		}
		if review.UserId != userId {
			outcome = OutcomeForbidden
			return nil
		}
		review.BookId = updated.BookId
		review.Content = updated.Content
		review.Rate = updated.Rate
		review.Favorite = updated.Favorite
		review.ReviewedAt = updated.ReviewedAt
		return tx.Save(&review).Error
	})
	return outcome, err
}

func (s *ReviewService) DeleteReview(id int, userId int) (MutationOutcome, error) {
	outcome := OutcomeOK
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		var review model.Review
		if err := tx.First(&review, id).Error; err != nil {
			if database.IsNotFound(err) {
				outcome = OutcomeNotFound
				return nil
			}
			return err
		}
		if review.UserId != userId {
			outcome = OutcomeForbidden
			return nil
		}
		return tx.Delete(&review).Error
	})
	return outcome, err
}
