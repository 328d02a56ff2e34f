package service

import (
	"bibliophile/database"
	"bibliophile/database/model"

	"gorm.io/gorm"
)

type FollowerService struct{}

func (s *FollowerService) AllFollows() ([]model.Follow, error) {
	db := database.GetDB()
	follows := make([]model.Follow, 0)
	err := db.Find(&follows).Error
	return follows, err
}

// FollowersOf lists the edges pointing at userId.
func (s *FollowerService) FollowersOf(userId int) ([]model.Follow, error) {
	db := database.GetDB()
	follows := make([]model.Follow, 0)
	err := db.Where("followee_id = ?", userId).Find(&follows).Error
	return follows, err
}

// FollowingOf lists the edges originating from userId.
func (s *FollowerService) FollowingOf(userId int) ([]model.Follow, error) {
	db := database.GetDB()
	follows := make([]model.Follow, 0)
	err := db.Where("follower_id = ?", userId).Find(&follows).Error
	return follows, err
}

// IsFollowing is a pure existence check with no side effect.
func (s *FollowerService) IsFollowing(followerId int, followeeId int) (bool, error) {
	db := database.GetDB()
	var count int64
	err := db.Model(&model.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerId, followeeId).
		Count(&count).Error
	return count > 0, err
}

// AddFollow inserts the edge. Callers pre-check IsFollowing for a friendly
// conflict message, but the unique pair index is what actually decides the
// race between two concurrent follows.
func (s *FollowerService) AddFollow(followerId int, followeeId int) error {
	return database.GetDB().Transaction(func(tx *gorm.DB) error {
		return tx.Create(&model.Follow{
			FollowerId: followerId,
			FolloweeId: followeeId,
		}).Error
	})
}

// DeleteFollow removes the edge; reports whether anything was deleted.
func (s *FollowerService) DeleteFollow(followerId int, followeeId int) (bool, error) {
	deleted := false
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND followee_id = ?", followerId, followeeId).
			Delete(&model.Follow{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}
