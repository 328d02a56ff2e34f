package service

import (
	"strconv"

	"bibliophile/database"
	"bibliophile/database/model"
	"bibliophile/logger"
	"bibliophile/util/crypto"
	"bibliophile/web/entity"

	"gorm.io/gorm"
)

type UserService struct {
	reviewService ReviewService
}

// CreateUser hashes the password and persists the user. Duplicate email or
// username surfaces as a constraint violation from the store.
func (s *UserService) CreateUser(email string, username string, password string) (*model.User, error) {
	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
	}
	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CheckUser verifies credentials. It returns nil on unknown username and on
// wrong password alike, so callers cannot tell the two apart.
func (s *UserService) CheckUser(username string, password string) *model.User {
	db := database.GetDB()

	user := &model.User{}
	err := db.Where("username = ?", username).First(user).Error
	if database.IsNotFound(err) {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if !crypto.CheckPasswordHash(user.PasswordHash, password) {
		return nil
	}
	return user
}

// FindByID returns nil without error when no such user exists.
func (s *UserService) FindByID(id int) (*model.User, error) {
	db := database.GetDB()
	user := &model.User{}
	err := db.First(user, id).Error
	if database.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindByUsername returns nil without error when no such user exists.
func (s *UserService) FindByUsername(username string) (*model.User, error) {
	db := database.GetDB()
	user := &model.User{}
	err := db.Where("username = ?", username).First(user).Error
	if database.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ResolveUserID maps an identifier, either a numeric id or a username, to a
// user id. Returns 0 without error when no user matches.
func (s *UserService) ResolveUserID(identifier string) (int, error) {
	if id, err := strconv.Atoi(identifier); err == nil {
		user, err := s.FindByID(id)
		if err != nil {
			return 0, err
		}
		if user != nil {
			return user.Id, nil
		}
	}
	user, err := s.FindByUsername(identifier)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, nil
	}
	return user.Id, nil
}

// GetUserProfile assembles the aggregate profile: the user row plus their
// booklists, quotes and reviews, all read from one transaction snapshot. A
// user with no content gets empty slices, not a missing profile.
func (s *UserService) GetUserProfile(userId int) (*entity.UserProfile, error) {
	var profile *entity.UserProfile
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, userId).Error; err != nil {
			if database.IsNotFound(err) {
				return nil
			}
			return err
		}
		booklists := make([]model.Booklist, 0)
		if err := tx.Where("user_id = ?", userId).Find(&booklists).Error; err != nil {
			return err
		}
		quotes := make([]model.Quote, 0)
		if err := tx.Where("user_id = ?", userId).Find(&quotes).Error; err != nil {
			return err
		}
		reviews := make([]entity.Review, 0)
		err := s.reviewService.reviewQuery(tx).
			Where("reviews.user_id = ?", userId).
			Scan(&reviews).Error
		if err != nil {
			return err
		}
		profile = &entity.UserProfile{
			Id:        user.Id,
			Username:  user.Username,
			Booklists: booklists,
			Quotes:    quotes,
			Reviews:   reviews,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// DeleteUser removes the user row; booklists, booklist books, quotes,
// reviews and follow edges go with it via FK cascade.
func (s *UserService) DeleteUser(id int) (bool, error) {
	deleted := false
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}
