package service

import (
	"bibliophile/database"
	"bibliophile/database/model"
	"bibliophile/web/entity"

	"gorm.io/gorm"
)

type BooklistService struct{}

func (s *BooklistService) AllBooklists() ([]model.Booklist, error) {
	db := database.GetDB()
	booklists := make([]model.Booklist, 0)
	err := db.Find(&booklists).Error
	return booklists, err
}

// GetBooklist returns nil without error when no such booklist exists.
func (s *BooklistService) GetBooklist(id int) (*model.Booklist, error) {
	db := database.GetDB()
	booklist := &model.Booklist{}
	err := db.First(booklist, id).Error
	if database.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return booklist, nil
}

// BooklistWithBooks loads a booklist and the book ids it contains in one
// transaction, so the list and its entries come from the same snapshot.
func (s *BooklistService) BooklistWithBooks(id int) (*entity.BooklistWithBooks, error) {
	var result *entity.BooklistWithBooks
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		var booklist model.Booklist
		if err := tx.First(&booklist, id).Error; err != nil {
			if database.IsNotFound(err) {
				return nil
			}
			return err
		}
		books := make([]string, 0)
		err := tx.Model(&model.BooklistBook{}).
			Where("booklist_id = ?", id).
			Pluck("book_id", &books).Error
		if err != nil {
			return err
		}
		result = &entity.BooklistWithBooks{
			Id:              booklist.Id,
			UserId:          booklist.UserId,
			ListName:        booklist.ListName,
			ListDescription: booklist.ListDescription,
			Books:           books,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AddBooklist creates a booklist. A duplicate (owner, list name) pair
// surfaces as a constraint violation from the store.
func (s *BooklistService) AddBooklist(userId int, listName string, listDescription *string) (*model.Booklist, error) {
	booklist := &model.Booklist{
		UserId:          userId,
		ListName:        listName,
		ListDescription: listDescription,
	}
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		return tx.Create(booklist).Error
	})
	if err != nil {
		return nil, err
	}
	return booklist, nil
}

func (s *BooklistService) UpdateBooklist(id int, userId int, listName string, listDescription *string) (MutationOutcome, error) {
	outcome := OutcomeOK
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		var booklist model.Booklist
		if err := tx.First(&booklist, id).Error; err != nil {
			if database.IsNotFound(err) {
				outcome = OutcomeNotFound
				return nil
			}
			return err
		}
		if booklist.UserId != userId {
			outcome = OutcomeForbidden
			return nil
		}
		booklist.ListName = listName
		booklist.ListDescription = listDescription
		return tx.Save(&booklist).Error
	})
	return outcome, err
}

func (s *BooklistService) DeleteBooklist(id int, userId int) (MutationOutcome, error) {
	outcome := OutcomeOK
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		var booklist model.Booklist
		if err := tx.First(&booklist, id).Error; err != nil {
			if database.IsNotFound(err) {
				outcome = OutcomeNotFound
				return nil
			}
			return err
		}
		if booklist.UserId != userId {
			outcome = OutcomeForbidden
			return nil
		}
		return tx.Delete(&booklist).Error
	})
	return outcome, err
}

// AddBook appends a book to an owned booklist. Adding the same book twice
// fails on the (booklist, book) unique index.
func (s *BooklistService) AddBook(booklistId int, userId int, bookId string) (MutationOutcome, error) {
	outcome := OutcomeOK
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		var booklist model.Booklist
		if err := tx.First(&booklist, booklistId).Error; err != nil {
			if database.IsNotFound(err) {
				outcome = OutcomeNotFound
				return nil
			}
			return err
		}
		if booklist.UserId != userId {
			outcome = OutcomeForbidden
			return nil
		}
		return tx.Create(&model.BooklistBook{
			BooklistId: booklistId,
			BookId:     bookId,
		}).Error
	})
	return outcome, err
}

func (s *BooklistService) RemoveBook(booklistId int, userId int, bookId string) (MutationOutcome, error) {
	outcome := OutcomeOK
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		var booklist model.Booklist
		if err := tx.First(&booklist, booklistId).Error; err != nil {
			if database.IsNotFound(err) {
				outcome = OutcomeNotFound
				return nil
			}
			return err
		}
		if booklist.UserId != userId {
			outcome = OutcomeForbidden
			return nil
		}
		res := tx.Where("booklist_id = ? AND book_id = ?", booklistId, bookId).
			Delete(&model.BooklistBook{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			outcome = OutcomeNotFound
		}
		return nil
	})
	return outcome, err
}
