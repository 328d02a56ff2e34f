package service

import (
	"bibliophile/database"
	"bibliophile/database/model"

	"gorm.io/gorm"
)

type QuoteService struct{}

func (s *QuoteService) AllQuotes() ([]model.Quote, error) {
	db := database.GetDB()
	quotes := make([]model.Quote, 0)
	err := db.Find(&quotes).Error
	return quotes, err
}

// GetQuote returns nil without error when no such quote exists.
func (s *QuoteService) GetQuote(id int) (*model.Quote, error) {
	db := database.GetDB()
	quote := &model.Quote{}
	err := db.First(quote, id).Error
	if database.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return quote, nil
}

func (s *QuoteService) AddQuote(userId int, content string) (*model.Quote, error) {
	quote := &model.Quote{
		UserId:  userId,
		Content: content,
	}
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		return tx.Create(quote).Error
	})
	if err != nil {
		return nil, err
	}
	return quote, nil
}

func (s *QuoteService) UpdateQuote(id int, userId int, content string) (MutationOutcome, error) {
	outcome := OutcomeOK
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		var quote model.Quote
		if err := tx.First(&quote, id).Error; err != nil {
			if database.IsNotFound(err) {
				outcome = OutcomeNotFound
				return nil
			}
			return err
		}
		if quote.UserId != userId {
			outcome = OutcomeForbidden
			return nil
		}
		quote.Content = content
		return tx.Save(&quote).Error
	})
	return outcome, err
}

func (s *QuoteService) DeleteQuote(id int, userId int) (MutationOutcome, error) {
	outcome := OutcomeOK
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		var quote model.Quote
		if err := tx.First(&quote, id).Error; err != nil {
			if database.IsNotFound(err) {
				outcome = OutcomeNotFound
				return nil
			}
			return err
		}
		if quote.UserId != userId {
			outcome = OutcomeForbidden
			return nil
		}
		return tx.Delete(&quote).Error
	})
	return outcome, err
}
