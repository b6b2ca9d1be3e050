package mysql

import (
	"errors"
	"log"

	"checkout-service/internal/domain"
	"checkout-service/internal/repository"

	"gorm.io/gorm"
)

type cartRepo struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepo{db: db}
}

func (r *cartRepo) SaveCart(cart *domain.Cart) error {
	if err := r.db.Create(cart).Error; err != nil {
		log.Printf("cart: save: %v", err)
		return err
	}
	return nil
}

func (r *cartRepo) FindByID(id string) (*domain.Cart, error) {
	var c domain.Cart
	if err := r.db.Preload("Items").First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("cart: find %s: %v", id, err)
		return nil, err
	}
	return &c, nil
}

func (r *cartRepo) SaveItem(item *domain.CartItem) error {
	if err := r.db.Create(item).Error; err != nil {
		log.Printf("cart: save item: %v", err)
		return err
	}
	return nil
}

func (r *cartRepo) FindItemByID(id uint64) (*domain.CartItem, error) {
	var item domain.CartItem
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("cart: find item %d: %v", id, err)
		return nil, err
	}
	return &item, nil
}

func (r *cartRepo) UpdateItemQuantity(id uint64, quantity int64) error {
	res := r.db.Model(&domain.CartItem{}).Where("id = ?", id).Update("quantity", quantity)
	if res.Error != nil {
		log.Printf("cart: update item %d quantity: %v", id, res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NewNotFound("cart item")
	}
	return nil
}

func (r *cartRepo) DeleteItem(id uint64) (bool, error) {
	res := r.db.Delete(&domain.CartItem{}, id)
	if res.Error != nil {
		log.Printf("cart: delete item %d: %v", id, res.Error)
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
