package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/spokefoods/spoke-backend/models"
	"github.com/spokefoods/spoke-backend/utils"
)

// LoadPerQuantity is the alloted-counter weight of one unit of ordered
// quantity. The counter is a fairness heuristic, not inventory.
const LoadPerQuantity = 30

// PickLeastLoaded selects the chef with the lowest alloted counter. Ties go
// to the earliest-created chef so repeated calls are deterministic.
func PickLeastLoaded(db *gorm.DB) (*models.Chef, error) {
	var chef models.Chef
	err := db.Order("alloted asc, id asc").First(&chef).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoChefsAvailable
	}
	if err != nil {
		return nil, err
	}
	return &chef, nil
}

// PickLeastLoadedExcluding is PickLeastLoaded minus one chef, used while that
// chef is being removed.
func PickLeastLoadedExcluding(db *gorm.DB, excludeID uint) (*models.Chef, error) {
	var chef models.Chef
	err := db.Where("id <> ?", excludeID).Order("alloted asc, id asc").First(&chef).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoChefsAvailable
	}
	if err != nil {
		return nil, err
	}
	return &chef, nil
}

// ApplyAssignment charges a chef for a newly assigned order.
func ApplyAssignment(db *gorm.DB, chef *models.Chef, totalQuantity int) error {
	chef.Alloted += LoadPerQuantity * totalQuantity
	return db.Save(chef).Error
}

// ApplyCompletion releases a completed order's load, floored at zero.
func ApplyCompletion(db *gorm.DB, chef *models.Chef, totalQuantity int) error {
	chef.Alloted -= LoadPerQuantity * totalQuantity
	if chef.Alloted < 0 {
		chef.Alloted = 0
	}
	return db.Save(chef).Error
}

// RemoveChef deletes a chef after handing every order they hold to the
// remaining chefs. Fails ErrNoChefsAvailable when orders exist and nobody is
// left to take them; the whole removal rolls back in that case.
func RemoveChef(db *gorm.DB, chefID uint) (int, error) {
	reassigned := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		var chef models.Chef
		if err := tx.First(&chef, chefID).Error; err != nil {
			return err
		}

		n, err := ReassignOrders(tx, chefID)
		if err != nil {
			return err
		}
		reassigned = n

		return tx.Delete(&chef).Error
	})
	if err != nil {
		return 0, err
	}
	return reassigned, nil
}

// ReassignOrders moves every order of a chef being removed onto the
// remaining chefs, one order at a time. The least-loaded chef is recomputed
// per order so the load spreads instead of piling on one chef. Returns the
// number of orders moved.
func ReassignOrders(db *gorm.DB, removedChefID uint) (int, error) {
	var orders []models.Order
	if err := db.Preload("Items").Where("chef_id = ?", removedChefID).Find(&orders).Error; err != nil {
		return 0, err
	}

	for i := range orders {
		order := &orders[i]

		newChef, err := PickLeastLoadedExcluding(db, removedChefID)
		if err != nil {
			return 0, err
		}

		totalQuantity := 0
		for _, item := range order.Items {
			totalQuantity += item.Quantity
		}

		order.ChefID = newChef.ID
		if err := db.Model(order).Update("chef_id", newChef.ID).Error; err != nil {
			return 0, err
		}
		if err := ApplyAssignment(db, newChef, totalQuantity); err != nil {
			return 0, err
		}
		utils.InfoLogger.Printf("Reassigned order %s to chef %d (alloted now %d)", order.OrderNumber, newChef.ID, newChef.Alloted)
	}

	return len(orders), nil
}
