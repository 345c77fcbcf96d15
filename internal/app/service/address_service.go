package service

import (
	"errors"

	"github.com/asifdev/trendcart-backend/internal/app/model"
	"github.com/asifdev/trendcart-backend/internal/app/repository"
	"github.com/asifdev/trendcart-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrAddressNotFound = errors.New("address not found")
)

type AddressInput struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Address     string
	City        string
	District    string
	State       string
	ZipCode     string
}

type AddressService interface {
	ListAddresses(userID uint) ([]model.Address, error)
	GetAddress(userID, addressID uint) (*model.Address, error)
	CreateAddress(userID uint, input AddressInput) (*model.Address, error)
	UpdateAddress(userID, addressID uint, input AddressInput) (*model.Address, error)
	DeleteAddress(userID, addressID uint) error
}

type addressService struct {
	addressRepo repository.AddressRepository
}

func NewAddressService(addressRepo repository.AddressRepository) AddressService {
	return &addressService{addressRepo: addressRepo}
}

func (s *addressService) ListAddresses(userID uint) ([]model.Address, error) {
	logger.Debug("Listing user addresses", map[string]interface{}{
		"user_id": userID,
	})

	return s.addressRepo.FindByUserID(userID)
}

func (s *addressService) GetAddress(userID, addressID uint) (*model.Address, error) {
	address, err := s.addressRepo.FindByIDAndUserID(addressID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	return address, nil
}

func (s *addressService) CreateAddress(userID uint, input AddressInput) (*model.Address, error) {
	logger.Info("Creating address", map[string]interface{}{
		"user_id": userID,
		"city":    input.City,
	})

	address := &model.Address{
		UserID:      userID,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		PhoneNumber: input.PhoneNumber,
		Address:     input.Address,
		City:        input.City,
		District:    input.District,
		State:       input.State,
		ZipCode:     input.ZipCode,
	}

	if err := s.addressRepo.Create(address); err != nil {
		logger.Error("Failed to create address", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("Address created", map[string]interface{}{
		"address_id": address.ID,
		"user_id":    userID,
	})
	return address, nil
}

func (s *addressService) UpdateAddress(userID, addressID uint, input AddressInput) (*model.Address, error) {
	logger.Info("Updating address", map[string]interface{}{
		"address_id": addressID,
		"user_id":    userID,
	})

	address, err := s.addressRepo.FindByIDAndUserID(addressID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Address not found for update", map[string]interface{}{
				"address_id": addressID,
				"user_id":    userID,
			})
			return nil, ErrAddressNotFound
		}
		return nil, err
	}

	address.FirstName = input.FirstName
	address.LastName = input.LastName
	address.PhoneNumber = input.PhoneNumber
	address.Address = input.Address
	address.City = input.City
	address.District = input.District
	address.State = input.State
	address.ZipCode = input.ZipCode

	if err := s.addressRepo.Update(address); err != nil {
		logger.Error("Failed to update address", err, map[string]interface{}{
			"address_id": addressID,
		})
		return nil, err
	}

	logger.Info("Address updated", map[string]interface{}{
		"address_id": addressID,
	})
	return address, nil
}

func (s *addressService) DeleteAddress(userID, addressID uint) error {
	logger.Info("Deleting address", map[string]interface{}{
		"address_id": addressID,
		"user_id":    userID,
	})

	rows, err := s.addressRepo.Delete(addressID, userID)
	if err != nil {
		return err
	}
	if rows == 0 {
		logger.Warn("Address not found for deletion", map[string]interface{}{
			"address_id": addressID,
			"user_id":    userID,
		})
		return ErrAddressNotFound
	}

	logger.Info("Address deleted", map[string]interface{}{
		"address_id": addressID,
	})
	return nil
}
