package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"pousada-backend/models"
)

// ClientService owns the guest registry. The reservation core only ever
// references clients by id; validation of the id happens here, at creation
// time, through the HTTP layer.
type ClientService struct {
	DB *gorm.DB
}

func NewClientService(db *gorm.DB) *ClientService {
	return &ClientService{DB: db}
}

// ClientPatch carries a partial update; nil fields are left untouched.
type ClientPatch struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Document *string `json:"document"`
	Address  *string `json:"address"`
}

func (s *ClientService) Create(client *models.Client) (*models.Client, error) {
	client.Name = strings.TrimSpace(client.Name)
	client.Email = strings.TrimSpace(client.Email)
	client.Document = strings.TrimSpace(client.Document)

	var count int64
	err := s.DB.Model(&models.Client{}).
		Where("email = ? OR document = ?", client.Email, client.Document).
		Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check client uniqueness: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateClient
	}

	if err := s.DB.Create(client).Error; err != nil {
		if isDuplicateEntryError(err) {
			return nil, ErrDuplicateClient
		}
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

func (s *ClientService) GetByID(id uint) (*models.Client, error) {
	var client models.Client
	if err := s.DB.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to fetch client: %w", err)
	}
	return &client, nil
}

func (s *ClientService) List(offset, limit int) ([]models.Client, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	var clients []models.Client
	err := s.DB.Order("name").Offset(offset).Limit(limit).Find(&clients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

func (s *ClientService) Update(id uint, patch ClientPatch) (*models.Client, error) {
	client, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		var count int64
		err := s.DB.Model(&models.Client{}).
			Where("email = ? AND id <> ?", email, id).
			Count(&count).Error
		if err != nil {
			return nil, fmt.Errorf("failed to check client email: %w", err)
		}
		if count > 0 {
			return nil, ErrDuplicateClient
		}
		client.Email = email
	}
	if patch.Document != nil {
		document := strings.TrimSpace(*patch.Document)
		var count int64
		err := s.DB.Model(&models.Client{}).
			Where("document = ? AND id <> ?", document, id).
			Count(&count).Error
		if err != nil {
			return nil, fmt.Errorf("failed to check client document: %w", err)
		}
		if count > 0 {
			return nil, ErrDuplicateClient
		}
		client.Document = document
	}
	if patch.Name != nil {
		client.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Phone != nil {
		client.Phone = *patch.Phone
	}
	if patch.Address != nil {
		client.Address = *patch.Address
	}

	if err := s.DB.Save(client).Error; err != nil {
		if isDuplicateEntryError(err) {
			return nil, ErrDuplicateClient
		}
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

// Delete removes a client unless a pending or active reservation references
// them. The source system cascade-deleted reservation history here; an
// explicit check replaced that, since reservations are never removed.
func (s *ClientService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}

	var blocking int64
	err := s.DB.Model(&models.Reservation{}).
		Where("client_id = ? AND status IN ?", id, blockingStatuses()).
		Count(&blocking).Error
	if err != nil {
		return fmt.Errorf("failed to check reservations: %w", err)
	}
	if blocking > 0 {
		return ErrClientHasActiveReservations
	}

	if err := s.DB.Delete(&models.Client{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}
