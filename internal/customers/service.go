package customers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/db"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/db/models"
	pkgerrors "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/errors"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/pagination"
)

// Service defines customer management operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Customer, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Customer, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*List, error)
}

type service struct {
	repo Repository
}

// NewService builds a customer service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Customer, error) {
	code := strings.TrimSpace(input.Code)
	name := strings.TrimSpace(input.Name)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer code required")
	}
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name required")
	}

	customer := &models.Customer{
		Code:     code,
		Name:     name,
		Phone:    input.Phone,
		Email:    input.Email,
		Address:  input.Address,
		TaxCode:  input.TaxCode,
		Notes:    input.Notes,
		IsActive: true,
	}

	created, err := s.repo.Create(ctx, customer)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "customer code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create customer")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}
	return customer, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Customer, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name cannot be empty")
		}
		updates["name"] = name
	}
	if input.Phone != nil {
		updates["phone"] = input.Phone
	}
	if input.Email != nil {
		updates["email"] = input.Email
	}
	if input.Address != nil {
		updates["address"] = input.Address
	}
	if input.TaxCode != nil {
		updates["tax_code"] = input.TaxCode
	}
	if input.Notes != nil {
		updates["notes"] = input.Notes
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update customer")
	}
	return s.Get(ctx, id)
}

func (s *service) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, id, map[string]any{"is_active": false}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate customer")
	}
	return nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters ListFilters) (*List, error) {
	list, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}
	return list, nil
}
