package payroll

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/db"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/db/models"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/enums"
	pkgerrors "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/errors"
)

var periodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Service defines employee and payroll operations.
type Service interface {
	CreateEmployee(ctx context.Context, input CreateEmployeeInput) (*models.Employee, error)
	GetEmployee(ctx context.Context, id uuid.UUID) (*models.Employee, error)
	UpdateEmployee(ctx context.Context, id uuid.UUID, input UpdateEmployeeInput) (*models.Employee, error)
	ListEmployees(ctx context.Context, activeOnly bool) ([]models.Employee, error)

	Generate(ctx context.Context, input GenerateInput) (*models.PayrollEntry, error)
	GetEntry(ctx context.Context, id uuid.UUID) (*models.PayrollEntry, error)
	ListByPeriod(ctx context.Context, period string) ([]models.PayrollEntry, error)
	Approve(ctx context.Context, id uuid.UUID, approverID uuid.UUID) (*models.PayrollEntry, error)
	MarkPaid(ctx context.Context, id uuid.UUID) (*models.PayrollEntry, error)
}

type service struct {
	repo Repository
}

// NewService builds a payroll service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payroll repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateEmployee(ctx context.Context, input CreateEmployeeInput) (*models.Employee, error) {
	code := strings.TrimSpace(input.Code)
	fullName := strings.TrimSpace(input.FullName)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "employee code required")
	}
	if fullName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "employee name required")
	}
	if input.BaseSalary.IsNegative() || input.Allowance.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "salary and allowance cannot be negative")
	}

	employee := &models.Employee{
		Code:       code,
		FullName:   fullName,
		Position:   input.Position,
		Department: input.Department,
		Phone:      input.Phone,
		Email:      input.Email,
		BaseSalary: input.BaseSalary,
		Allowance:  input.Allowance,
		HiredAt:    input.HiredAt,
		IsActive:   true,
	}
	created, err := s.repo.CreateEmployee(ctx, employee)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "employee code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create employee")
	}
	return created, nil
}

func (s *service) GetEmployee(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "employee id required")
	}
	employee, err := s.repo.FindEmployeeByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "employee not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load employee")
	}
	return employee, nil
}

func (s *service) UpdateEmployee(ctx context.Context, id uuid.UUID, input UpdateEmployeeInput) (*models.Employee, error) {
	if _, err := s.GetEmployee(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.FullName != nil {
		fullName := strings.TrimSpace(*input.FullName)
		if fullName == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "employee name cannot be empty")
		}
		updates["full_name"] = fullName
	}
	if input.Position != nil {
		updates["position"] = input.Position
	}
	if input.Department != nil {
		updates["department"] = input.Department
	}
	if input.Phone != nil {
		updates["phone"] = input.Phone
	}
	if input.Email != nil {
		updates["email"] = input.Email
	}
	if input.BaseSalary != nil {
		if input.BaseSalary.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "base salary cannot be negative")
		}
		updates["base_salary"] = *input.BaseSalary
	}
	if input.Allowance != nil {
		if input.Allowance.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "allowance cannot be negative")
		}
		updates["allowance"] = *input.Allowance
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) > 0 {
		if err := s.repo.UpdateEmployee(ctx, id, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update employee")
		}
	}
	return s.GetEmployee(ctx, id)
}

func (s *service) ListEmployees(ctx context.Context, activeOnly bool) ([]models.Employee, error) {
	employees, err := s.repo.ListEmployees(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list employees")
	}
	return employees, nil
}

// Generate computes one payroll entry. Salary figures are snapshotted from
// the employee record so later raises do not rewrite history.
func (s *service) Generate(ctx context.Context, input GenerateInput) (*models.PayrollEntry, error) {
	if !periodPattern.MatchString(input.Period) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "period must use the YYYY-MM format")
	}
	if input.OvertimeHours.IsNegative() || input.OvertimeRate.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "overtime figures cannot be negative")
	}
	if input.Deductions.IsNegative() || input.Advance.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "deductions and advance cannot be negative")
	}

	employee, err := s.GetEmployee(ctx, input.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !employee.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "employee is not active")
	}

	gross := employee.BaseSalary.
		Add(employee.Allowance).
		Add(input.OvertimeHours.Mul(input.OvertimeRate))
	net := gross.Sub(input.Deductions).Sub(input.Advance)
	if net.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "net pay cannot be negative")
	}

	entry := &models.PayrollEntry{
		EmployeeID:    employee.ID,
		Period:        input.Period,
		BaseSalary:    employee.BaseSalary,
		Allowance:     employee.Allowance,
		OvertimeHours: input.OvertimeHours,
		OvertimeRate:  input.OvertimeRate,
		Deductions:    input.Deductions,
		Advance:       input.Advance,
		GrossPay:      gross,
		NetPay:        net,
		Status:        enums.PayrollStatusDraft,
		Notes:         input.Notes,
	}
	created, err := s.repo.CreateEntry(ctx, entry)
	if err != nil {
		if db.IsUniqueViolation(err, "idx_payroll_employee_period") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict,
				fmt.Sprintf("payroll for employee %s in period %s already exists", employee.Code, input.Period))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payroll entry")
	}
	return created, nil
}

func (s *service) GetEntry(ctx context.Context, id uuid.UUID) (*models.PayrollEntry, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payroll entry id required")
	}
	entry, err := s.repo.FindEntryByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payroll entry not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payroll entry")
	}
	return entry, nil
}

func (s *service) ListByPeriod(ctx context.Context, period string) ([]models.PayrollEntry, error) {
	if !periodPattern.MatchString(period) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "period must use the YYYY-MM format")
	}
	entries, err := s.repo.ListEntriesByPeriod(ctx, period)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payroll entries")
	}
	return entries, nil
}

func (s *service) Approve(ctx context.Context, id uuid.UUID, approverID uuid.UUID) (*models.PayrollEntry, error) {
	if approverID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "approver id required")
	}
	entry, err := s.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.Status != enums.PayrollStatusDraft {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("payroll entry in status %s cannot be approved", entry.Status))
	}
	if err := s.repo.UpdateEntry(ctx, id, map[string]any{
		"status":      enums.PayrollStatusApproved,
		"approved_by": approverID,
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "approve payroll entry")
	}
	entry.Status = enums.PayrollStatusApproved
	entry.ApprovedBy = &approverID
	return entry, nil
}

func (s *service) MarkPaid(ctx context.Context, id uuid.UUID) (*models.PayrollEntry, error) {
	entry, err := s.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.Status != enums.PayrollStatusApproved {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("payroll entry in status %s cannot be paid", entry.Status))
	}
	now := time.Now().UTC()
	if err := s.repo.UpdateEntry(ctx, id, map[string]any{
		"status":  enums.PayrollStatusPaid,
		"paid_at": now,
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark payroll entry paid")
	}
	entry.Status = enums.PayrollStatusPaid
	entry.PaidAt = &now
	return entry, nil
}
