package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-admin-api/internal/models"
)

const employeeColumns = `id, first_name, last_name, middle_name, employed_at, phone, mfa, role`

// EmployeeRepository manages employee rows, and principals in particular.
type EmployeeRepository struct {
	db *sqlx.DB
}

// NewEmployeeRepository constructs an EmployeeRepository.
func NewEmployeeRepository(db *sqlx.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// FindCredentialsByPhone returns the data needed to verify a login.
func (r *EmployeeRepository) FindCredentialsByPhone(ctx context.Context, phone string) (*models.Credentials, error) {
	const query = `SELECT id, password_hash, role FROM employees WHERE phone = $1`
	var creds models.Credentials
	if err := r.db.GetContext(ctx, &creds, query, phone); err != nil {
		return nil, err
	}
	return &creds, nil
}

// FindPrincipal fetches a principal by employee id.
func (r *EmployeeRepository) FindPrincipal(ctx context.Context, id int64) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 AND role = 'principal'`
	var employee models.Employee
	if err := r.db.GetContext(ctx, &employee, query, id); err != nil {
		return nil, err
	}
	return &employee, nil
}

// ListPrincipals returns principals matching the filter.
func (r *EmployeeRepository) ListPrincipals(ctx context.Context, filter models.EmployeeFilter) ([]models.Employee, error) {
	var w whereBuilder
	w.conditions = append(w.conditions, "role = 'principal'")
	w.addID("id", filter.ID)
	w.addSearch(employeeNameExpr, filter.Name)

	query := `SELECT ` + employeeColumns + ` FROM employees` + w.where() + ` ORDER BY id` + w.page(filter.Count, filter.Offset)
	principals := make([]models.Employee, 0)
	if err := r.db.SelectContext(ctx, &principals, query, w.args...); err != nil {
		return nil, fmt.Errorf("list principals: %w", err)
	}
	return principals, nil
}

// CreatePrincipal inserts a principal and fills in generated columns.
func (r *EmployeeRepository) CreatePrincipal(ctx context.Context, employee *models.Employee) error {
	query := `INSERT INTO employees (first_name, last_name, middle_name, phone, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, 'principal')
		RETURNING ` + employeeColumns
	if err := r.db.GetContext(ctx, employee, query,
		employee.FirstName, employee.LastName, employee.MiddleName, employee.Phone, employee.PasswordHash,
	); err != nil {
		return fmt.Errorf("create principal: %w", err)
	}
	return nil
}

// UpdatePrincipal rewrites a principal. A nil passwordHash keeps the stored
// hash. sql.ErrNoRows is returned when no principal has the id.
func (r *EmployeeRepository) UpdatePrincipal(ctx context.Context, employee *models.Employee, passwordHash *string) error {
	query := `UPDATE employees
		SET first_name = $2, last_name = $3, middle_name = $4, phone = $5,
			password_hash = COALESCE($6, password_hash)
		WHERE id = $1 AND role = 'principal'
		RETURNING ` + employeeColumns
	if err := r.db.GetContext(ctx, employee, query,
		employee.ID, employee.FirstName, employee.LastName, employee.MiddleName, employee.Phone, passwordHash,
	); err != nil {
		return fmt.Errorf("update principal: %w", err)
	}
	return nil
}

// DeletePrincipal removes a principal. sql.ErrNoRows is returned when no
// principal has the id.
func (r *EmployeeRepository) DeletePrincipal(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1 AND role = 'principal'`, id)
	if err != nil {
		return fmt.Errorf("delete principal: %w", err)
	}
	return expectAffected(res)
}

const employeeNameExpr = `(first_name || ' ' || last_name || ' ' || COALESCE(middle_name, ''))`
