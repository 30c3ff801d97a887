package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/HammadJahangir123/office-hub-pro/internal/models"
)

// ErrEmployeeNotFound is returned when the requested employee row does not exist.
var ErrEmployeeNotFound = errors.New("employee not found")

const employeeColumns = `id, name, username, email, department, section, location,
	computer_name, serial_number, ip_address, specs,
	monitor_model, monitor_serial, keyboard_model, mouse_model,
	internet_access, email_access, usb_access, vpn_access,
	COALESCE(peripherals, '[]'), created_by, created_at, updated_at`

// ========================
// REPOSITORY STRUCT
// ========================

type EmployeeRepo struct {
	DB *sql.DB
}

func NewEmployeeRepo(db *sql.DB) *EmployeeRepo {
	return &EmployeeRepo{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (models.Employee, error) {
	var e models.Employee
	var peripherals []byte
	var createdBy sql.NullInt64
	err := row.Scan(
		&e.ID, &e.Name, &e.Username, &e.Email, &e.Department, &e.Section, &e.Location,
		&e.ComputerName, &e.SerialNumber, &e.IPAddress, &e.Specs,
		&e.MonitorModel, &e.MonitorSerial, &e.KeyboardModel, &e.MouseModel,
		&e.InternetAccess, &e.EmailAccess, &e.USBAccess, &e.VPNAccess,
		&peripherals, &createdBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return e, err
	}
	if createdBy.Valid {
		e.CreatedBy = int(createdBy.Int64)
	}
	if len(peripherals) > 0 {
		if err := json.Unmarshal(peripherals, &e.Peripherals); err != nil {
			return e, err
		}
	}
	return e, nil
}

func marshalPeripherals(p []models.Peripheral) []byte {
	if p == nil {
		p = []models.Peripheral{}
	}
	b, err := json.Marshal(p)
	if err != nil {
		return []byte("[]")
	}
	return b
}

// ========================
// CREATE EMPLOYEE
// ========================

// Create inserts a new employee owned by createdBy. q may be a transaction so
// the insert commits together with its audit entry.
func (r *EmployeeRepo) Create(ctx context.Context, q Querier, in models.EmployeeInput, createdBy int) (models.Employee, error) {
	row := q.QueryRowContext(ctx,
		`INSERT INTO employees (name, username, email, department, section, location,
			computer_name, serial_number, ip_address, specs,
			monitor_model, monitor_serial, keyboard_model, mouse_model,
			internet_access, email_access, usb_access, vpn_access,
			peripherals, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		 RETURNING `+employeeColumns,
		in.Name, in.Username, in.Email, in.Department, in.Section, in.Location,
		in.ComputerName, in.SerialNumber, in.IPAddress, in.Specs,
		in.MonitorModel, in.MonitorSerial, in.KeyboardModel, in.MouseModel,
		in.InternetAccess, in.EmailAccess, in.USBAccess, in.VPNAccess,
		marshalPeripherals(in.Peripherals), createdBy,
	)
	return scanEmployee(row)
}

// ========================
// GET EMPLOYEE BY ID
// ========================

func (r *EmployeeRepo) GetByID(ctx context.Context, id int) (models.Employee, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	e, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return e, ErrEmployeeNotFound
	}
	return e, err
}

// GetForUpdate reads the row inside q with a row lock, so concurrent updates
// to the same record serialize and the pre-mutation snapshot is exact.
func (r *EmployeeRepo) GetForUpdate(ctx context.Context, q Querier, id int) (models.Employee, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1 FOR UPDATE`, id)
	e, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return e, ErrEmployeeNotFound
	}
	return e, err
}

// ========================
// UPDATE EMPLOYEE BY ID
// ========================

// Update overwrites all mutable fields and refreshes updated_at.
func (r *EmployeeRepo) Update(ctx context.Context, q Querier, id int, in models.EmployeeInput) (models.Employee, error) {
	row := q.QueryRowContext(ctx,
		`UPDATE employees SET name = $1, username = $2, email = $3, department = $4,
			section = $5, location = $6, computer_name = $7, serial_number = $8,
			ip_address = $9, specs = $10, monitor_model = $11, monitor_serial = $12,
			keyboard_model = $13, mouse_model = $14, internet_access = $15,
			email_access = $16, usb_access = $17, vpn_access = $18,
			peripherals = $19, updated_at = NOW()
		 WHERE id = $20
		 RETURNING `+employeeColumns,
		in.Name, in.Username, in.Email, in.Department,
		in.Section, in.Location, in.ComputerName, in.SerialNumber,
		in.IPAddress, in.Specs, in.MonitorModel, in.MonitorSerial,
		in.KeyboardModel, in.MouseModel, in.InternetAccess,
		in.EmailAccess, in.USBAccess, in.VPNAccess,
		marshalPeripherals(in.Peripherals), id,
	)
	e, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return e, ErrEmployeeNotFound
	}
	return e, err
}

// ========================
// DELETE EMPLOYEE BY ID
// ========================

func (r *EmployeeRepo) Delete(ctx context.Context, q Querier, id int) error {
	res, err := q.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

// ========================
// LIST EMPLOYEES WITH PAGINATION
// ========================

func (r *EmployeeRepo) List(ctx context.Context, limit, offset int) ([]models.Employee, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+employeeColumns+` FROM employees ORDER BY id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []models.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// ========================
// SEARCH EMPLOYEES WITH PAGINATION
// ========================

func (r *EmployeeRepo) SearchPaginated(ctx context.Context, query string, limit, offset int) ([]models.Employee, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+employeeColumns+` FROM employees
		 WHERE name ILIKE $1 OR username ILIKE $1 OR department ILIKE $1 OR computer_name ILIKE $1
		 ORDER BY id LIMIT $2 OFFSET $3`,
		"%"+query+"%", limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []models.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// Count returns the total number of employee records.
func (r *EmployeeRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees`).Scan(&n)
	return n, err
}
