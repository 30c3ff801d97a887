package models

import "time"

// Peripheral is one ad-hoc peripheral attached to an employee record
// (anything beyond the standard monitor/keyboard/mouse fields).
type Peripheral struct {
	Name   string `json:"name"`
	Model  string `json:"model"`
	Serial string `json:"serial"`
}

// Employee is one tracked employee/workstation record.
type Employee struct {
	ID             int          `json:"id"`
	Name           string       `json:"name"`
	Username       string       `json:"username"`
	Email          string       `json:"email"`
	Department     string       `json:"department"`
	Section        string       `json:"section"`
	Location       string       `json:"location"`
	ComputerName   string       `json:"computer_name"`
	SerialNumber   string       `json:"serial_number"`
	IPAddress      string       `json:"ip_address"`
	Specs          string       `json:"specs"`
	MonitorModel   string       `json:"monitor_model"`
	MonitorSerial  string       `json:"monitor_serial"`
	KeyboardModel  string       `json:"keyboard_model"`
	MouseModel     string       `json:"mouse_model"`
	InternetAccess bool         `json:"internet_access"`
	EmailAccess    bool         `json:"email_access"`
	USBAccess      bool         `json:"usb_access"`
	VPNAccess      bool         `json:"vpn_access"`
	Peripherals    []Peripheral `json:"peripherals"`
	CreatedBy      int          `json:"created_by"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// EmployeeInput carries the mutable fields for create/update. ID, ownership
// and timestamps are managed by the store.
type EmployeeInput struct {
	Name           string       `json:"name" validate:"required,min=2,max=255"`
	Username       string       `json:"username" validate:"max=100"`
	Email          string       `json:"email" validate:"omitempty,email"`
	Department     string       `json:"department" validate:"max=100"`
	Section        string       `json:"section" validate:"max=100"`
	Location       string       `json:"location" validate:"max=255"`
	ComputerName   string       `json:"computer_name" validate:"max=255"`
	SerialNumber   string       `json:"serial_number" validate:"max=255"`
	IPAddress      string       `json:"ip_address" validate:"omitempty,ip"`
	Specs          string       `json:"specs" validate:"max=2000"`
	MonitorModel   string       `json:"monitor_model" validate:"max=255"`
	MonitorSerial  string       `json:"monitor_serial" validate:"max=255"`
	KeyboardModel  string       `json:"keyboard_model" validate:"max=255"`
	MouseModel     string       `json:"mouse_model" validate:"max=255"`
	InternetAccess bool         `json:"internet_access"`
	EmailAccess    bool         `json:"email_access"`
	USBAccess      bool         `json:"usb_access"`
	VPNAccess      bool         `json:"vpn_access"`
	Peripherals    []Peripheral `json:"peripherals" validate:"dive"`
}
