// Package importer parses bulk CSV uploads of employee records. Exported
// spreadsheets from earlier versions of this system spell the same logical
// column many ways, so each field carries an explicit ordered alias list and
// headers resolve through a pure lookup rather than fuzzy matching.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/HammadJahangir123/office-hub-pro/internal/models"
)

// fieldAliases lists, per logical field, the header spellings accepted in
// priority order. Matching is case-insensitive with separators normalized.
var fieldAliases = []struct {
	field   string
	aliases []string
}{
	{"name", []string{"name", "employee name", "full name", "employee"}},
	{"username", []string{"username", "user name", "login", "account"}},
	{"email", []string{"email", "email address", "mail"}},
	{"department", []string{"department", "dept", "dep"}},
	{"section", []string{"section", "unit", "team"}},
	{"location", []string{"location", "office", "site", "branch"}},
	{"computer_name", []string{"computer name", "computer", "pc name", "hostname", "machine name"}},
	{"serial_number", []string{"serial number", "serial", "serial no", "pc serial", "computer serial"}},
	{"ip_address", []string{"ip address", "ip", "ip addr"}},
	{"specs", []string{"specs", "specifications", "pc specs", "hardware"}},
	{"monitor_model", []string{"monitor model", "monitor", "screen model"}},
	{"monitor_serial", []string{"monitor serial", "monitor serial number", "screen serial"}},
	{"keyboard_model", []string{"keyboard model", "keyboard"}},
	{"mouse_model", []string{"mouse model", "mouse"}},
	{"internet_access", []string{"internet access", "internet", "net access"}},
	{"email_access", []string{"email access", "mail access"}},
	{"usb_access", []string{"usb access", "usb"}},
	{"vpn_access", []string{"vpn access", "vpn"}},
}

// normalizeHeader lowercases and collapses underscores, dashes and repeated
// whitespace so "Computer_Name" and " computer  name " both match.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(h)
	return strings.Join(strings.Fields(h), " ")
}

// MatchHeader resolves a raw CSV header to a logical field name.
func MatchHeader(header string) (string, bool) {
	n := normalizeHeader(header)
	for _, fa := range fieldAliases {
		for _, a := range fa.aliases {
			if n == a {
				return fa.field, true
			}
		}
	}
	return "", false
}

// parseBool accepts the historical spreadsheet spellings of a flag.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1", "x":
		return true
	default:
		return false
	}
}

// RowError reports a row that could not be parsed. Row is 1-based and counts
// the header line, matching what a user sees in their spreadsheet.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ParsedRow is one successfully parsed CSV row with its source line number.
type ParsedRow struct {
	Row   int
	Input models.EmployeeInput
}

// Result is the outcome of parsing one CSV upload.
type Result struct {
	Rows   []ParsedRow
	Errors []RowError
}

// Parse reads a CSV document into employee inputs. Unknown columns are
// ignored; rows without a name are reported as errors and skipped.
func Parse(r io.Reader) (*Result, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	fieldByCol := make(map[int]string)
	for i, h := range header {
		if f, ok := MatchHeader(h); ok {
			fieldByCol[i] = f
		}
	}
	if len(fieldByCol) == 0 {
		return nil, fmt.Errorf("no recognized columns in header")
	}

	res := &Result{}
	rowNum := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			res.Errors = append(res.Errors, RowError{Row: rowNum, Error: err.Error()})
			continue
		}

		in := models.EmployeeInput{}
		for i, val := range record {
			field, ok := fieldByCol[i]
			if !ok {
				continue
			}
			setField(&in, field, val)
		}
		if strings.TrimSpace(in.Name) == "" {
			res.Errors = append(res.Errors, RowError{Row: rowNum, Error: "missing name"})
			continue
		}
		res.Rows = append(res.Rows, ParsedRow{Row: rowNum, Input: in})
	}
	return res, nil
}

func setField(in *models.EmployeeInput, field, val string) {
	val = strings.TrimSpace(val)
	switch field {
	case "name":
		in.Name = val
	case "username":
		in.Username = val
	case "email":
		in.Email = val
	case "department":
		in.Department = val
	case "section":
		in.Section = val
	case "location":
		in.Location = val
	case "computer_name":
		in.ComputerName = val
	case "serial_number":
		in.SerialNumber = val
	case "ip_address":
		in.IPAddress = val
	case "specs":
		in.Specs = val
	case "monitor_model":
		in.MonitorModel = val
	case "monitor_serial":
		in.MonitorSerial = val
	case "keyboard_model":
		in.KeyboardModel = val
	case "mouse_model":
		in.MouseModel = val
	case "internet_access":
		in.InternetAccess = parseBool(val)
	case "email_access":
		in.EmailAccess = parseBool(val)
	case "usb_access":
		in.USBAccess = parseBool(val)
	case "vpn_access":
		in.VPNAccess = parseBool(val)
	}
}
