package notify

import (
	"sort"

	"github.com/HammadJahangir123/office-hub-pro/internal/diff"
)

// fieldLabels maps record field names to the labels shown in notifications.
// Unknown fields fall back to the raw field name.
var fieldLabels = map[string]string{
	"name":            "Name",
	"username":        "Username",
	"email":           "Email",
	"department":      "Department",
	"section":         "Section",
	"location":        "Location",
	"computer_name":   "Computer Name",
	"serial_number":   "Serial Number",
	"ip_address":      "IP Address",
	"specs":           "Specs",
	"monitor_model":   "Monitor Model",
	"monitor_serial":  "Monitor Serial",
	"keyboard_model":  "Keyboard Model",
	"mouse_model":     "Mouse Model",
	"internet_access": "Internet Access",
	"email_access":    "Email Access",
	"usb_access":      "USB Access",
	"vpn_access":      "VPN Access",
	"peripherals":     "Peripherals",
}

// Label returns the display label for a field, or the field name itself.
func Label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}

// RenderValue maps the serialized forms of booleans and null to their display
// text: "true"/"false" become "Yes"/"No", empty becomes "(empty)".
func RenderValue(s string) string {
	switch s {
	case "true":
		return "Yes"
	case "false":
		return "No"
	case "":
		return "(empty)"
	default:
		return s
	}
}

// RenderChanges turns a diff into display rows, sorted by field name for a
// stable message body.
func RenderChanges(d diff.Diff) []ChangeRow {
	fields := make([]string, 0, len(d))
	for f := range d {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	rows := make([]ChangeRow, 0, len(fields))
	for _, f := range fields {
		c := d[f]
		rows = append(rows, ChangeRow{
			Field: f,
			Label: Label(f),
			Old:   RenderValue(c.Old),
			New:   RenderValue(c.New),
		})
	}
	return rows
}
