package handlers

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"sort"
	"strings"

	"github.com/HammadJahangir123/office-hub-pro/internal/repo"
)

const (
	overviewMaxRecords = 2000
	unassignedGroup    = "Unassigned"
)

// NetworkHandler serves the admin network overview: workstations grouped by
// subnet so admins can eyeball segmentation and spot stray addresses.
type NetworkHandler struct {
	Repo *repo.EmployeeRepo
}

// NetworkOverviewResponse is the JSON shape for GET /v1/network/overview.
type NetworkOverviewResponse struct {
	Groups []SubnetGroup `json:"groups"`
}

// SubnetGroup is one subnet bucket of workstations.
type SubnetGroup struct {
	Subnet   string           `json:"subnet"`
	Count    int              `json:"count"`
	Machines []MachineSummary `json:"machines"`
}

// MachineSummary is one workstation within a subnet group.
type MachineSummary struct {
	EmployeeID   int    `json:"employee_id"`
	Name         string `json:"name"`
	ComputerName string `json:"computer_name"`
	IPAddress    string `json:"ip_address"`
}

// subnetForIP returns a /24 subnet string for IPv4 (e.g. "192.168.1.0/24")
// or the /64 prefix form for IPv6. Returns empty string if ip is not parseable.
func subnetForIP(ipStr string) string {
	ip := net.ParseIP(strings.TrimSpace(ipStr))
	if ip == nil {
		return ""
	}
	if ip4 := ip.To4(); ip4 != nil {
		ip4[3] = 0
		return ip4.String() + "/24"
	}
	if ip6 := ip.To16(); ip6 != nil {
		for i := 8; i < 16; i++ {
			ip6[i] = 0
		}
		return ip6.String() + "/64"
	}
	return ""
}

// NetworkOverview groups all workstations by the /24 (or /64) subnet of their
// assigned IP. Records without a parseable address land in "Unassigned".
func (h *NetworkHandler) NetworkOverview(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Repo.List(r.Context(), overviewMaxRecords, 0)
	if err != nil {
		slog.Error("network overview: list employees", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	bySubnet := make(map[string][]MachineSummary)
	for _, e := range employees {
		group := subnetForIP(e.IPAddress)
		if group == "" {
			group = unassignedGroup
		}
		bySubnet[group] = append(bySubnet[group], MachineSummary{
			EmployeeID:   e.ID,
			Name:         e.Name,
			ComputerName: e.ComputerName,
			IPAddress:    e.IPAddress,
		})
	}

	groups := make([]SubnetGroup, 0, len(bySubnet))
	for subnet, machines := range bySubnet {
		groups = append(groups, SubnetGroup{Subnet: subnet, Count: len(machines), Machines: machines})
	}
	// Stable order: Unassigned last, then alphabetical
	sort.Slice(groups, func(i, j int) bool {
		a, b := groups[i].Subnet, groups[j].Subnet
		if a == unassignedGroup {
			return false
		}
		if b == unassignedGroup {
			return true
		}
		return a < b
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(NetworkOverviewResponse{Groups: groups})
}
