package employees

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/HammadJahangir123/office-hub-pro/cmd/cli/auth"
	"github.com/HammadJahangir123/office-hub-pro/cmd/cli/config"
	"github.com/HammadJahangir123/office-hub-pro/cmd/cli/output"
	"github.com/HammadJahangir123/office-hub-pro/internal/models"
	"github.com/spf13/cobra"
)

// ==========================
// Init Employees
// ==========================
func InitEmployees(rootCmd *cobra.Command) {
	employeesCmd := &cobra.Command{
		Use:   "employees",
		Short: "Manage employee records",
	}

	employeesCmd.AddCommand(
		listEmployeesCmd(),
		getEmployeeCmd(),
		createEmployeeCmd(),
		deleteEmployeeCmd(),
	)

	rootCmd.AddCommand(employeesCmd)
}

func authedRequest(method, path string, body []byte) (*http.Response, error) {
	token, err := auth.ReadToken()
	if err != nil {
		return nil, fmt.Errorf("please login first")
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, config.APIURL()+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return http.DefaultClient.Do(req)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// ==========================
// LIST
// ==========================
func listEmployeesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employee records",
		Run: func(cmd *cobra.Command, args []string) {
			q, _ := cmd.Flags().GetString("search")
			path := "/v1/employees?limit=50"
			if q != "" {
				path += "&q=" + url.QueryEscape(q)
			}

			resp, err := authedRequest(http.MethodGet, path, nil)
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				b, _ := io.ReadAll(resp.Body)
				fmt.Println("API error:", string(b))
				return
			}

			var out struct {
				Items []models.Employee `json:"items"`
				Total int               `json:"total"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				fmt.Println(err)
				return
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				b, _ := json.MarshalIndent(out.Items, "", "  ")
				fmt.Println(string(b))
				return
			}

			rows := make([][]interface{}, 0, len(out.Items))
			for _, e := range out.Items {
				rows = append(rows, []interface{}{
					e.ID, e.Name, e.Department, e.Section, e.ComputerName, e.IPAddress, yesNo(e.InternetAccess),
				})
			}
			output.RenderTable(
				[]string{"ID", "Name", "Department", "Section", "Computer", "IP", "Internet"},
				rows,
			)
			fmt.Printf("Total: %d\n", out.Total)
		},
	}
	cmd.Flags().String("search", "", "filter by name, username, department or computer name")
	cmd.Flags().Bool("json", false, "output raw JSON")
	return cmd
}

// ==========================
// GET
// ==========================
func getEmployeeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one employee record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := strconv.Atoi(args[0]); err != nil {
				return fmt.Errorf("invalid id: %s", args[0])
			}

			resp, err := authedRequest(http.MethodGet, "/v1/employees/"+args[0], nil)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				b, _ := io.ReadAll(resp.Body)
				return fmt.Errorf("API error: %s", string(b))
			}

			var e models.Employee
			if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
				return err
			}
			b, _ := json.MarshalIndent(e, "", "  ")
			fmt.Println(string(b))
			return nil
		},
	}
}

// ==========================
// CREATE
// ==========================
func createEmployeeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an employee record",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := models.EmployeeInput{}
			in.Name, _ = cmd.Flags().GetString("name")
			in.Username, _ = cmd.Flags().GetString("username")
			in.Email, _ = cmd.Flags().GetString("email")
			in.Department, _ = cmd.Flags().GetString("department")
			in.Section, _ = cmd.Flags().GetString("section")
			in.ComputerName, _ = cmd.Flags().GetString("computer")
			in.IPAddress, _ = cmd.Flags().GetString("ip")

			body, _ := json.Marshal(in)
			resp, err := authedRequest(http.MethodPost, "/v1/employees", body)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
				b, _ := io.ReadAll(resp.Body)
				return fmt.Errorf("API error: %s", string(b))
			}

			var e models.Employee
			if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
				return err
			}
			fmt.Printf("Created employee %d (%s)\n", e.ID, e.Name)
			return nil
		},
	}
	cmd.Flags().String("name", "", "employee name (required)")
	cmd.Flags().String("username", "", "login username")
	cmd.Flags().String("email", "", "email address")
	cmd.Flags().String("department", "", "department")
	cmd.Flags().String("section", "", "section")
	cmd.Flags().String("computer", "", "computer name")
	cmd.Flags().String("ip", "", "IP address")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteEmployeeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an employee record (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := strconv.Atoi(args[0]); err != nil {
				return fmt.Errorf("invalid id: %s", args[0])
			}

			resp, err := authedRequest(http.MethodDelete, "/v1/employees/"+args[0], nil)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusNoContent {
				b, _ := io.ReadAll(resp.Body)
				return fmt.Errorf("API error: %s", string(b))
			}

			fmt.Println("Employee deleted.")
			return nil
		},
	}
}
