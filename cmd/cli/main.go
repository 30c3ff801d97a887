package main

import (
	"fmt"
	"os"

	"github.com/HammadJahangir123/office-hub-pro/cmd/cli/audit"
	"github.com/HammadJahangir123/office-hub-pro/cmd/cli/auth"
	"github.com/HammadJahangir123/office-hub-pro/cmd/cli/employees"
	"github.com/HammadJahangir123/office-hub-pro/cmd/cli/root"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	employees.InitEmployees(rootCmd)
	audit.InitAudit(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
