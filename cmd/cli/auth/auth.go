package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/HammadJahangir123/office-hub-pro/cmd/cli/config"
	"github.com/spf13/cobra"
)

const tokenFileName = ".officehub_token"

// ==========================
// CLI Command Init
// ==========================
func InitAuth(rootCmd *cobra.Command) {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Register, login and logout",
		Long: `Register or login a user against the Office Hub API.
Stores the JWT token locally for future commands.`,
	}

	authCmd.AddCommand(
		&cobra.Command{
			Use:   "register",
			Short: "Register a new user",
			RunE:  runRegister,
		},
		&cobra.Command{
			Use:   "login",
			Short: "Login and save the JWT token locally",
			RunE:  runLogin,
		},
		&cobra.Command{
			Use:   "logout",
			Short: "Remove the locally saved JWT token",
			RunE:  runLogout,
		},
	)

	rootCmd.AddCommand(authCmd)
}

// ==========================
// Register User
// ==========================
func runRegister(cmd *cobra.Command, args []string) error {
	var username, password, email string
	fmt.Print("Username: ")
	fmt.Scanln(&username)
	fmt.Print("Password: ")
	fmt.Scanln(&password)
	fmt.Print("Email: ")
	fmt.Scanln(&email)

	payload := map[string]string{
		"username": username,
		"password": password,
		"email":    email,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(config.APIURL()+"/auth/register", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: %s", string(b))
	}

	fmt.Println("User registered successfully! You can now login.")
	return nil
}

// ==========================
// Login User
// ==========================
func runLogin(cmd *cobra.Command, args []string) error {
	var username, password string
	fmt.Print("Username: ")
	fmt.Scanln(&username)
	fmt.Print("Password: ")
	fmt.Scanln(&password)

	payload := map[string]string{
		"username": username,
		"password": password,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(config.APIURL()+"/auth/login", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: %s", string(b))
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}
	if result.Token == "" {
		return fmt.Errorf("token not returned by API")
	}

	if err := saveToken(result.Token); err != nil {
		return err
	}

	fmt.Println("Login successful! JWT token saved locally.")
	return nil
}

// ==========================
// Logout User
// ==========================
func runLogout(cmd *cobra.Command, args []string) error {
	path := tokenPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("No user logged in.")
		return nil
	}

	if err := os.Remove(path); err != nil {
		return err
	}

	fmt.Println("Logged out successfully.")
	return nil
}

// ==========================
// Token Storage Helpers
// ==========================
func saveToken(token string) error {
	return os.WriteFile(tokenPath(), []byte(token), 0600)
}

// ReadToken loads the locally saved JWT token for authenticated commands.
func ReadToken() (string, error) {
	data, err := os.ReadFile(tokenPath())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func tokenPath() string {
	dir, _ := os.UserHomeDir()
	return filepath.Join(dir, tokenFileName)
}
