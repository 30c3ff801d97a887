package models

// RoleViewer can read records and create/edit their own.
const RoleViewer = "viewer"

// RoleAdmin can edit/delete any record and receives change notifications.
const RoleAdmin = "admin"

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Email        string `json:"email"`
	DisplayName  string `json:"display_name"`
	Role         string `json:"role"`
}
