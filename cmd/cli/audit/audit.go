package audit

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/HammadJahangir123/office-hub-pro/cmd/cli/auth"
	"github.com/HammadJahangir123/office-hub-pro/cmd/cli/config"
	"github.com/HammadJahangir123/office-hub-pro/cmd/cli/output"
	"github.com/HammadJahangir123/office-hub-pro/internal/models"
	"github.com/spf13/cobra"
)

// ==========================
// Init Audit
// ==========================
func InitAudit(rootCmd *cobra.Command) {
	auditCmd := &cobra.Command{
		Use:   "audit",
		Short: "View the audit trail",
	}

	auditCmd.AddCommand(listAuditCmd())
	rootCmd.AddCommand(auditCmd)
}

// ==========================
// LIST
// ==========================
func listAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent audit entries (newest first)",
		Run: func(cmd *cobra.Command, args []string) {
			token, err := auth.ReadToken()
			if err != nil {
				fmt.Println("Please login first")
				return
			}

			limit, _ := cmd.Flags().GetInt("limit")
			req, _ := http.NewRequest(http.MethodGet, config.APIURL()+"/v1/audit?limit="+strconv.Itoa(limit), nil)
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := http.DefaultClient.Do(req)
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

			var entries []models.AuditEntry
			if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
				fmt.Println(err)
				return
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				b, _ := json.MarshalIndent(entries, "", "  ")
				fmt.Println(string(b))
				return
			}

			rows := make([][]interface{}, 0, len(entries))
			for _, e := range entries {
				recordID := "-"
				if e.RecordID != nil {
					recordID = strconv.Itoa(*e.RecordID)
				}
				changed := "-"
				if len(e.Changes) > 0 {
					var d map[string]any
					if json.Unmarshal(e.Changes, &d) == nil {
						changed = strconv.Itoa(len(d))
					}
				}
				rows = append(rows, []interface{}{
					e.CreatedAt.Format("2006-01-02 15:04:05"),
					e.Action,
					recordID,
					e.ActorName,
					changed,
				})
			}
			output.RenderTable(
				[]string{"Time", "Action", "Record", "Actor", "Changed Fields"},
				rows,
			)
		},
	}
	cmd.Flags().Int("limit", 50, "number of entries to show")
	cmd.Flags().Bool("json", false, "output raw JSON")
	return cmd
}
