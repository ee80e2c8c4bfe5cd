// Command listusers prints every account as a table.
package main

import (
	"coursework/backend/config"
	"coursework/backend/models"
	"coursework/backend/store"
	"coursework/backend/utils"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/pflag"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func main() {
	var (
		role     string
		showHash bool
	)
	pflag.StringVarP(&role, "role", "r", "", "only list accounts with this role (admin, teacher, student)")
	pflag.BoolVar(&showHash, "hash", true, "include the password hash column")
	pflag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fatal(err)
	}
	db, err := utils.InitDB(cfg)
	if err != nil {
		fatal(err)
	}
	st := store.New(db)

	var users []models.User
	if role != "" {
		users, err = st.ListUsersByRole(models.Role(role))
	} else {
		users, err = st.ListUsers()
	}
	if err != nil {
		fatal(fmt.Errorf("не удалось получить пользователей: %w", err))
	}

	fmt.Println("\n--- Список всех пользователей в базе данных ---")
	if len(users) == 0 {
		fmt.Println("\n[ИНФО] База данных пользователей пуста.")
		return
	}
	fmt.Println(renderUsers(users, showHash))
}

func renderUsers(users []models.User, showHash bool) string {
	headers := []string{"ID", "Username (Login)", "Full Name", "Role"}
	if showHash {
		headers = append(headers, "Hashed Password")
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, u := range users {
		row := []string{strconv.FormatUint(uint64(u.ID), 10), u.Username, u.FullName, string(u.Role)}
		if showHash {
			row = append(row, u.PasswordHash)
		}
		t.Row(row...)
	}
	return t.String()
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "\n[ОШИБКА] %v\n", err)
	os.Exit(1)
}
