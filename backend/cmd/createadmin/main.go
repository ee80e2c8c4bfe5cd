// Command createadmin creates an administrator account. Tables are migrated
// first, so it also works against an empty database.
package main

import (
	"bufio"
	"coursework/backend/config"
	"coursework/backend/services"
	"coursework/backend/store"
	"coursework/backend/utils"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "\n[ОШИБКА] %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("createadmin", pflag.ContinueOnError)
	var (
		login        string
		fullName     string
		passwordFile string
	)
	flags.StringVarP(&login, "login", "l", "", "admin login (email)")
	flags.StringVarP(&fullName, "name", "n", "", "admin full name")
	flags.StringVar(&passwordFile, "password-file", "", "read the password from a file instead of prompting")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	db, err := utils.InitDB(cfg)
	if err != nil {
		return err
	}
	st := store.New(db)

	fmt.Println("Проверка и создание таблиц в базе данных...")
	if err := st.Migrate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	fmt.Println("\n--- Создание учетной записи администратора ---")
	in := bufio.NewReader(os.Stdin)
	if login == "" {
		if login, err = prompt(in, "Введите логин (email) для админа: "); err != nil {
			return err
		}
	}
	if fullName == "" {
		if fullName, err = prompt(in, "Введите ФИО админа: "); err != nil {
			return err
		}
	}

	var password string
	if passwordFile != "" {
		password, err = readPasswordFile(passwordFile)
	} else {
		password, err = promptPassword()
	}
	if err != nil {
		return err
	}

	auth := services.NewAuthService(st, cfg)
	user, err := auth.CreateAdmin(login, fullName, password)
	if errors.Is(err, services.ErrUserExists) {
		return fmt.Errorf("пользователь с логином '%s' уже существует", login)
	}
	if err != nil {
		return err
	}

	fmt.Printf("\n[УСПЕХ] Администратор '%s' (%s) успешно создан!\n", user.FullName, user.Username)
	return nil
}

func prompt(in *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads the password twice with echo disabled.
func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("no terminal available for password prompt (use --password-file)")
	}

	fmt.Print("Введите пароль для админа: ")
	first, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	fmt.Print("Подтвердите пароль: ")
	second, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return confirmPassword(string(first), string(second))
}

func confirmPassword(password, confirmation string) (string, error) {
	if password != confirmation {
		return "", errors.New("пароли не совпадают, попробуйте снова")
	}
	if password == "" {
		return "", errors.New("пароль не может быть пустым")
	}
	return password, nil
}

// readPasswordFile strips the trailing newline left by echo and editors.
func readPasswordFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	password := strings.TrimRight(string(data), "\r\n")
	if password == "" {
		return "", fmt.Errorf("%s is empty", path)
	}
	return password, nil
}
