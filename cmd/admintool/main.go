package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/aigallery/core/internal/config"
	"github.com/aigallery/core/internal/database"
	"github.com/aigallery/core/internal/models"
	"github.com/aigallery/core/internal/modules/auth/identity"
	jwtpkg "github.com/aigallery/core/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// admintool manages operator accounts from the command line, for
// bootstrapping a fresh deployment before any admin can sign in.
//
//	admintool create --username admin --password secret123
//	admintool check  --username admin --password secret123
//	admintool list
func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	cmd := os.Args[1]

	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	configPath := fs.String("config", config.DefaultConfigPath, "Path to YAML config file")
	username := fs.String("username", "", "Admin username")
	password := fs.String("password", "", "Admin password")
	fs.Parse(os.Args[2:])

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	db, err := database.Connect(cfg, true)
	if err != nil {
		fatal(err)
	}

	switch cmd {
	case "create":
		err = createAdmin(db, cfg, *username, *password)
	case "check":
		err = checkAdmin(db, *username, *password)
	case "list":
		err = listAdmins(db)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fatal(err)
	}
}

func createAdmin(db *gorm.DB, cfg *config.AppConfig, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("create requires --username and --password")
	}
	svc := identity.NewService(db, jwtpkg.NewSigner(cfg.JWTSecret), nil)
	admin, err := svc.CreateAdmin(username, password)
	if err != nil {
		return err
	}
	fmt.Printf("admin %q created (id=%s)\n", admin.Username, admin.ID)
	return nil
}

func checkAdmin(db *gorm.DB, username, password string) error {
	if username == "" {
		return fmt.Errorf("check requires --username")
	}
	var admin models.AdminModel
	if err := db.Where("username = ?", username).First(&admin).Error; err != nil {
		return fmt.Errorf("admin %q not found", username)
	}
	fmt.Printf("admin %q: status=%s\n", admin.Username, admin.Status)
	if password == "" {
		return nil
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return fmt.Errorf("password does not match")
	}
	fmt.Println("password matches")
	return nil
}

func listAdmins(db *gorm.DB) error {
	var admins []models.AdminModel
	if err := db.Order("created_at asc").Find(&admins).Error; err != nil {
		return err
	}
	for _, a := range admins {
		fmt.Printf("%s\t%s\t%s\n", a.ID, a.Username, a.Status)
	}
	fmt.Printf("%d admin(s)\n", len(admins))
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: admintool <create|check|list> [--config path] [--username u] [--password p]")
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
