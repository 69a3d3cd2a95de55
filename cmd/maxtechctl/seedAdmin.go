package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Kariqs/maxtech-api/initializers"
	"github.com/Kariqs/maxtech-api/models"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func seedAdminCmd() *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create or promote a super admin account",
		Example: `  maxtechctl seed-admin --email owner@maxtech.in --password 's3cret-pass' --name Owner`,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, created, err := seedAdmin(initializers.DB, email, password, name)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Created super admin %s (id %d)\n", user.Email, user.ID)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Promoted %s (id %d) to super admin\n", user.Email, user.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "admin email address")
	cmd.Flags().StringVar(&password, "password", "", "admin password, at least 8 characters")
	cmd.Flags().StringVar(&name, "name", "Admin", "display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

// seedAdmin creates an activated super admin, or promotes and resets the
// password of an existing account with the same email.
func seedAdmin(db *gorm.DB, email, password, name string) (models.User, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return models.User{}, false, errors.New("email is required")
	}
	if len(password) < 8 {
		return models.User{}, false, errors.New("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, false, fmt.Errorf("hash password: %w", err)
	}

	var user models.User
	err = db.Where("email = ?", email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			Name:             name,
			Email:            email,
			Password:         string(hash),
			Role:             models.RoleSuperAdmin,
			AccountActivated: true,
		}
		if err := db.Create(&user).Error; err != nil {
			return models.User{}, false, fmt.Errorf("create admin: %w", err)
		}
		return user, true, nil
	case err != nil:
		return models.User{}, false, err
	}

	err = db.Model(&user).Updates(map[string]any{
		"password":          string(hash),
		"role":              models.RoleSuperAdmin,
		"account_activated": true,
	}).Error
	if err != nil {
		return models.User{}, false, fmt.Errorf("promote admin: %w", err)
	}
	return user, false, nil
}
