package authController

import (
	"net/http/httptest"
	"strings"
	"testing"

	"lms/config"
	"lms/database"
	"lms/models"
	authValidators "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuthTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:    "test-secret",
		SaltRound: 4,
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(database.Models()...))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Post("/auth/signup", authValidators.Signup(), Signup)
	return app
}

func TestSignupRoleSelection(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		wantRole models.Role
	}{
		{"tutor uppercase", "TUTOR", models.RoleTutor},
		{"tutor lowercase", "tutor", models.RoleTutor},
		{"tutor mixed case", "Tutor", models.RoleTutor},
		{"admin is demoted", "ADMIN", models.RoleStudent},
		{"empty defaults to student", "", models.RoleStudent},
		{"garbage defaults to student", "owner", models.RoleStudent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newAuthTestApp(t)

			body := `{"name":"Alex Morgan","email":"alex@example.com","password":"longenough","role":"` + tt.role + `"}`
			req := httptest.NewRequest("POST", "/auth/signup", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

			var user models.User
			require.NoError(t, database.Database.Db.Where("email = ?", "alex@example.com").First(&user).Error)
			assert.Equal(t, tt.wantRole, user.Role)
		})
	}
}
