package admin

import (
	"fmt"
	"strings"

	"depo-backend/internal/audit"
	"depo-backend/internal/auth"
	"depo-backend/internal/database"
	"depo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type CreateUserRequest struct {
	Name        string               `json:"name"`
	Email       string               `json:"email"`
	Password    string               `json:"password"`
	Role        string               `json:"role"` // "admin" veya "user"
	Permissions models.PermissionMap `json:"permissions"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

type UserResponse struct {
	ID          uint                 `json:"id"`
	Name        string               `json:"name"`
	Email       string               `json:"email"`
	Role        models.UserRole      `json:"role"`
	Permissions models.PermissionMap `json:"permissions"`
	CreatedAt   string               `json:"created_at"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Permissions: u.Permissions,
		CreatedAt:   u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func writeUserLog(c *fiber.Ctx, entityID uint, action models.ActivityAction, description string) {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return
	}
	audit.Write(database.DB, audit.LogOptions{
		UserID:      user.ID,
		UserName:    user.Name,
		Category:    "user",
		EntityID:    entityID,
		Action:      action,
		Description: description,
	})
}

func parseRole(s string) (models.UserRole, error) {
	role := models.UserRole(s)
	if role != models.RoleAdmin && role != models.RoleUser {
		return "", fiber.NewError(fiber.StatusBadRequest, "Rol 'admin' veya 'user' olmalı")
	}
	return role, nil
}

// POST /api/admin/users
func CreateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if body.Name == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "İsim, email ve şifre zorunlu")
		}

		role, err := parseRole(body.Role)
		if err != nil {
			return err
		}

		if body.Permissions == nil {
			body.Permissions = models.PermissionMap{}
		}
		if err := body.Permissions.Validate(); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var count int64
		database.DB.Model(&models.User{}).Where("email = ?", body.Email).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Bu email zaten kayıtlı")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
		}

		user := models.User{
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         role,
			Permissions:  body.Permissions,
		}
		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı oluşturulamadı")
		}

		writeUserLog(c, user.ID, models.ActivityCreate,
			fmt.Sprintf("Kullanıcı eklendi: %s (%s)", user.Name, user.Email))

		return c.Status(fiber.StatusCreated).JSON(toUserResponse(&user))
	}
}

// GET /api/admin/users
func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.Order("name").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcılar listelenemedi")
		}

		resp := make([]UserResponse, 0, len(users))
		for i := range users {
			resp = append(resp, toUserResponse(&users[i]))
		}
		return c.JSON(resp)
	}
}

// PUT /api/admin/users/:id
func UpdateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var user models.User
		if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		var body UpdateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Name != nil && *body.Name != "" {
			user.Name = *body.Name
		}
		if body.Email != nil && *body.Email != "" {
			email := strings.TrimSpace(strings.ToLower(*body.Email))
			var count int64
			database.DB.Model(&models.User{}).
				Where("email = ? AND id <> ?", email, user.ID).
				Count(&count)
			if count > 0 {
				return fiber.NewError(fiber.StatusConflict, "Bu email zaten kayıtlı")
			}
			user.Email = email
		}
		if body.Password != nil && *body.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(*body.Password), bcrypt.DefaultCost)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
			}
			user.PasswordHash = string(hash)
		}
		if body.Role != nil {
			role, err := parseRole(*body.Role)
			if err != nil {
				return err
			}
			user.Role = role
		}

		if err := database.DB.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı güncellenemedi")
		}

		writeUserLog(c, user.ID, models.ActivityUpdate,
			fmt.Sprintf("Kullanıcı güncellendi: %s", user.Email))

		return c.JSON(toUserResponse(&user))
	}
}

// PUT /api/admin/users/:id/permissions
// Yetki haritası sınırda sabit sayfa listesine karşı doğrulanır.
func UpdateUserPermissionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var user models.User
		if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		var perms models.PermissionMap
		if err := c.BodyParser(&perms); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := perms.Validate(); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		user.Permissions = perms
		if err := database.DB.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Yetkiler güncellenemedi")
		}

		writeUserLog(c, user.ID, models.ActivityUpdate,
			fmt.Sprintf("Kullanıcı yetkileri güncellendi: %s", user.Email))

		return c.JSON(toUserResponse(&user))
	}
}

// DELETE /api/admin/users/:id
func DeleteUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		current, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		if user.ID == current.ID {
			return fiber.NewError(fiber.StatusBadRequest, "Kendi hesabınızı silemezsiniz")
		}

		if err := database.DB.Delete(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı silinemedi")
		}

		writeUserLog(c, user.ID, models.ActivityDelete,
			fmt.Sprintf("Kullanıcı silindi: %s", user.Email))

		return c.JSON(fiber.Map{"message": "Kullanıcı silindi", "id": user.ID})
	}
}
