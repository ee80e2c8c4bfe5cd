package main

import (
	"coursework/backend/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderUsers(t *testing.T) {
	users := []models.User{
		{ID: 1, Username: "admin@example.com", FullName: "Администратор", Role: models.RoleAdmin, PasswordHash: "$2a$10$hash"},
		{ID: 2, Username: "s@example.com", FullName: "Студент", Role: models.RoleStudent, PasswordHash: "$2a$10$other"},
	}

	out := renderUsers(users, true)
	assert.Contains(t, out, "Username (Login)")
	assert.Contains(t, out, "admin@example.com")
	assert.Contains(t, out, "student")
	assert.Contains(t, out, "$2a$10$hash")

	out = renderUsers(users, false)
	assert.NotContains(t, out, "Hashed Password")
	assert.NotContains(t, out, "$2a$10$hash")
}
