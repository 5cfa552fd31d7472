package validation

import (
	"strings"
	"testing"
	"time"

	"devhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Valid", "secret1", false},
		{"Exactly Min Length", "abcdef", false},
		{"Exactly Max Bytes", strings.Repeat("a", 72), false},
		{"Too Short", "abc", true},
		{"Empty", "", true},
		{"Too Long", strings.Repeat("a", 73), true},
		{"Multibyte Over Limit", strings.Repeat("é", 37), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsEmail(t *testing.T) {
	t.Parallel()
	assert.True(t, IsEmail("ada@example.com"))
	assert.True(t, IsEmail("first.last+tag@sub.example.co"))
	assert.False(t, IsEmail("ada"))
	assert.False(t, IsEmail("ada@"))
	assert.False(t, IsEmail("ada@localhost"))
	assert.False(t, IsEmail(""))
	assert.Equal(t, "ada@example.com", NormalizeEmail("  Ada@Example.COM "))
}

func TestValidateGitHubUsername(t *testing.T) {
	t.Parallel()
	tests := []struct {
		username string
		wantErr  bool
	}{
		{"octocat", false},
		{"a", false},
		{"my-name-1", false},
		{strings.Repeat("a", 39), false},
		{strings.Repeat("a", 40), true},
		{"-lead", true},
		{"trail-", true},
		{"dou--ble", true},
		{"dot.name", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			err := ValidateGitHubUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()
	d, err := ParseDate("2021-03-04")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2021-03-04T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, d.Hour())

	_, err = ParseDate("last tuesday")
	assert.Error(t, err)
}

func TestSplitSkills(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"go", "sql", "k8s"}, SplitSkills(" go, sql ,,k8s ,"))
	assert.Empty(t, SplitSkills(" , "))
}

func TestErrors_ReportsEveryField(t *testing.T) {
	t.Parallel()
	var v Errors
	assert.NoError(t, v.Err())

	v.Required("status", " ", "status is required")
	v.Required("skills", "", "skills are required")
	v.Required("company", "Acme", "company is required")

	err := v.Err()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
	assert.Equal(t, []models.FieldError{
		{Msg: "status is required", Param: "status"},
		{Msg: "skills are required", Param: "skills"},
	}, appErr.Fields)
}
