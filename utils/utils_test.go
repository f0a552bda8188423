package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAndNormalizeRole(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Farmer", "farmer", true},
		{"ADMIN", "admin", true},
		{"", "farmer", true},
		{"merchant", "merchant", false},
	}

	for _, c := range cases {
		got, ok := ValidateAndNormalizeRole(c.in)
		if got != c.want || ok != c.ok {
			t.Fatalf("ValidateAndNormalizeRole(%q) = (%q, %v); want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestIsValidRole(t *testing.T) {
	if !IsValidRole("admin") {
		t.Fatalf("expected admin to be valid")
	}
	if IsValidRole("staff") {
		t.Fatalf("expected staff to be invalid")
	}
}

func TestNormalizeEmail(t *testing.T) {
	got, ok := NormalizeEmail("  Farmer@Example.COM ")
	assert.True(t, ok)
	assert.Equal(t, "farmer@example.com", got)

	_, ok = NormalizeEmail("not-an-email")
	assert.False(t, ok)
	_, ok = NormalizeEmail("Name <a@b.com>")
	assert.False(t, ok)
	_, ok = NormalizeEmail("")
	assert.False(t, ok)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abc...", Truncate("abcdef", 3))
}

func TestPagination(t *testing.T) {
	p := CreatePagination(120, 3, 50)
	assert.Equal(t, 3, p.TotalPages)
	start, end := p.PageBounds(120)
	assert.Equal(t, 100, start)
	assert.Equal(t, 120, end)

	p = CreatePagination(10, 0, 0)
	assert.Equal(t, 1, p.CurrentPage)
	assert.Equal(t, 50, p.PageSize)

	p = CreatePagination(10, 5, 5)
	start, end = p.PageBounds(10)
	assert.Equal(t, 10, start)
	assert.Equal(t, 10, end)
}

func TestPaginationHugeValues(t *testing.T) {
	const maxInt = int(^uint(0) >> 1)

	p := CreatePagination(3, 2, maxInt)
	assert.Equal(t, MaxPageSize, p.PageSize)
	start, end := p.PageBounds(3)
	assert.Equal(t, 3, start)
	assert.Equal(t, 3, end)

	p = CreatePagination(3, maxInt, maxInt)
	start, end = p.PageBounds(3)
	assert.Equal(t, 3, start)
	assert.Equal(t, 3, end)

	// Built directly, bypassing the cap.
	p = &Pagination{CurrentPage: 1, PageSize: maxInt}
	start, end = p.PageBounds(3)
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)

	p = &Pagination{CurrentPage: 2, PageSize: maxInt}
	start, end = p.PageBounds(3)
	assert.Equal(t, 3, start)
	assert.Equal(t, 3, end)

	p = CreatePagination(0, 1, 10)
	start, end = p.PageBounds(0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}
