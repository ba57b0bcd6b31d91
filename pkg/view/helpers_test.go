package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoneyFromCents(t *testing.T) {
	assert.Equal(t, "$12.99", MoneyFromCents(1299, "USD"))
	assert.Equal(t, "$0.05", MoneyFromCents(5, "USD"))
	assert.Equal(t, "-€5.00", MoneyFromCents(-500, "EUR"))
	assert.Equal(t, "JPY 10.00", MoneyFromCents(1000, "JPY"))
}

func TestNewPage(t *testing.T) {
	p := NewPage[int](nil, 0, 10, 21)
	assert.Equal(t, []int{}, p.Items)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 3, p.TotalPages)

	assert.Equal(t, 1, PagesFromTotal(0, 10))
	assert.Equal(t, 1, PagesFromTotal(10, 0))
}
