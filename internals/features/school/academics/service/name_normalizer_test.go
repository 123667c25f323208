package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSectionNames(t *testing.T) {
	t.Run("bentuk kanonik", func(t *testing.T) {
		got := NormalizeSectionNames("a, B, section c")
		assert.Equal(t, []string{"Section A", "Section B", "Section C"}, got)
	})

	t.Run("dedupe case-insensitive", func(t *testing.T) {
		got := NormalizeSectionNames("a, A, Section a, SECTION A")
		assert.Equal(t, []string{"Section A"}, got)
	})

	t.Run("entri kosong dibuang", func(t *testing.T) {
		got := NormalizeSectionNames(" , a,, section ,")
		assert.Equal(t, []string{"Section A"}, got)
	})

	t.Run("csv kosong", func(t *testing.T) {
		assert.Empty(t, NormalizeSectionNames(""))
	})
}

func TestNormalizeSubjectNames(t *testing.T) {
	got := NormalizeSubjectNames("math, MATH, science , bIO")
	assert.Equal(t, []string{"Math", "Science", "Bio"}, got)

	assert.Empty(t, NormalizeSubjectNames(" ,, "))
}
