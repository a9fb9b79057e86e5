package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaterialLabel(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=abc", MaterialVideo},
		{"https://vimeo.com/12345", MaterialVideo},
		{"https://cdn.example.com/notes/cardiac.pdf", MaterialPDF},
		{"/uploads/courses/1/slides.pptx", MaterialFile},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MaterialLabel(tt.url), tt.url)
	}
}

func TestNewCourseView(t *testing.T) {
	pdf := "https://cdn.example.com/pharm.pdf"
	v := NewCourseView(Course{Title: "Pharmacology", MaterialsURL: &pdf}, true)
	assert.Equal(t, MaterialPDF, v.MaterialType)
	assert.True(t, v.Completed)

	v = NewCourseView(Course{Title: "Intro"}, false)
	assert.Empty(t, v.MaterialType)
}

func TestCompletionPercentage(t *testing.T) {
	assert.Equal(t, 0, CompletionPercentage(0, 0))
	assert.Equal(t, 0, CompletionPercentage(3, 0))
	assert.Equal(t, 33, CompletionPercentage(1, 3))
	assert.Equal(t, 67, CompletionPercentage(2, 3))
	assert.Equal(t, 50, CompletionPercentage(1, 2))
	assert.Equal(t, 100, CompletionPercentage(4, 4))
}
