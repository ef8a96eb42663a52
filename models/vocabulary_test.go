package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagVocabularies(t *testing.T) {
	assert.True(t, ValidPosition("Point Guard"))
	assert.True(t, ValidRegion("International"))
	assert.True(t, ValidDivision("Overseas Pro"))

	assert.False(t, ValidPosition("Goalkeeper"))
	assert.False(t, ValidRegion(""))
	assert.False(t, ValidDivision("point guard"), "matching is case sensitive")
}

func TestCommentTotalPrefersEmbeddedList(t *testing.T) {
	p := Post{CommentCount: 5}
	assert.Equal(t, 5, p.CommentTotal())

	p.Comments = []Comment{{ID: "1"}, {ID: "2"}}
	assert.Equal(t, 2, p.CommentTotal())

	empty := Post{}
	assert.Equal(t, 0, empty.CommentTotal())
}
