package model

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderKey_Valid(t *testing.T) {
	tests := []struct {
		label string
		want  OrderKey
	}{
		{"2022/1", OrderKey{2022, 1}},
		{"2021/2", OrderKey{2021, 2}},
		{" 2023 / 1 ", OrderKey{2023, 1}},
		{"1999/10", OrderKey{1999, 10}},
	}
	for _, tt := range tests {
		got, err := ParseOrderKey(tt.label)
		require.NoError(t, err, tt.label)
		assert.Equal(t, tt.want, got, tt.label)
	}
}

func TestParseOrderKey_Malformed(t *testing.T) {
	for _, label := range []string{"", "2022", "2022-1", "2022/1/2", "ano/1", "2022/x", "2022.1", "/"} {
		got, err := ParseOrderKey(label)
		assert.ErrorIs(t, err, ErrOrderKeyFormat, label)
		assert.Equal(t, OrderKey{}, got, label)
		assert.True(t, OrderKeyOf(label).IsZero(), label)
	}
}

func TestOrderKeyOf_MalformedLabelsCollide(t *testing.T) {
	assert.Equal(t, OrderKeyOf("sem dado"), OrderKeyOf("2022-2"))
}

func TestOrderKey_Monotonic(t *testing.T) {
	a, b, c := OrderKeyOf("2021/1"), OrderKeyOf("2021/2"), OrderKeyOf("2022/1")
	assert.True(t, a.Less(b))
	assert.True(t, b.Less(c))
	assert.True(t, a.Less(c))
	assert.False(t, c.Less(a))
	assert.Equal(t, 0, a.Compare(OrderKeyOf("2021/1")))
}

func TestOrderKey_ChronologicalNotLexicographic(t *testing.T) {
	labels := []string{"2022/1", "2019/2", "2021/10", "2021/2", "inválido"}
	sort.SliceStable(labels, func(i, j int) bool {
		return OrderKeyOf(labels[i]).Less(OrderKeyOf(labels[j]))
	})
	assert.Equal(t, []string{"inválido", "2019/2", "2021/2", "2021/10", "2022/1"}, labels)
}

func TestFilterSelection_Clone(t *testing.T) {
	s := FilterSelection{Semesters: []string{"2022/1"}, Campuses: []string{}}
	c := s.Clone()
	c.Semesters[0] = "x"

	assert.Equal(t, "2022/1", s.Semesters[0])
	assert.NotNil(t, c.Campuses)
	assert.Empty(t, c.Campuses)
	assert.Nil(t, c.Courses)
}
