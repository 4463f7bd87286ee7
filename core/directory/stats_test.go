package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStats(t *testing.T) {
	students := append([]Student(nil), SampleStudents...)

	got := ComputeStats(students)
	want := PlacementStats{
		Total:     4,
		Placed:    2,
		NotPlaced: 2,
		Pending:   1,
		Rate:      50,
		Departments: []GroupStats{
			{Name: "CSE", Total: 2, Placed: 1, Rate: 50},
			{Name: "MECH", Total: 1, Placed: 1, Rate: 100},
			{Name: "CIVIL", Total: 1, Placed: 0, Rate: 0},
		},
		Batches: []GroupStats{
			{Name: "2020-2024", Total: 3, Placed: 1, Rate: 33},
			{Name: "2019-2023", Total: 1, Placed: 1, Rate: 100},
		},
	}
	assert.Equal(t, want, got)
}

func TestComputeStats_empty(t *testing.T) {
	got := ComputeStats(nil)
	assert.Equal(t, 0, got.Rate)
	assert.Empty(t, got.Departments)
	assert.Empty(t, got.Batches)
}

func Test_rate(t *testing.T) {
	tests := []struct {
		placed, total, want int
	}{
		{0, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{3, 3, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rate(tt.placed, tt.total), "rate(%d, %d)", tt.placed, tt.total)
	}
}
