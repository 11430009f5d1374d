package matching

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScorer_Score(t *testing.T) {
	compat := NewCompatibilitySet([][2]string{
		{"music:Rock", "music:Metal"},
		{"sports:Basketball", "sports:Football"},
		{"hobbies:Reading", "hobbies:Reading"}, // self pairs never count
	})
	s := Scorer{}

	tests := []struct {
		name   string
		mine   []string
		theirs []string
		want   float64
	}{
		{"disjoint", []string{"music:Jazz"}, []string{"music:Pop"}, 0},
		{"two shared", []string{"music:Rock", "hobbies:Reading", "sports:Football"}, []string{"music:Rock", "hobbies:Reading", "sports:Tennis"}, 2.0},
		{"compatible either direction", []string{"music:Metal"}, []string{"music:Rock"}, 0.7},
		{"self pair ignored", []string{"hobbies:Reading"}, []string{"hobbies:Writing"}, 0},
		// two exact hits plus Rock-Metal counted from both sides
		{"cross product accumulates", []string{"music:Rock", "music:Metal"}, []string{"music:Rock", "music:Metal"}, 3.4},
		{"empty", nil, []string{"music:Rock"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, s.Score(tt.mine, tt.theirs, compat), 1e-9)
		})
	}
}

func TestScorer_Percentage(t *testing.T) {
	s := Scorer{}
	assert.Equal(t, 20, s.Percentage(2.0))
	assert.Equal(t, 7, s.Percentage(0.7))
	assert.Equal(t, 21, s.Percentage(0.7+0.7+0.7))
	assert.Equal(t, 27, s.Percentage(2.7))
	assert.Equal(t, 0, s.Percentage(0))
	assert.Equal(t, 150, s.Percentage(15), "K is not a maximum")

	custom := Scorer{Normalization: 4}
	assert.Equal(t, 50, custom.Percentage(2.0))
}

func TestScorer_ConcurrentUse(t *testing.T) {
	compat := NewCompatibilitySet([][2]string{{"a", "b"}})
	s := Scorer{}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.InDelta(t, 1.7, s.Score([]string{"a", "c"}, []string{"b", "c"}, compat), 1e-9)
		}()
	}
	wg.Wait()
}

func TestCompatibilitySet(t *testing.T) {
	c := NewCompatibilitySet([][2]string{{"y", "x"}})
	assert.True(t, c.Compatible("x", "y"))
	assert.True(t, c.Compatible("y", "x"))
	assert.False(t, c.Compatible("x", "x"))
	assert.False(t, c.Compatible("x", "z"))
}
