package koppen

import (
	"errors"
	"reflect"
	"testing"
)

func uniform(v float64) []float64 {
	s := make([]float64, MonthsPerYear)
	for i := range s {
		s[i] = v
	}
	return s
}

var (
	temperatePrecip = []float64{30, 40, 20, 60, 80, 100, 150, 140, 90, 70, 50, 40}
	temperateTemp   = []float64{10, 12, 15, 18, 20, 25, 30, 28, 22, 15, 12, 8}
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		precip   []float64
		temp     []float64
		southern bool
		want     string
	}{
		{
			name:   "uniform wet tropical is rainforest",
			precip: uniform(250),
			temp:   uniform(25),
			want:   "Af",
		},
		{
			name:   "cold desert",
			precip: uniform(5),
			temp:   uniform(5),
			want:   "BWk",
		},
		{
			name:   "humid subtropical northern midlatitude",
			precip: temperatePrecip,
			temp:   temperateTemp,
			want:   "Cfa",
		},
		{
			name:     "same arrays read as southern hemisphere",
			precip:   temperatePrecip,
			temp:     temperateTemp,
			southern: true,
			want:     "Csa",
		},
		{
			name:   "permanent frost is ice cap",
			precip: uniform(20),
			temp:   uniform(-10),
			want:   "EF",
		},
		{
			name:   "polar summer above freezing is tundra",
			precip: uniform(30),
			temp:   []float64{-20, -18, -12, -5, 2, 8, 9, 7, 1, -6, -14, -19},
			want:   "ET",
		},
		{
			name:   "tropical monsoon",
			precip: []float64{20, 30, 50, 120, 300, 450, 500, 480, 350, 150, 60, 30},
			temp:   uniform(27),
			want:   "Am",
		},
		{
			name:   "tropical savanna",
			precip: []float64{5, 5, 10, 40, 120, 180, 200, 190, 130, 50, 10, 5},
			temp:   uniform(26),
			want:   "Aw",
		},
		{
			name:   "hot desert",
			precip: uniform(2),
			temp:   uniform(30),
			want:   "BWh",
		},
		{
			name:   "hot steppe",
			precip: uniform(30),
			temp:   uniform(25),
			want:   "BSh",
		},
		{
			name:   "dry-summer temperate",
			precip: []float64{110, 100, 80, 50, 30, 10, 5, 8, 35, 70, 100, 115},
			temp:   []float64{10, 11, 13, 15, 19, 23, 26, 26, 23, 18, 13, 10},
			want:   "Csa",
		},
		{
			name:   "dry-winter continental",
			precip: []float64{3, 4, 8, 20, 50, 90, 160, 140, 60, 20, 8, 3},
			temp:   []float64{-10, -6, 2, 10, 17, 22, 25, 23, 17, 9, 0, -7},
			want:   "Dwa",
		},
		{
			name:   "severe-winter continental",
			precip: uniform(30),
			temp:   []float64{-45, -40, -25, -10, 2, 12, 15, 11, 3, -12, -30, -42},
			want:   "Dfd",
		},
		{
			name:   "coldest month exactly zero falls to continental",
			precip: uniform(80),
			temp:   []float64{0, 2, 5, 9, 13, 17, 19, 18, 14, 9, 4, 1},
			want:   "Dfb",
		},
		{
			name:   "warmest month exactly ten is polar",
			precip: uniform(40),
			temp:   []float64{-8, -6, -3, 1, 5, 9, 10, 9, 6, 1, -3, -6},
			want:   "ET",
		},
		{
			name:   "coldest month exactly eighteen is tropical",
			precip: uniform(100),
			temp:   []float64{18, 19, 21, 23, 25, 27, 28, 28, 26, 24, 21, 19},
			want:   "Af",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Classify(tt.precip, tt.temp, tt.southern)
			if err != nil {
				t.Fatalf("Classify: %v", err)
			}
			if res.Code != tt.want {
				t.Errorf("Classify() = %q, want %q", res.Code, tt.want)
			}
		})
	}
}

func TestClassifyInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		precip []float64
		temp   []float64
	}{
		{"empty precipitation", nil, uniform(10)},
		{"eleven months of precipitation", make([]float64, 11), uniform(10)},
		{"thirteen months of precipitation", make([]float64, 13), uniform(10)},
		{"eleven months of temperature", uniform(10), make([]float64, 11)},
		{"both series short", make([]float64, 6), make([]float64, 6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(tt.precip, tt.temp, false)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Classify() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

// Aridity precedes the tropical temperature condition: a record satisfying
// both group conditions must come out as B, never A.
func TestAridityPrecedesTropical(t *testing.T) {
	precip := uniform(10) // 120mm annual, far below any warm threshold
	temp := uniform(30)   // every month tropical

	res, err := Classify(precip, temp, false)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if res.Stats.TempMin < 18 {
		t.Fatalf("test record does not satisfy the tropical condition")
	}
	if res.Stats.PrecipSum >= res.Threshold {
		t.Fatalf("test record does not satisfy the arid condition")
	}
	if res.Group() != GroupArid {
		t.Errorf("Classify() = %q, want Group B code", res.Code)
	}
}

// The rule table's order is the Köppen tie-break policy and must not drift.
func TestGroupRuleOrder(t *testing.T) {
	want := []string{GroupArid, GroupTropical, GroupTemperate, GroupContinental, GroupPolar}
	if len(groupRules) != len(want) {
		t.Fatalf("len(groupRules) = %d, want %d", len(groupRules), len(want))
	}
	for i, rule := range groupRules {
		if rule.group != want[i] {
			t.Errorf("groupRules[%d] = %q, want %q", i, rule.group, want[i])
		}
	}
}

func TestClassifyDeterministic(t *testing.T) {
	first, err := Classify(temperatePrecip, temperateTemp, false)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	second, err := Classify(temperatePrecip, temperateTemp, false)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated classification differs: %+v vs %+v", first, second)
	}
}

func TestResultGroup(t *testing.T) {
	res, err := Classify(uniform(250), uniform(25), false)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if res.Group() != GroupTropical {
		t.Errorf("Group() = %q, want %q", res.Group(), GroupTropical)
	}
}
