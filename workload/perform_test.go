package workload

import (
	"errors"
	"math"
	"testing"
	"time"
)

func noSleep(time.Duration) error { return nil }

func TestPerform_ZeroSchedule(t *testing.T) {
	s, err := FromFlat([]float64{0, 0})
	if err != nil {
		t.Fatalf("FromFlat() error = %v", err)
	}

	start := time.Now()
	err = s.Perform(func(d time.Duration) error {
		time.Sleep(d)
		return nil
	})
	if err != nil {
		t.Fatalf("Perform() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("Perform([0, 0]) took %v, want near zero", elapsed)
	}
}

func TestPerform_SleepsInOrder(t *testing.T) {
	s := Schedule{
		{IOWait: 3 * time.Millisecond, JobSize: 10},
		{IOWait: 1 * time.Millisecond, JobSize: 0},
		{IOWait: 2 * time.Millisecond, JobSize: 5},
	}

	var got []time.Duration
	err := s.Perform(func(d time.Duration) error {
		got = append(got, d)
		return nil
	})
	if err != nil {
		t.Fatalf("Perform() error = %v", err)
	}

	want := []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}
	if len(got) != len(want) {
		t.Fatalf("sleep called %d times, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sleep[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPerform_SleepError(t *testing.T) {
	errStop := errors.New("stop")
	s := Schedule{{IOWait: time.Millisecond}, {IOWait: time.Millisecond}}

	calls := 0
	err := s.Perform(func(time.Duration) error {
		calls++
		return errStop
	})
	if !errors.Is(err, errStop) {
		t.Fatalf("Perform() error = %v, want %v", err, errStop)
	}
	if calls != 1 {
		t.Errorf("sleep called %d times after error, want 1", calls)
	}
}

func TestPerform_JobSizeOverflow(t *testing.T) {
	tests := []struct {
		name string
		size float64
	}{
		{name: "beyond int64", size: 1e30},
		{name: "infinite", size: math.Inf(1)},
		{name: "NaN", size: math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Schedule{{JobSize: tt.size}}
			if err := s.Perform(noSleep); !errors.Is(err, ErrJobSizeOverflow) {
				t.Errorf("Perform() error = %v, want ErrJobSizeOverflow", err)
			}
		})
	}
}

func TestPerform_NegativeSizeDoesNothing(t *testing.T) {
	s := Schedule{{JobSize: -1e12}}
	if err := s.Perform(noSleep); err != nil {
		t.Errorf("Perform() error = %v", err)
	}
}

func TestFromFlat(t *testing.T) {
	tests := []struct {
		name    string
		flat    []float64
		want    Schedule
		wantErr bool
	}{
		{
			name: "two swaps",
			flat: []float64{0.002, 1500, 0, 42.9},
			want: Schedule{
				{IOWait: 2 * time.Millisecond, JobSize: 1500},
				{IOWait: 0, JobSize: 42},
			},
		},
		{
			name: "negatives clamp to zero",
			flat: []float64{-1, -5},
			want: Schedule{{IOWait: 0, JobSize: 0}},
		},
		{name: "odd length", flat: []float64{0.1}, wantErr: true},
		{name: "NaN entry", flat: []float64{math.NaN(), 1}, wantErr: true},
		{name: "empty", flat: nil, want: Schedule{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromFlat(tt.flat)
			if tt.wantErr {
				var paramErr *InvalidWorkloadParameterError
				if !errors.As(err, &paramErr) {
					t.Fatalf("FromFlat() error = %v, want *InvalidWorkloadParameterError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromFlat() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("swap %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSchedule_FlattenRoundTrip(t *testing.T) {
	s := Schedule{
		{IOWait: 7 * time.Millisecond, JobSize: 123},
		{IOWait: 0, JobSize: 0},
	}

	back, err := FromFlat(s.Flatten())
	if err != nil {
		t.Fatalf("FromFlat() error = %v", err)
	}
	for i := range s {
		if back[i] != s[i] {
			t.Errorf("swap %d = %+v, want %+v", i, back[i], s[i])
		}
	}
}
