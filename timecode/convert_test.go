// SPDX-License-Identifier: Apache-2.0

package timecode

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFrameFromTimecode(t *testing.T) {
	tests := []struct {
		name      string
		tc        string
		fps       float64
		dropFrame bool
		want      int
	}{
		{
			name: "zero",
			tc:   "00:00:00:00",
			fps:  24,
			want: 0,
		},
		{
			name: "known 24fps vector",
			tc:   "14:17:20:07",
			fps:  24,
			want: 1234567,
		},
		{
			name: "one hour at 24fps",
			tc:   "01:00:00:00",
			fps:  24,
			want: 86400,
		},
		{
			name:      "last frame before drop minute",
			tc:        "00:00:59;29",
			fps:       29.97,
			dropFrame: true,
			want:      1799,
		},
		{
			name:      "first frame after drop",
			tc:        "00:01:00;02",
			fps:       29.97,
			dropFrame: true,
			want:      1800,
		},
		{
			name:      "tenth minute keeps its frames",
			tc:        "00:10:00;00",
			fps:       29.97,
			dropFrame: true,
			want:      17982,
		},
		{
			name:      "one drop frame hour",
			tc:        "01:00:00;00",
			fps:       29.97,
			dropFrame: true,
			want:      107892,
		},
		{
			name:      "59.94 drops four frames",
			tc:        "00:01:00;04",
			fps:       59.94,
			dropFrame: true,
			want:      3600,
		},
		{
			name: "multi day hours",
			tc:   "25:00:00:00",
			fps:  24,
			want: 25 * 3600 * 24,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FrameFromTimecode(tt.tc, tt.fps, tt.dropFrame)
			if err != nil {
				t.Fatalf("FrameFromTimecode(%q) error = %v", tt.tc, err)
			}
			if got != tt.want {
				t.Errorf("FrameFromTimecode(%q) = %d, want %d", tt.tc, got, tt.want)
			}

			back, err := TimecodeFromFrame(got, tt.fps, tt.dropFrame)
			if err != nil {
				t.Fatalf("TimecodeFromFrame(%d) error = %v", got, err)
			}
			if back != tt.tc {
				t.Errorf("TimecodeFromFrame(%d) = %q, want %q", got, back, tt.tc)
			}
		})
	}
}

func TestTimecodeFromFrame_DropBoundaries(t *testing.T) {
	tests := []struct {
		frame int
		want  string
	}{
		{1797, "00:00:59;27"},
		{1798, "00:00:59;28"},
		{1799, "00:00:59;29"},
		{1800, "00:01:00;02"},
		{1801, "00:01:00;03"},
		{17981, "00:09:59;29"},
		{17982, "00:10:00;00"},
		{17983, "00:10:00;01"},
	}
	for _, tt := range tests {
		got, err := TimecodeFromFrame(tt.frame, 29.97, true)
		if err != nil {
			t.Fatalf("TimecodeFromFrame(%d) error = %v", tt.frame, err)
		}
		if got != tt.want {
			t.Errorf("TimecodeFromFrame(%d) = %q, want %q", tt.frame, got, tt.want)
		}
	}
}

func TestRoundTripFrames(t *testing.T) {
	rates := []struct {
		name      string
		fps       float64
		dropFrame bool
	}{
		{"24 non-drop", 24, false},
		{"23.976 non-drop", 23.976, false},
		{"29.97 drop", 29.97, true},
		{"59.94 drop", 59.94, true},
	}

	// Sample densely around the first drop minutes, then coarsely out to
	// multi-day frame counts.
	var frames []int
	for f := 0; f < 4000; f++ {
		frames = append(frames, f)
	}
	for f := 4000; f < 30_000_000; f += 17929 {
		frames = append(frames, f)
	}

	for _, rate := range rates {
		t.Run(rate.name, func(t *testing.T) {
			for _, frame := range frames {
				tc, err := TimecodeFromFrame(frame, rate.fps, rate.dropFrame)
				if err != nil {
					t.Fatalf("TimecodeFromFrame(%d) error = %v", frame, err)
				}
				back, err := FrameFromTimecode(tc, rate.fps, rate.dropFrame)
				if err != nil {
					t.Fatalf("FrameFromTimecode(%q) error = %v", tc, err)
				}
				if back != frame {
					t.Fatalf("round trip %d -> %q -> %d", frame, tc, back)
				}
			}
		})
	}
}

func TestRateRepresentationInvariance(t *testing.T) {
	frames := []int{0, 1, 86399, 86400, 2394732, 29_999_999}

	t.Run("integral rates", func(t *testing.T) {
		representations := []decimal.Decimal{
			decimal.NewFromInt(24),
			decimal.NewFromFloat(24.0),
			decimal.RequireFromString("24"),
		}
		for _, frame := range frames {
			want, err := TimecodeFromFrameRate(frame, representations[0], false)
			if err != nil {
				t.Fatalf("TimecodeFromFrameRate(%d) error = %v", frame, err)
			}
			for _, rate := range representations[1:] {
				got, err := TimecodeFromFrameRate(frame, rate, false)
				if err != nil {
					t.Fatalf("TimecodeFromFrameRate(%d, %s) error = %v", frame, rate, err)
				}
				if got != want {
					t.Errorf("rate %s: frame %d = %q, want %q", rate, frame, got, want)
				}
			}
		}
	})

	t.Run("fractional rates", func(t *testing.T) {
		float := decimal.NewFromFloat(23.976)
		exact := decimal.RequireFromString("23.976")
		for _, frame := range frames {
			a, err := TimecodeFromFrameRate(frame, float, false)
			if err != nil {
				t.Fatalf("TimecodeFromFrameRate(%d) error = %v", frame, err)
			}
			b, err := TimecodeFromFrameRate(frame, exact, false)
			if err != nil {
				t.Fatalf("TimecodeFromFrameRate(%d) error = %v", frame, err)
			}
			if a != b {
				t.Errorf("frame %d: float rate %q, exact rate %q", frame, a, b)
			}
		}
	})
}

func TestConversionErrors(t *testing.T) {
	t.Run("frame beyond rate", func(t *testing.T) {
		_, err := FrameFromTimecode("00:00:00:24", 24, false)
		var frErr *FrameRateError
		if !errors.As(err, &frErr) {
			t.Fatalf("expected FrameRateError, got %v", err)
		}
		if frErr.Frame != 24 || frErr.Rate != 24 {
			t.Errorf("FrameRateError = %+v, want Frame=24 Rate=24", frErr)
		}
	})

	t.Run("minutes out of range", func(t *testing.T) {
		_, err := FrameFromTimecode("00:60:00:00", 24, false)
		if !errors.Is(err, ErrInvalidTimecode) {
			t.Fatalf("expected ErrInvalidTimecode, got %v", err)
		}
	})

	t.Run("seconds out of range", func(t *testing.T) {
		_, err := FrameFromTimecode("00:00:60:00", 24, false)
		if !errors.Is(err, ErrInvalidTimecode) {
			t.Fatalf("expected ErrInvalidTimecode, got %v", err)
		}
	})

	t.Run("drop frame at 24fps", func(t *testing.T) {
		_, err := FrameFromTimecode("00:00:01:00", 24, true)
		if !errors.Is(err, ErrDropFrameRate) {
			t.Fatalf("expected ErrDropFrameRate, got %v", err)
		}
	})

	t.Run("dropped frame number", func(t *testing.T) {
		_, err := FrameFromTimecode("00:01:00;01", 29.97, true)
		if !errors.Is(err, ErrInvalidTimecode) {
			t.Fatalf("expected ErrInvalidTimecode, got %v", err)
		}
	})

	t.Run("negative frame", func(t *testing.T) {
		_, err := TimecodeFromFrame(-1, 24, false)
		if !errors.Is(err, ErrInvalidTimecode) {
			t.Fatalf("expected ErrInvalidTimecode, got %v", err)
		}
	})

	t.Run("not a timecode", func(t *testing.T) {
		for _, s := range []string{"", "garbage", "10:20:30", "aa:bb:cc:dd", "1:2:3:4:5"} {
			if _, err := FrameFromTimecode(s, 24, false); !errors.Is(err, ErrInvalidTimecode) {
				t.Errorf("FrameFromTimecode(%q): expected ErrInvalidTimecode, got %v", s, err)
			}
		}
	})
}
