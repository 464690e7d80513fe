package app

import (
	"log"
	"math"
	"time"
)

// frameWindow is the number of recent frame times kept for pacing figures
const frameWindow = 60

// FrameStats tracks the frame rate and how evenly frames are paced
type FrameStats struct {
	target time.Duration

	frames          uint64
	startTime       time.Time
	lastFPSTime     time.Time
	framesAtLastFPS uint64
	currentFPS      float64

	// Rolling buffer of recent frame times
	recent [frameWindow]time.Duration
	index  int
	filled int
	sum    time.Duration

	minFrameTime time.Duration
	maxFrameTime time.Duration
}

// NewFrameStats creates statistics for a loop targeting framesPerSecond
func NewFrameStats(framesPerSecond int) *FrameStats {
	if framesPerSecond <= 0 {
		framesPerSecond = 60
	}
	return &FrameStats{target: time.Second / time.Duration(framesPerSecond)}
}

// Record adds a frame that started at start and took frameTime. It returns
// true when the FPS figure was refreshed, at most once a second.
func (s *FrameStats) Record(start time.Time, frameTime time.Duration) bool {
	if s.frames == 0 {
		s.startTime = start
		s.lastFPSTime = start
		s.minFrameTime = frameTime
		s.maxFrameTime = frameTime
	}
	s.frames++

	if frameTime < s.minFrameTime {
		s.minFrameTime = frameTime
	}
	if frameTime > s.maxFrameTime {
		s.maxFrameTime = frameTime
	}

	s.sum -= s.recent[s.index]
	s.recent[s.index] = frameTime
	s.sum += frameTime
	s.index = (s.index + 1) % frameWindow
	if s.filled < frameWindow {
		s.filled++
	}

	end := start.Add(frameTime)
	elapsed := end.Sub(s.lastFPSTime)
	if elapsed < time.Second {
		return false
	}
	s.currentFPS = float64(s.frames-s.framesAtLastFPS) / elapsed.Seconds()
	s.framesAtLastFPS = s.frames
	s.lastFPSTime = end
	return true
}

// FPS returns the frame rate measured over the last second
func (s *FrameStats) FPS() float64 {
	return s.currentFPS
}

// Frames returns the number of recorded frames
func (s *FrameStats) Frames() uint64 {
	return s.frames
}

// Average returns the mean of the recent frame times
func (s *FrameStats) Average() time.Duration {
	if s.filled == 0 {
		return 0
	}
	return s.sum / time.Duration(s.filled)
}

// StdDev returns the standard deviation of the recent frame times
func (s *FrameStats) StdDev() time.Duration {
	if s.filled < 2 {
		return 0
	}
	mean := float64(s.sum) / float64(s.filled)
	var variance float64
	for i := 0; i < s.filled; i++ {
		d := float64(s.recent[i]) - mean
		variance += d * d
	}
	variance /= float64(s.filled)
	return time.Duration(math.Sqrt(variance))
}

// Min returns the shortest recorded frame time
func (s *FrameStats) Min() time.Duration {
	return s.minFrameTime
}

// Max returns the longest recorded frame time
func (s *FrameStats) Max() time.Duration {
	return s.maxFrameTime
}

// Uptime returns the time since the first frame
func (s *FrameStats) Uptime() time.Duration {
	if s.frames == 0 {
		return 0
	}
	return time.Since(s.startTime)
}

// Log writes the current figures
func (s *FrameStats) Log() {
	log.Printf("[FPS] Current: %.1f FPS | Frame: %d", s.currentFPS, s.frames)
	log.Printf("[TIMING] Avg: %.2fms | Min: %.2fms | Max: %.2fms | Target: %.2fms",
		milliseconds(s.Average()), milliseconds(s.minFrameTime),
		milliseconds(s.maxFrameTime), milliseconds(s.target))

	stdDev := milliseconds(s.StdDev())
	switch {
	case stdDev < 2.0:
		log.Printf("[PACING] Excellent frame pacing (±%.2fms)", stdDev)
	case stdDev < 5.0:
		log.Printf("[PACING] Moderate frame pacing (±%.2fms)", stdDev)
	default:
		log.Printf("[PACING] Poor frame pacing (±%.2fms)", stdDev)
	}
}

func milliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}
