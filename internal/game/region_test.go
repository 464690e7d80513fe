package game

import "testing"

func TestLayoutFor_ShouldFollowRegion(t *testing.T) {
	tests := []struct {
		region        Region
		bounds        Bounds
		fade, credits int
	}{
		{RegionNTSC, Bounds{Left: 8, Right: 216, Top: 48, Bottom: 191}, 30, 6},
		{RegionPAL, Bounds{Left: 8, Right: 216, Top: 40, Bottom: 199}, 25, 5},
	}

	for _, tt := range tests {
		t.Run(tt.region.String(), func(t *testing.T) {
			layout := LayoutFor(tt.region)
			if layout.Bounds != tt.bounds {
				t.Errorf("Expected bounds %+v, got %+v", tt.bounds, layout.Bounds)
			}
			if layout.FadeInterval != tt.fade || layout.CreditsInterval != tt.credits {
				t.Errorf("Expected intervals %d/%d, got %d/%d",
					tt.fade, tt.credits, layout.FadeInterval, layout.CreditsInterval)
			}
		})
	}
}

func TestRingPosition_ShouldDeriveFromSlot(t *testing.T) {
	layout := LayoutFor(RegionNTSC)

	tests := []struct {
		slot RingSlot
		want Point
	}{
		{RingOnGround, Point{X: 120, Y: 112}},
		{RingCarried, Point{X: 236, Y: 11}},
		{RingDelivered, Point{X: 213, Y: 62}},
	}

	for _, tt := range tests {
		if got := layout.RingPosition(tt.slot); got != tt.want {
			t.Errorf("%s: expected %+v, got %+v", tt.slot, tt.want, got)
		}
	}
}

func TestParseRegion_ShouldAcceptKnownNames(t *testing.T) {
	tests := []struct {
		name    string
		want    Region
		wantErr bool
	}{
		{"", RegionNTSC, false},
		{"ntsc", RegionNTSC, false},
		{" PAL ", RegionPAL, false},
		{"secam", RegionNTSC, true},
	}

	for _, tt := range tests {
		got, err := ParseRegion(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRegion(%q): unexpected error %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("ParseRegion(%q): expected %s, got %s", tt.name, tt.want, got)
		}
	}
}
