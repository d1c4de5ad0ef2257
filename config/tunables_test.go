package config

import (
	"math"
	"testing"
	"time"
)

func TestTunablesRoundtrip(t *testing.T) {
	seen := map[string]bool{}
	for _, tn := range Tunables() {
		t.Run(tn.ID, func(t *testing.T) {
			if seen[tn.ID] {
				t.Fatalf("duplicate tunable %q", tn.ID)
			}
			seen[tn.ID] = true
			if tn.Min >= tn.Max {
				t.Fatalf("range [%v, %v] is empty", tn.Min, tn.Max)
			}

			cfg := Default()
			def := tn.Get(cfg)
			if def < tn.Min || def > tn.Max {
				t.Errorf("default %v outside slider range [%v, %v]", def, tn.Min, tn.Max)
			}

			mid := math.Round((tn.Min+tn.Max)/2*1000) / 1000
			tn.Set(cfg, mid)
			cfg.Normalize()
			if got := tn.Get(cfg); math.Abs(got-mid) > 0.5 {
				t.Errorf("Get after Set(%v) = %v", mid, got)
			}
		})
	}
}

func TestTunablesAreClampedByNormalize(t *testing.T) {
	cfg := Default()
	for _, id := range []string{"cycle_s", "ramp_ms", "speed_multiplier", "resolution", "homing_damping"} {
		tn, ok := TunableByID(id)
		if !ok {
			t.Fatalf("tunable %q missing", id)
		}
		tn.Set(cfg, -100)
	}
	cfg.Normalize()

	if cfg.Derived.Cycle != time.Second || cfg.Derived.Ramp != time.Millisecond {
		t.Errorf("cycle/ramp = %v/%v, want 1s/1ms", cfg.Derived.Cycle, cfg.Derived.Ramp)
	}
	if cfg.Motion.SpeedMultiplier != 0.1 || cfg.Grid.Resolution != 5 || cfg.Homing.Damping != 0 {
		t.Errorf("clamps not applied: %+v %+v %+v", cfg.Motion, cfg.Grid, cfg.Homing)
	}
}

func TestOnlyResolutionRequiresReinit(t *testing.T) {
	for _, tn := range Tunables() {
		if tn.Reinit != (tn.ID == "resolution") {
			t.Errorf("%s: Reinit = %v", tn.ID, tn.Reinit)
		}
	}
	if _, ok := TunableByID("nope"); ok {
		t.Error("unknown ID found")
	}
}
