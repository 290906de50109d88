package report

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	got := Sanitize(`freqtrade backtesting --config user_data/config.json --pairs "BTC/USDT"`)
	want := `freqtrade backtesting --config user_data_config.json --pairs _BTC_USDT_`
	if got != want {
		t.Errorf("Sanitize() = %q, want %q", got, want)
	}
}

func TestName_Short(t *testing.T) {
	n := Namer{}
	got := n.Name("Test Strategies", "SampleStrategy", "freqtrade backtesting --timeframe 5m")
	want := "Test Strategies_SampleStrategy_freqtrade backtesting --timeframe 5m"
	if got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}
}

func TestName_NoPathSeparators(t *testing.T) {
	n := Namer{MaxLength: 60}
	inputs := [][3]string{
		{"../../etc", "passwd", "cat /etc/passwd"},
		{`Plot`, `a\b`, `x/y\z`},
		{"Trade", "..", ".."},
	}
	for _, in := range inputs {
		got := n.Name(in[0], in[1], in[2])
		if strings.ContainsAny(got, `/\`) {
			t.Errorf("Name(%q) = %q contains a path separator", in, got)
		}
	}
}

func TestName_BoundedAndDeterministic(t *testing.T) {
	for _, max := range []int{20, 64, 180} {
		n := Namer{MaxLength: max}
		for _, l := range []int{0, 10, 100, 179, 180, 181, 500, 5000} {
			cmd := strings.Repeat("x", l)
			a := n.Name("Hyperopt", "Strategy", cmd)
			b := n.Name("Hyperopt", "Strategy", cmd)
			if a != b {
				t.Fatalf("Name() not deterministic: %q != %q", a, b)
			}
			if len(a) > max {
				t.Errorf("len(Name()) = %d, want <= %d (max=%d, cmd len=%d)", len(a), max, max, l)
			}
		}
	}
}

func TestName_CollisionResistance(t *testing.T) {
	n := Namer{}
	prefix := "freqtrade hyperopt --strategy S " + strings.Repeat("--spaces roi ", 20)
	a := n.Name("Hyperopt", "S", prefix+"-e 100")
	b := n.Name("Hyperopt", "S", prefix+"-e 200")
	if len(a) != DefaultMaxNameLength || len(b) != DefaultMaxNameLength {
		t.Fatalf("expected truncated names, got len %d and %d", len(a), len(b))
	}
	if a[:DefaultMaxNameLength-9] != b[:DefaultMaxNameLength-9] {
		t.Fatalf("test setup: truncated prefixes should coincide")
	}
	if a == b {
		t.Errorf("names collide: %q", a)
	}
}
