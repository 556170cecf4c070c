package instrument

import "testing"

func TestResolveForexMajorPassesThrough(t *testing.T) {
	p := Resolve("EURUSD")
	if p.CanonicalID != "eurusd" {
		t.Fatalf("unexpected id %q", p.CanonicalID)
	}
	if p.PipSize != 0.0001 {
		t.Fatalf("unexpected pip size %v", p.PipSize)
	}
	if p.ContractSize != 100000 {
		t.Fatalf("unexpected contract size %v", p.ContractSize)
	}
}

func TestResolveStripsSuffixesAndPrefixes(t *testing.T) {
	cases := map[string]string{
		"FX:EURUSD":   "eurusd",
		"GER40.cash":  "deuidxeur",
		"NAS100.pro":  "usatechidxusd",
		"CFD:US30":    "usa30idxusd",
		"xau_usd":     "xauusd",
		"GBP-JPY":     "gbpjpy",
		" usd jpy ":   "usdjpy",
		"CFDS:SPX500": "usa500idxusd",
		"US500.micro": "usa500idxusd",
		"eurusd.mini": "eurusd",
	}
	for raw, want := range cases {
		if got := Resolve(raw).CanonicalID; got != want {
			t.Fatalf("Resolve(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestResolveJPYPip(t *testing.T) {
	p := Resolve("USDJPY")
	if p.PipSize != 0.01 {
		t.Fatalf("jpy pip size = %v", p.PipSize)
	}
	if p.ContractSize != 100000 {
		t.Fatalf("jpy contract size = %v", p.ContractSize)
	}
}

func TestResolveMetals(t *testing.T) {
	for _, raw := range []string{"XAUUSD", "GOLD", "silver", "XAGUSD"} {
		p := Resolve(raw)
		if p.PipSize != 0.01 {
			t.Fatalf("%s pip size = %v", raw, p.PipSize)
		}
		if p.ContractSize != 100 {
			t.Fatalf("%s contract size = %v", raw, p.ContractSize)
		}
	}
}

func TestResolveIndices(t *testing.T) {
	p := Resolve("NAS100")
	if p.CanonicalID != "usatechidxusd" {
		t.Fatalf("unexpected id %q", p.CanonicalID)
	}
	if p.PipSize != 1 {
		t.Fatalf("index pip size = %v", p.PipSize)
	}
	if p.ContractSize != 1 {
		t.Fatalf("index contract size = %v", p.ContractSize)
	}
}

func TestResolveUnknownSymbolFallsBackToFX(t *testing.T) {
	p := Resolve("SOMETHINGWEIRD")
	if p.CanonicalID != "somethingweird" {
		t.Fatalf("unexpected id %q", p.CanonicalID)
	}
	if p.PipSize != 0.0001 || p.ContractSize != 100000 {
		t.Fatalf("expected fx defaults, got %+v", p)
	}
}

func TestResolveNeverEmptyProfile(t *testing.T) {
	for _, raw := range []string{"", "   ", "-", "fx:", "....", "_"} {
		p := Resolve(raw)
		if p.PipSize <= 0 || p.ContractSize <= 0 {
			t.Fatalf("Resolve(%q) produced unusable profile %+v", raw, p)
		}
	}
}
