package snowflake

import "testing"

func TestGenID(t *testing.T) {
	a := GenID()
	b := GenID()
	if a == b {
		t.Error("ids should be unique")
	}
	if a <= 0 || b <= 0 {
		t.Error("ids should be positive")
	}
}

func TestGenOrderSn(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		sn := GenOrderSn()
		if sn == "" {
			t.Fatal("empty order sn")
		}
		if seen[sn] {
			t.Fatalf("duplicate order sn %s", sn)
		}
		seen[sn] = true
	}
}
