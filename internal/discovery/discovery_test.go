package discovery

import (
	"testing"
)

func TestAdvertiseAndClose(t *testing.T) {
	adv, err := Advertise("chanscope-test", 54321)
	if err != nil {
		// Multicast is unavailable in some sandboxes; advertising is
		// best-effort there too
		t.Skipf("advertise failed (no multicast?): %v", err)
	}
	adv.Close()
}

func TestClose_NilSafe(t *testing.T) {
	var adv *Advertiser
	adv.Close() // must not panic

	(&Advertiser{}).Close()
}
