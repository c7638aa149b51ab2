package edge

import (
	"testing"
	"time"
)

const testSecret = "6A5AA1D4EAFF4E9FB37E23D68491D6F4"

// 1700000100 is a multiple of 300, so it opens a token bucket (the NT epoch
// offset is itself a multiple of 300).
var bucketStart = time.Unix(1700000100, 0)

func TestSecMSGECFormat(t *testing.T) {
	token := SecMSGEC(testSecret, bucketStart)
	if len(token) != 64 {
		t.Fatalf("expected 64 hex characters, got %d: %q", len(token), token)
	}
	for _, r := range token {
		if (r < '0' || r > '9') && (r < 'A' || r > 'F') {
			t.Fatalf("expected uppercase hex, got %q", token)
		}
	}
}

func TestSecMSGECStableWithinWindow(t *testing.T) {
	a := SecMSGEC(testSecret, bucketStart)
	b := SecMSGEC(testSecret, bucketStart.Add(299*time.Second))
	if a != b {
		t.Fatalf("tokens differ inside one 300s bucket: %s vs %s", a, b)
	}
}

func TestSecMSGECChangesAcrossWindow(t *testing.T) {
	a := SecMSGEC(testSecret, bucketStart)
	b := SecMSGEC(testSecret, bucketStart.Add(300*time.Second))
	if a == b {
		t.Fatal("tokens identical across a 300s boundary")
	}
}

func TestSecMSGECDependsOnSecret(t *testing.T) {
	a := SecMSGEC(testSecret, bucketStart)
	b := SecMSGEC("other-secret", bucketStart)
	if a == b {
		t.Fatal("tokens identical for different secrets")
	}
}
