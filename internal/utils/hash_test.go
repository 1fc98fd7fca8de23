package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func TestHashString_Deterministic(t *testing.T) {
	key := "secret-key"
	data := "order_123|pay_456"

	sum1 := HashString(data, key)
	sum2 := HashString(data, key)

	if sum1 == "" {
		t.Fatal("hash result is empty")
	}
	if sum1 != sum2 {
		t.Fatal("hash must be deterministic for the same input")
	}

	// verify against direct HMAC computation
	h := hmac.New(sha256.New, []byte(key))
	h.Write([]byte(data))
	expected := hex.EncodeToString(h.Sum(nil))

	if sum1 != expected {
		t.Fatalf("unexpected hash value\nwant: %s\ngot:  %s", expected, sum1)
	}
}

func TestHashString_KeySensitivity(t *testing.T) {
	data := "order_123|pay_456"

	if HashString(data, "key-a") == HashString(data, "key-b") {
		t.Fatal("different keys must produce different signatures")
	}
}

func TestHashEqual(t *testing.T) {
	sum := HashString("payload", "key")

	if !HashEqual(sum, sum) {
		t.Error("expected equal digests to compare equal")
	}
	if HashEqual(sum, sum+"00") {
		t.Error("expected different digests to compare unequal")
	}
	if HashEqual(sum, "") {
		t.Error("expected empty digest to compare unequal")
	}
}
