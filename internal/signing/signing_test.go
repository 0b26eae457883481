package signing

import (
	"crypto/sha512"
	"encoding/hex"
	"testing"
)

func TestSign_Golden(t *testing.T) {
	s := LengthPrefixSHA512{}
	params := map[string]string{
		"username":  "padi",
		"token":     "1234:abcdef",
		"direction": "IN",
	}
	const want = "b24f5f78b0d7ef3d68dc8b4700194dc5d14a025300842936936c65c4766db6bd2f9ab8db0b5fd2230bcedeafe7d151dd0690e5290b2fdbfa7d6af4dd0bc47f1e"
	if got := s.Sign(params, "1700000000000"); got != want {
		t.Fatalf("Sign got %s want %s", got, want)
	}
}

func TestSign_OrderIndependent(t *testing.T) {
	s := LengthPrefixSHA512{}
	params := map[string]string{"a": "alpha", "b": "beta", "c": "gamma", "d": "delta"}

	// Map iteration order is randomized per run; repeated signing of the
	// same map must still agree.
	first := s.Sign(params, "123")
	for i := 0; i < 50; i++ {
		if got := s.Sign(params, "123"); got != first {
			t.Fatalf("signature unstable across iterations: %s vs %s", got, first)
		}
	}
}

func TestSign_SensitiveToValueChanges(t *testing.T) {
	s := LengthPrefixSHA512{}
	base := s.Sign(map[string]string{"a": "x", "b": "y"}, "1")
	changed := s.Sign(map[string]string{"a": "x", "b": "z"}, "1")
	if base == changed {
		t.Fatal("changing a value must change the signature")
	}
	tsChanged := s.Sign(map[string]string{"a": "x", "b": "y"}, "2")
	if base == tsChanged {
		t.Fatal("changing the timestamp must change the signature")
	}
}

func TestSign_DuplicateValuesEachContribute(t *testing.T) {
	s := LengthPrefixSHA512{}
	// Two distinct keys carrying the same value: both occurrences are
	// hashed ("99" + "1x" + "1x").
	got := s.Sign(map[string]string{"a": "x", "b": "x"}, "99")
	sum := sha512.Sum512([]byte("991x1x"))
	if want := hex.EncodeToString(sum[:]); got != want {
		t.Fatalf("Sign got %s want %s", got, want)
	}
	if got == s.Sign(map[string]string{"a": "x"}, "99") {
		t.Fatal("dropping a duplicate value must change the signature")
	}
}
