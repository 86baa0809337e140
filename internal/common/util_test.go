package common

import (
	"testing"
)

// ---------- WipeByteArray ----------

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

// ---------- AllKeys ----------

func TestAllKeys_CredentialsThenPending(t *testing.T) {
	got := AllKeys()
	want := []string{
		"token", "user",
		"pending_2fa_user_id", "pending_2fa_email", "pending_2fa_password",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d keys, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("key %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestAllKeys_DoesNotAliasPackageSlices(t *testing.T) {
	keys := AllKeys()
	keys[0] = "mutated"
	if CredentialKeys[0] != TokenKey {
		t.Fatalf("CredentialKeys mutated through AllKeys result")
	}
}
