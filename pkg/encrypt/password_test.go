package encrypt

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword("secret12")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "secret12" {
		t.Fatal("hash must not equal plaintext")
	}
	if !VerifyPassword(hash, "secret12") {
		t.Error("correct password should verify")
	}
	if VerifyPassword(hash, "wrong") {
		t.Error("wrong password should not verify")
	}
}

func TestHashIsSalted(t *testing.T) {
	a, _ := HashPassword("secret12")
	b, _ := HashPassword("secret12")
	if a == b {
		t.Error("two hashes of the same password should differ")
	}
}
