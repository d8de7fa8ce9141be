package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatalf("hash must not equal plaintext")
	}

	if !Verify(hash, "s3cret-pass") {
		t.Fatalf("correct password rejected")
	}
	if Verify(hash, "wrong-pass") {
		t.Fatalf("wrong password accepted")
	}
}

func TestHashesAreSalted(t *testing.T) {
	first, err := Hash("same-password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	second, err := Hash("same-password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same password must differ")
	}
}
