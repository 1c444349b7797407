package netconsole

import "testing"

func TestTokenIssuerRoundtripsASessionID(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"))
	token, sessionID, err := issuer.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	got, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got != sessionID {
		t.Errorf("expected session ID %q, got %q", sessionID, got)
	}
}

func TestVerifyRejectsATokenSignedWithADifferentSecret(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret-a"))
	token, _, err := issuer.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	other := NewTokenIssuer([]byte("secret-b"))
	if _, err := other.Verify(token); err == nil {
		t.Fatal("expected verification to fail with a different secret")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"))
	if _, err := issuer.Verify("not-a-token"); err == nil {
		t.Fatal("expected an error for a malformed token")
	}
}

func TestHashPassphraseThenVerify(t *testing.T) {
	hash, err := HashPassphrase("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassphrase: %v", err)
	}
	if !VerifyPassphrase(hash, "correct horse battery staple") {
		t.Error("expected the original passphrase to verify")
	}
	if VerifyPassphrase(hash, "wrong passphrase") {
		t.Error("expected a different passphrase to fail verification")
	}
}

func TestTwoIssuesProduceDistinctSessionIDs(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"))
	_, a, err := issuer.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	_, b, err := issuer.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if a == b {
		t.Error("expected distinct session IDs across issues")
	}
}
