package dolt

import (
	"errors"
	"testing"
)

func TestCredsNew(t *testing.T) {
	repo, runner := testRepo(t)
	runner.Respond("dolt creds new", "Credentials created successfully.\npub key: lmnop12345\nkey id: qrstu67890")

	kp, err := repo.CredsNew()
	if err != nil {
		t.Fatalf("CredsNew: %v", err)
	}
	if kp.PublicKey != "lmnop12345" {
		t.Errorf("PublicKey = %q", kp.PublicKey)
	}
	if kp.KeyID != "qrstu67890" {
		t.Errorf("KeyID = %q", kp.KeyID)
	}
}

func TestCredsList(t *testing.T) {
	repo, runner := testRepo(t)
	runner.Respond("dolt creds ls --verbose", "* lmnop12345  qrstu67890\n  abcde11111  fghij22222")

	creds, err := repo.CredsList()
	if err != nil {
		t.Fatalf("CredsList: %v", err)
	}
	if len(creds) != 2 {
		t.Fatalf("len(creds) = %d, want 2", len(creds))
	}
	if !creds[0].Active || creds[0].PublicKey != "lmnop12345" {
		t.Errorf("creds[0] = %+v", creds[0])
	}
	if creds[1].Active {
		t.Errorf("creds[1] should not be active: %+v", creds[1])
	}
}

func TestCredsRm(t *testing.T) {
	repo, runner := testRepo(t)
	runner.Respond("dolt creds rm missing", "failed to find credentials")

	err := repo.CredsRm("missing")
	if !errors.Is(err, ErrCredsNotFound) {
		t.Errorf("err = %v, want ErrCredsNotFound", err)
	}
}

func TestCredsCheck(t *testing.T) {
	t.Run("authorized", func(t *testing.T) {
		repo, runner := testRepo(t)
		runner.Respond("dolt creds check", "Key: lmnop\nConnecting...\nSuccess.")

		ok, err := repo.CredsCheck("", "")
		if err != nil {
			t.Fatalf("CredsCheck: %v", err)
		}
		if !ok {
			t.Error("expected authorized")
		}
	})

	t.Run("rejected", func(t *testing.T) {
		repo, runner := testRepo(t)
		runner.Respond("dolt creds check --endpoint doltremoteapi.dolthub.com:443",
			"Key: lmnop\nConnecting...\nerror: unauthenticated")

		ok, err := repo.CredsCheck("doltremoteapi.dolthub.com:443", "")
		if err != nil {
			t.Fatalf("CredsCheck: %v", err)
		}
		if ok {
			t.Error("expected rejection")
		}
	})
}
