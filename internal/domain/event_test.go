package domain

import (
	"testing"
	"time"
)

func TestEvent_HasEnded(t *testing.T) {
	past := Event{EndsAt: time.Now().Add(-time.Hour)}
	if !past.HasEnded() {
		t.Error("expected past event to have ended")
	}

	future := Event{EndsAt: time.Now().Add(time.Hour)}
	if future.HasEnded() {
		t.Error("expected future event to not have ended")
	}
}

func TestEvent_IsOwnedBy(t *testing.T) {
	e := Event{OwnerID: "usr-abc"}
	if !e.IsOwnedBy("usr-abc") {
		t.Error("expected owner match")
	}
	if e.IsOwnedBy("usr-xyz") {
		t.Error("expected non-owner mismatch")
	}
}

func TestSession_IsValid(t *testing.T) {
	valid := Session{ExpiresAt: time.Now().Add(time.Hour)}
	if !valid.IsValid() {
		t.Error("expected unexpired session to be valid")
	}

	expired := Session{ExpiresAt: time.Now().Add(-time.Minute)}
	if expired.IsValid() {
		t.Error("expected expired session to be invalid")
	}

	revoked := Session{ExpiresAt: time.Now().Add(time.Hour), RevokedAt: time.Now()}
	if revoked.IsValid() {
		t.Error("expected revoked session to be invalid")
	}
}
