package payment

import (
	"net/url"
	"strings"
	"testing"
)

func newTestBuilder() *QRBuilder {
	return NewQRBuilder("ИП Перекрестов", "40817810000000000001", "044525225")
}

func TestPayload(t *testing.T) {
	got := newTestBuilder().Payload(2500)
	want := "ST00012|Name=ИП Перекрестов|PersonalAcc=40817810000000000001|BankName=|BIC=044525225|CorrespAcc=|Sum=250000"
	if got != want {
		t.Fatalf("Payload = %q, want %q", got, want)
	}
}

func TestPayload_Deterministic(t *testing.T) {
	b := newTestBuilder()
	if b.Payload(100) != b.Payload(100) {
		t.Fatal("payload must be deterministic for the same amount")
	}
}

func TestImageURL_EscapesPayload(t *testing.T) {
	imageURL := newTestBuilder().ImageURL(2500)

	if !strings.HasPrefix(imageURL, "https://api.qrserver.com/v1/create-qr-code/") {
		t.Fatalf("unexpected service url: %s", imageURL)
	}
	if strings.Contains(imageURL, "|") {
		t.Fatal("payload separators must be query-escaped")
	}

	parsed, err := url.Parse(imageURL)
	if err != nil {
		t.Fatalf("image url does not parse: %v", err)
	}
	data := parsed.Query().Get("data")
	if !strings.HasPrefix(data, "ST00012|") {
		t.Fatalf("escaped data does not round-trip: %q", data)
	}
	if !strings.Contains(data, "Sum=250000") {
		t.Fatalf("amount missing from payload: %q", data)
	}
}
