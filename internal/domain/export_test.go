package domain

import (
	"encoding/json"
	"testing"
)

func TestNewExportRequestDefaultsFormat(t *testing.T) {
	req := NewExportRequest("(01)01234567890128", "")
	if req.Format != FormatPNG {
		t.Fatalf("expected png, got %q", req.Format)
	}
}

func TestExportRequestJSONKeepsSeparators(t *testing.T) {
	payload := "(01)01234567890128\x1D(17)250101\x1D(10)ABC123"
	b, err := json.Marshal(NewExportRequest(payload, FormatPDF))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]string
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["format"] != "pdf" {
		t.Fatalf("expected format pdf, got %q", decoded["format"])
	}
	if decoded["gs1"] != payload {
		t.Fatalf("expected gs1 to round-trip byte for byte, got %q", decoded["gs1"])
	}
}
