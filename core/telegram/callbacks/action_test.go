package callbacks

import "testing"

func TestDecode(t *testing.T) {
	a, err := Decode("d,-1001462860928,7,42,1700000000")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := Action{Code: CodeDelete, ChatID: -1001462860928, UserID: 7, MessageID: 42, Requested: 1700000000}
	if a != want {
		t.Fatalf("got %+v, want %+v", a, want)
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, data := range []string{"", "d", "d,1,2", "d,x,7,42,0", "d,1,2,3,4,5"} {
		a, err := Decode(data)
		if err == nil {
			t.Errorf("Decode(%q): expected error", data)
		}
		// Code survives so the caller can still classify the action.
		if data != "" && a.Code == "" {
			t.Errorf("Decode(%q): lost action code", data)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := Action{Code: CodeDelete, ChatID: -100, UserID: 1, MessageID: 2, Requested: 3}
	out, err := Decode(in.Encode())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out != in {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}
