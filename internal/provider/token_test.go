package provider

import "testing"

func TestSplitToken(t *testing.T) {
	cases := []struct {
		in        string
		accountID string
		secret    string
		ok        bool
	}{
		{"acct123:secret456", "acct123", "secret456", true},
		{"4217:fa9cde", "4217", "fa9cde", true},
		{"noseparator", "", "", false},
		{"a:b:c", "", "", false},
		{"", "", "", false},
	}
	for _, c := range cases {
		accountID, secret, err := SplitToken(c.in)
		if c.ok {
			if err != nil {
				t.Fatalf("SplitToken(%q) unexpected error: %v", c.in, err)
			}
			if accountID != c.accountID || secret != c.secret {
				t.Fatalf("SplitToken(%q) = (%q, %q) want (%q, %q)", c.in, accountID, secret, c.accountID, c.secret)
			}
			continue
		}
		if err != ErrInvalidTokenFormat {
			t.Fatalf("SplitToken(%q) err = %v want ErrInvalidTokenFormat", c.in, err)
		}
	}
}

func TestFlexID(t *testing.T) {
	cases := []struct {
		in   string
		want FlexID
	}{
		{`"MX1"`, "MX1"},
		{`289111`, "289111"},
		{`null`, ""},
		{`""`, ""},
	}
	for _, c := range cases {
		var f FlexID
		if err := f.UnmarshalJSON([]byte(c.in)); err != nil {
			t.Fatalf("UnmarshalJSON(%s): %v", c.in, err)
		}
		if f != c.want {
			t.Fatalf("UnmarshalJSON(%s) = %q want %q", c.in, f, c.want)
		}
	}

	var f FlexID
	if err := f.UnmarshalJSON([]byte(`{"nested":true}`)); err == nil {
		t.Fatal("objects must not decode into FlexID")
	}
}
