package core

import "testing"

func TestParseCommandRecords(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		kind   TxnKind
		amount int64
		note   string
	}{
		{"income plain", "รับ 100", Income, 100, ""},
		{"expense plain", "จ่าย 250", Expense, 250, ""},
		{"income with note", "รับ 100 #โน๊ต", Income, 100, "โน๊ต"},
		{"expense with note", "จ่าย 50 #ค่ากาแฟ", Expense, 50, "ค่ากาแฟ"},
		{"thousands separators", "รับ 1,500 #เงินเดือน", Income, 1500, "เงินเดือน"},
		{"multiple separators", "จ่าย 1,234,567", Expense, 1234567, ""},
		{"surrounding whitespace", "  รับ 100  ", Income, 100, ""},
		{"note is trimmed", "รับ 100 #  ข้าวเที่ยง  ", Income, 100, "ข้าวเที่ยง"},
		{"note glued to amount", "จ่าย 30#รถเมล์", Expense, 30, "รถเมล์"},
		{"note with spaces inside", "รับ 9 #a b c", Income, 9, "a b c"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseCommand(tc.text)
			if got.Type != IntentRecord {
				t.Fatalf("ParseCommand(%q).Type = %v, want IntentRecord", tc.text, got.Type)
			}
			if got.Kind != tc.kind {
				t.Errorf("kind = %v, want %v", got.Kind, tc.kind)
			}
			if got.Amount != tc.amount {
				t.Errorf("amount = %d, want %d", got.Amount, tc.amount)
			}
			if got.Note != tc.note {
				t.Errorf("note = %q, want %q", got.Note, tc.note)
			}
		})
	}
}

func TestParseCommandSummary(t *testing.T) {
	for _, text := range []string{"สรุปผล", "  สรุปผล  ", "\tสรุปผล\n"} {
		if got := ParseCommand(text); got.Type != IntentSummary {
			t.Errorf("ParseCommand(%q).Type = %v, want IntentSummary", text, got.Type)
		}
	}

	// The keyword takes no parameters.
	if got := ParseCommand("สรุปผล 100"); got.Type != IntentUnrecognized {
		t.Errorf("summary with parameter should be unrecognized, got %v", got.Type)
	}
}

func TestParseCommandUnrecognized(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"zero amount", "จ่าย 0"},
		{"zero with separators", "รับ 0,000"},
		{"missing amount", "รับ"},
		{"verb without amount", "จ่าย #โน๊ต"},
		{"non-numeric amount", "รับ abc"},
		{"negative amount", "จ่าย -50"},
		{"decimal point not in grammar", "รับ 10.50"},
		{"unknown verb", "โอน 100"},
		{"plain chatter", "สวัสดีครับ"},
		{"verb embedded in text", "วันนี้ รับ 100"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseCommand(tc.text); got.Type != IntentUnrecognized {
				t.Errorf("ParseCommand(%q) = %+v, want unrecognized", tc.text, got)
			}
		})
	}
}
