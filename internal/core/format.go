package core

import (
	"fmt"
	"strconv"
	"time"
)

// Fixed chat replies.
const (
	// ReplyUnknownUser tells an unregistered sender to open the LIFF
	// app and register first.
	ReplyUnknownUser = "ยังไม่พบผู้ใช้งาน กรุณาเปิด LIFF และลงทะเบียนก่อนใช้งาน"
	// ReplyInvalidFormat shows the expected command shapes.
	ReplyInvalidFormat = "รูปแบบไม่ถูกต้อง ลองใช้: รับ 100 #โน๊ต หรือ จ่าย 50 #โน๊ต"
)

var thaiMonths = [12]string{
	"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
	"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม",
}

// GroupThousands renders n with comma separators, e.g. 1234567 ->
// "1,234,567".
func GroupThousands(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	digits := strconv.FormatInt(n, 10)

	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, d)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

// ConfirmationMessage is the chat reply after a transaction is
// recorded: distinct phrasing per kind, grouped amount, note in
// hashtag brackets when present.
func ConfirmationMessage(kind TxnKind, amount int64, note string) string {
	var msg string
	if kind == Expense {
		msg = "บันทึกรายจ่าย " + GroupThousands(amount) + " บาทแล้ว"
	} else {
		msg = "บันทึกรายรับ " + GroupThousands(amount) + " บาทแล้ว"
	}
	if note != "" {
		msg += " (#" + note + ")"
	}
	return msg
}

// SummaryMessage formats the month totals for the chat reply. The
// Buddhist-era year (+543) is display only and never affects the query
// window. The net figure carries an explicit sign.
func SummaryMessage(now time.Time, s Summary) string {
	monthName := thaiMonths[int(now.Month())-1]
	yearBE := now.Year() + 543

	sign := "+"
	net := s.Net
	if net < 0 {
		sign = "-"
		net = -net
	}

	return fmt.Sprintf(
		"เดือนนี้ เดือน %s %d\nสรุปยอด \nรับ %s บาท \nจ่าย %s บาท\nสรุปยอดใช้จ่ายเดือนนี้ เท่ากับ %s%s บาท",
		monthName, yearBE,
		GroupThousands(s.Income), GroupThousands(s.Expense),
		sign, GroupThousands(net),
	)
}
