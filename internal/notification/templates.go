package notification

import (
	"fmt"
	"strconv"
	"strings"
)

// BuildOTPMessage renders the one-time code message.
func BuildOTPMessage(code string) string {
	var b strings.Builder
	b.WriteString("Kode verifikasi Anda: " + code + "\n")
	b.WriteString("Kode berlaku selama 5 menit. Jangan bagikan kode ini kepada siapa pun.")
	return b.String()
}

// BuildPaymentConfirmedMessage renders the payment confirmation message.
func BuildPaymentConfirmedMessage(orderID string, amount int, reference string) string {
	var b strings.Builder
	b.WriteString("Pembayaran Anda telah kami terima.\n\n")
	b.WriteString(fmt.Sprintf("Nomor pesanan: %s\n", orderID))
	b.WriteString(fmt.Sprintf("Referensi: %s\n", reference))
	b.WriteString(fmt.Sprintf("Total: %s\n\n", FormatRupiah(amount)))
	b.WriteString("Terima kasih telah berbelanja bersama kami.")
	return b.String()
}

// FormatRupiah formats a whole-Rupiah amount with dot separators, e.g.
// 1500000 -> "Rp1.500.000".
func FormatRupiah(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.Itoa(amount)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	return sign + "Rp" + b.String()
}
