package payment

import (
	"fmt"
	"net/url"
)

const qrServiceBase = "https://api.qrserver.com/v1/create-qr-code/?size=300x300&data="

// QRBuilder renders bank-transfer payment details for remote orders. The
// payload follows ГОСТ Р 56042 (the "ST00012" pipe-separated format Russian
// banking apps scan).
type QRBuilder struct {
	receiver string
	account  string
	bic      string
}

func NewQRBuilder(receiver, account, bic string) *QRBuilder {
	return &QRBuilder{
		receiver: receiver,
		account:  account,
		bic:      bic,
	}
}

// Payload encodes the transfer details. amount is in rubles; Sum is in
// kopecks per the format.
func (b *QRBuilder) Payload(amount int64) string {
	return fmt.Sprintf("ST00012|Name=%s|PersonalAcc=%s|BankName=|BIC=%s|CorrespAcc=|Sum=%d",
		b.receiver, b.account, b.bic, amount*100)
}

// ImageURL returns a ready-to-send QR image link for the payload. Generation
// is a thin external call; nothing payment-related happens server-side.
func (b *QRBuilder) ImageURL(amount int64) string {
	return qrServiceBase + url.QueryEscape(b.Payload(amount))
}
